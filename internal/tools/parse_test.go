package tools

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemgrep(t *testing.T) {
	raw := []byte(`{
		"results": [
			{"check_id": "javascript.xss.audit", "path": "/tmp/app.js",
			 "start": {"line": 10, "col": 5},
			 "extra": {"severity": "ERROR", "message": "reflected input"}}
		],
		"errors": []
	}`)

	records, err := parseSemgrep(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "javascript.xss.audit", records[0].Str("check_id"))
	assert.Equal(t, 10, records[0].Int("start", "line"))
	assert.Equal(t, "ERROR", records[0].Str("extra", "severity"))
}

func TestParseSemgrepEmptyAndBroken(t *testing.T) {
	records, err := parseSemgrep([]byte(`{"results": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = parseSemgrep([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseGrypeTagsManifest(t *testing.T) {
	raw := []byte(`{
		"matches": [
			{"vulnerability": {"id": "CVE-2023-0001", "severity": "Critical"},
			 "artifact": {"name": "lodash", "version": "4.17.20", "type": "npm"}}
		]
	}`)

	records, err := parseGrype(raw, "temp/package-lock.json")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "temp/package-lock.json", records[0].Str("source_file"))
	assert.Equal(t, "CVE-2023-0001", records[0].Str("vulnerability", "id"))
	assert.Equal(t, "lodash", records[0].Str("artifact", "name"))

	_, err = parseGrype([]byte(`[]`), "x")
	assert.Error(t, err)
}

func TestDecodeLines(t *testing.T) {
	th := NewTrufflehog(time.Second, zerolog.New(nil).Level(zerolog.Disabled))
	raw := []byte(`{"DetectorName": "AWS", "Verified": true, "Raw": "AKIA..."}

garbage line
{"DetectorName": "Github", "Verified": false}
`)

	records := th.decodeLines(raw, "/tmp/cfg.js")
	require.Len(t, records, 2)
	assert.Equal(t, "AWS", records[0].Str("DetectorName"))
	assert.True(t, records[0].Bool("Verified"))
	assert.Equal(t, "/tmp/cfg.js", records[0].Str("source_file"))
	assert.Equal(t, "Github", records[1].Str("DetectorName"))
}

func TestDecodeLinesEmpty(t *testing.T) {
	th := NewTrufflehog(time.Second, zerolog.New(nil).Level(zerolog.Disabled))
	assert.Empty(t, th.decodeLines(nil, "/tmp/a.js"))
	assert.Empty(t, th.decodeLines([]byte("\n\n"), "/tmp/a.js"))
}

func TestFindManifests(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	for _, name := range []string{"package.json", "app.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(sub, "yarn.lock"), nil, 0o644))

	found := FindManifests([]string{dir})
	require.Len(t, found, 2)
	assert.Contains(t, found, filepath.Join(dir, "package.json"))
	assert.Contains(t, found, filepath.Join(sub, "yarn.lock"))

	// direct file paths are filtered by name
	assert.Empty(t, FindManifests([]string{filepath.Join(dir, "app.js")}))
	assert.Len(t, FindManifests([]string{filepath.Join(dir, "package.json")}), 1)

	// missing paths are skipped quietly
	assert.Empty(t, FindManifests([]string{filepath.Join(dir, "nope")}))
}
