package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

func truffleRecord(file string, line int, detector string, verified bool) model.RawResult {
	return model.RawResult{
		"DetectorName":   detector,
		"Raw":            "AKIAIOSFODNN7EXAMPLE0",
		"Verified":       verified,
		"SourceMetadata": map[string]any{"line": float64(line)},
		"source_file":    file,
	}
}

func heuristicRecord(file string, line int, secretType, confidence string) model.RawResult {
	return model.RawResult{
		"scanner":       "heuristic",
		"source_file":   file,
		"secret_type":   secretType,
		"line_number":   line,
		"column_start":  4,
		"masked_secret": "AKIA************MNOP",
		"confidence":    confidence,
	}
}

func TestSecretVerifiedWinsKeyTie(t *testing.T) {
	// heuristic listed first; the verified tool result must still win
	batch := model.Batch{Records: []model.RawResult{
		heuristicRecord("/cfg.js", 7, "AWS", "LOW"),
		truffleRecord("/cfg.js", 7, "AWS", true),
	}}

	findings, summary := New(SecretKind(), testLogger()).Process(batch)
	require.Len(t, findings, 1)
	assert.True(t, findings[0].Verified)
	assert.Equal(t, "trufflehog", findings[0].Scanner)
	assert.Equal(t, model.ConfidenceHigh, findings[0].Confidence)
	assert.Equal(t, 1, summary.Verified)
}

func TestSecretToolBeatsHeuristicWhenUnverified(t *testing.T) {
	batch := model.Batch{Records: []model.RawResult{
		heuristicRecord("/cfg.js", 7, "AWS", "HIGH"),
		truffleRecord("/cfg.js", 7, "AWS", false),
	}}

	findings, _ := New(SecretKind(), testLogger()).Process(batch)
	require.Len(t, findings, 1)
	assert.Equal(t, "trufflehog", findings[0].Scanner)
	assert.Equal(t, model.ConfidenceMedium, findings[0].Confidence)
}

func TestSecretDistinctLocationsKept(t *testing.T) {
	batch := model.Batch{Records: []model.RawResult{
		truffleRecord("/cfg.js", 7, "AWS", false),
		heuristicRecord("/cfg.js", 9, "AWS", "MEDIUM"),
		heuristicRecord("/other.js", 7, "AWS", "LOW"),
	}}

	findings, summary := New(SecretKind(), testLogger()).Process(batch)
	assert.Len(t, findings, 3)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.FilesAffected)
	assert.ElementsMatch(t, []string{"heuristic", "trufflehog"}, summary.Scanners)
}

func TestSecretMaskedValueOnly(t *testing.T) {
	batch := model.Batch{Records: []model.RawResult{
		truffleRecord("/cfg.js", 3, "AWS", true),
	}}
	findings, _ := New(SecretKind(), testLogger()).Process(batch)
	require.Len(t, findings, 1)
	assert.NotContains(t, findings[0].MaskedSecret, "IOSFODNN7EXAMPLE")
	assert.Contains(t, findings[0].MaskedSecret, "*")
}

func TestSecretUnavailableToolStillProcessesHeuristics(t *testing.T) {
	batch := model.Batch{
		Unavailable: true,
		Records:     []model.RawResult{heuristicRecord("/cfg.js", 2, "Password", "MEDIUM")},
	}
	findings, summary := New(SecretKind(), testLogger()).Process(batch)
	require.Len(t, findings, 1)
	assert.True(t, summary.Unavailable)
	assert.Equal(t, 1, summary.Total)
}
