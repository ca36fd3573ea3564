package tools

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

var manifestNames = map[string]struct{}{
	"package.json":        {},
	"package-lock.json":   {},
	"yarn.lock":           {},
	"npm-shrinkwrap.json": {},
	"bower.json":          {},
}

// Grype drives the dependency-vulnerability scanner against discovered
// dependency manifests.
type Grype struct {
	Timeout time.Duration
	logger  zerolog.Logger
}

func NewGrype(timeout time.Duration, logger zerolog.Logger) *Grype {
	return &Grype{Timeout: timeout, logger: logger}
}

func (g *Grype) Installed(ctx context.Context) bool {
	return Installed(ctx, "grype", "version")
}

// FindManifests collects dependency manifests from the given files and
// directories.
func FindManifests(searchPaths []string) []string {
	var out []string
	for _, p := range searchPaths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if _, ok := manifestNames[filepath.Base(p)]; ok {
				out = append(out, p)
			}
			continue
		}
		_ = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if _, ok := manifestNames[d.Name()]; ok {
				out = append(out, path)
			}
			return nil
		})
	}
	return out
}

type grypeOut struct {
	Matches []model.RawResult `json:"matches"`
}

// parseGrype decodes one grype run and tags every match with the manifest it
// came from.
func parseGrype(raw []byte, manifest string) ([]model.RawResult, error) {
	var out grypeOut
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	for _, m := range out.Matches {
		m["source_file"] = manifest
	}
	return out.Matches, nil
}

// Scan runs grype over each manifest found under searchPaths. Every match
// record is tagged with the manifest it came from.
func (g *Grype) Scan(ctx context.Context, searchPaths []string) model.Batch {
	if !g.Installed(ctx) {
		g.logger.Warn().Msg("grype not installed, skipping dependency scan")
		return model.Batch{Unavailable: true}
	}

	manifests := FindManifests(searchPaths)
	if len(manifests) == 0 {
		g.logger.Info().Msg("no dependency manifests found")
		return model.Batch{}
	}

	var records []model.RawResult
	for _, manifest := range manifests {
		runCtx, cancel := context.WithTimeout(ctx, g.Timeout)
		res := RunWithTimeout(runCtx, "grype", manifest, "-o", "json", "--quiet")
		cancel()
		if res.Err != nil {
			g.logger.Warn().Err(res.Err).Str("manifest", manifest).Msg("grype run failed")
			continue
		}
		matches, err := parseGrype(res.Raw, manifest)
		if err != nil {
			g.logger.Warn().Err(err).Str("manifest", manifest).Msg("unparseable grype output")
			continue
		}
		records = append(records, matches...)
		g.logger.Info().Str("manifest", manifest).Int("matches", len(matches)).Msg("grype manifest done")
	}
	return model.Batch{Records: records}
}
