package secrets

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// ScannerName tags heuristic records so the secret processor can rank them
// below tool-verified results.
const ScannerName = "heuristic"

// Engine is the regex-based secret detector that runs regardless of whether
// the external tool is installed. It supplements the tool's output; both feed
// the same processor.
type Engine struct {
	patterns []Pattern
	logger   zerolog.Logger
}

func New(logger zerolog.Logger) *Engine {
	return &Engine{patterns: patterns, logger: logger}
}

// ScanFiles runs every pattern over every line of each file. Unreadable files
// are logged and skipped; the scan never fails as a whole.
func (e *Engine) ScanFiles(paths []string) []model.RawResult {
	var out []model.RawResult
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			e.logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable file")
			continue
		}
		out = append(out, e.ScanContent(path, string(b))...)
	}
	return out
}

// ScanContent scans one file body. Each accepted match becomes a raw record
// shaped like an external scanner's output, carrying only the masked value.
func (e *Engine) ScanContent(path, content string) []model.RawResult {
	var out []model.RawResult
	for lineNum, line := range strings.Split(content, "\n") {
		for _, p := range e.patterns {
			for _, loc := range p.Regexp.FindAllStringIndex(line, -1) {
				match := line[loc[0]:loc[1]]
				if isLikelyFalsePositive(line, match) {
					continue
				}
				out = append(out, model.RawResult{
					"scanner":       ScannerName,
					"source_file":   path,
					"secret_type":   p.Type,
					"line_number":   lineNum + 1,
					"column_start":  loc[0],
					"column_end":    loc[1],
					"masked_secret": Mask(match),
					"confidence":    string(scoreConfidence(p, match, line)),
				})
			}
		}
	}
	return out
}
