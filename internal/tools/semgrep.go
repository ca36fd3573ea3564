package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// Semgrep drives the static-analysis scanner, one run per configured ruleset.
// Findings re-reported by overlapping rulesets collapse later in the
// deduplicator.
type Semgrep struct {
	Rulesets []string
	Timeout  time.Duration
	logger   zerolog.Logger
}

func NewSemgrep(rulesets []string, timeout time.Duration, logger zerolog.Logger) *Semgrep {
	return &Semgrep{Rulesets: rulesets, Timeout: timeout, logger: logger}
}

func (s *Semgrep) Installed(ctx context.Context) bool {
	return Installed(ctx, "semgrep", "--version")
}

type semgrepOut struct {
	Results []model.RawResult `json:"results"`
}

func parseSemgrep(raw []byte) ([]model.RawResult, error) {
	var out semgrepOut
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Scan runs every ruleset over the files and returns the concatenated raw
// records. A missing binary yields an unavailable batch; a failed or
// unparseable ruleset run is logged and skipped.
func (s *Semgrep) Scan(ctx context.Context, files []string) model.Batch {
	if !s.Installed(ctx) {
		s.logger.Warn().Msg("semgrep not installed, skipping static analysis")
		return model.Batch{Unavailable: true}
	}
	if len(files) == 0 {
		return model.Batch{}
	}

	var records []model.RawResult
	for _, ruleset := range s.Rulesets {
		runCtx, cancel := context.WithTimeout(ctx, s.Timeout)
		args := append([]string{"--config", ruleset, "--json", "--no-git-ignore", "--timeout", "60"}, files...)
		res := RunWithTimeout(runCtx, "semgrep", args...)
		cancel()
		if res.Err != nil {
			s.logger.Warn().Err(res.Err).Str("ruleset", ruleset).Msg("semgrep run failed")
			continue
		}
		results, err := parseSemgrep(res.Raw)
		if err != nil {
			s.logger.Warn().Err(err).Str("ruleset", ruleset).Msg("unparseable semgrep output")
			continue
		}
		s.logger.Info().Str("ruleset", ruleset).Int("results", len(results)).Dur("took", res.Duration).Msg("semgrep ruleset done")
		records = append(records, results...)
	}
	return model.Batch{Records: records}
}
