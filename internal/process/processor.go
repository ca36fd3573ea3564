package process

import (
	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// Kind describes one scan pipeline: how to turn a raw record into a finding,
// which fields identify a duplicate, and how to roll a finding list up into a
// summary. The three pipelines share the Processor below and differ only in
// this descriptor.
type Kind struct {
	Name model.Kind

	// Normalize extracts a finding from one raw record. ok=false marks the
	// record malformed; it is skipped and the rest of the batch proceeds.
	Normalize func(model.RawResult) (model.Finding, bool)

	// Key returns the identity-key parts for deduplication.
	Key func(model.Finding) []string

	// Prioritize optionally reorders candidates before deduplication so the
	// authoritative source wins a key tie. Nil means input order decides.
	Prioritize func([]model.Finding) []model.Finding

	Summarize func([]model.Finding) model.Summary
}

type Processor struct {
	kind   Kind
	logger zerolog.Logger
}

func New(kind Kind, logger zerolog.Logger) *Processor {
	return &Processor{kind: kind, logger: logger}
}

// Process is total: any batch shape yields a finding list and summary.
// Malformed records are skipped one at a time. An unavailable tool flags the
// summary; any records that still arrived (the heuristic engine feeds the
// secret pipeline even when the external tool is missing) are processed
// normally.
func (p *Processor) Process(batch model.Batch) ([]model.Finding, model.Summary) {
	var candidates []model.Finding
	for _, raw := range batch.Records {
		f, ok := p.kind.Normalize(raw)
		if !ok {
			p.logger.Debug().Str("kind", string(p.kind.Name)).Msg("skipping malformed record")
			continue
		}
		f.Kind = p.kind.Name
		candidates = append(candidates, f)
	}

	if p.kind.Prioritize != nil {
		candidates = p.kind.Prioritize(candidates)
	}
	findings := Deduplicate(candidates, p.kind.Key)
	summary := p.kind.Summarize(findings)
	summary.Unavailable = batch.Unavailable
	return findings, summary
}
