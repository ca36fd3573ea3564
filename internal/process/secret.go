package process

import (
	"sort"
	"strconv"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
	"github.com/edhofdc/sourcecode-scanner/internal/secrets"
)

// SecretKind normalizes secret findings from the external tool and the
// heuristic engine. Candidates are ranked verified > tool-reported >
// heuristic before deduplication, so a verified finding wins a key tie no
// matter how the caller ordered the raw lists.
func SecretKind() Kind {
	return Kind{
		Name:      model.KindSecret,
		Normalize: normalizeSecret,
		Key: func(f model.Finding) []string {
			return []string{f.File, strconv.Itoa(f.Line), f.SecretType}
		},
		Prioritize: prioritizeSecrets,
		Summarize:  summarizeSecrets,
	}
}

func normalizeSecret(r model.RawResult) (model.Finding, bool) {
	if r.Str("scanner") == secrets.ScannerName {
		return normalizeHeuristicSecret(r)
	}
	return normalizeToolSecret(r)
}

func normalizeToolSecret(r model.RawResult) (model.Finding, bool) {
	secretType := r.Str("DetectorName")
	raw := r.Str("Raw")
	if secretType == "" && raw == "" {
		return model.Finding{}, false
	}
	if secretType == "" {
		secretType = "Unknown"
	}

	verified := r.Bool("Verified")
	conf := model.ConfidenceMedium
	if verified {
		conf = model.ConfidenceHigh
	}

	return model.Finding{
		Confidence:   conf,
		File:         r.Str("source_file"),
		Line:         r.Int("SourceMetadata", "line"),
		Message:      secretType + " detected",
		Scanner:      "trufflehog",
		SecretType:   secretType,
		MaskedSecret: secrets.Mask(raw),
		Verified:     verified,
	}, true
}

func normalizeHeuristicSecret(r model.RawResult) (model.Finding, bool) {
	secretType := r.Str("secret_type")
	if secretType == "" {
		return model.Finding{}, false
	}

	conf := model.Confidence(r.Str("confidence"))
	if conf == "" {
		conf = model.ConfidenceLow
	}

	return model.Finding{
		Confidence:   conf,
		File:         r.Str("source_file"),
		Line:         r.Int("line_number"),
		Column:       r.Int("column_start"),
		Message:      secretType + " detected",
		Scanner:      secrets.ScannerName,
		SecretType:   secretType,
		MaskedSecret: r.Str("masked_secret"),
	}, true
}

func sourceRank(f model.Finding) int {
	switch {
	case f.Verified:
		return 0
	case f.Scanner != secrets.ScannerName:
		return 1
	default:
		return 2
	}
}

func prioritizeSecrets(in []model.Finding) []model.Finding {
	sort.SliceStable(in, func(i, j int) bool {
		return sourceRank(in[i]) < sourceRank(in[j])
	})
	return in
}

func summarizeSecrets(findings []model.Finding) model.Summary {
	s := model.Summary{
		Kind:     model.KindSecret,
		TopRules: map[string]int{},
	}
	files := map[string]struct{}{}
	scanners := map[string]struct{}{}
	for _, f := range findings {
		s.Add(f)
		s.TopRules[f.SecretType]++
		if f.Verified {
			s.Verified++
		}
		if f.File != "" {
			files[f.File] = struct{}{}
		}
		scanners[f.Scanner] = struct{}{}
	}
	s.FilesAffected = len(files)
	for name := range scanners {
		s.Scanners = append(s.Scanners, name)
	}
	sort.Strings(s.Scanners)
	return s
}
