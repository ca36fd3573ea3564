package process

import (
	"github.com/edhofdc/sourcecode-scanner/internal/model"
	"github.com/edhofdc/sourcecode-scanner/internal/util"
)

// Deduplicate drops findings whose identity key was already seen, preserving
// first-seen order, and stamps each survivor's fingerprint. Re-reports of the
// same issue across rule sets or scanners collapse to one finding; the first
// occurrence wins ties on the remaining fields.
func Deduplicate(in []model.Finding, key func(model.Finding) []string) []model.Finding {
	seen := make(map[string]struct{}, len(in))
	var out []model.Finding
	for _, f := range in {
		fp := util.Fingerprint(key(f)...)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		f.Fingerprint = fp
		out = append(out, f)
	}
	return out
}
