package process

import (
	"math"
	"strings"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// DependencyKind normalizes dependency-vulnerability results (grype match
// records).
func DependencyKind() Kind {
	return Kind{
		Name:      model.KindDependency,
		Normalize: normalizeDependency,
		Key: func(f model.Finding) []string {
			return []string{f.VulnerabilityID, f.Package, f.Version}
		},
		Summarize: summarizeDependency,
	}
}

func normalizeDependency(r model.RawResult) (model.Finding, bool) {
	vulnID := r.Str("vulnerability", "id")
	pkg := r.Str("artifact", "name")
	if vulnID == "" && pkg == "" {
		return model.Finding{}, false
	}

	desc := r.Str("vulnerability", "description")
	if desc == "" {
		desc = "No description available"
	}

	return model.Finding{
		Severity:        model.ParseDependencySeverity(r.Str("vulnerability", "severity")),
		File:            r.Str("source_file"),
		Message:         desc,
		Scanner:         "grype",
		VulnerabilityID: vulnID,
		Package:         pkg,
		Version:         r.Str("artifact", "version"),
		PackageType:     r.Str("artifact", "type"),
		CVE:             extractCVE(r),
		CVSS:            extractCVSS(r),
		FixedVersion:    extractFixedVersion(r),
	}, true
}

// extractCVSS prefers a real base score; absent that it falls back to a
// nominal score for the reported severity so averages stay meaningful.
func extractCVSS(r model.RawResult) float64 {
	for _, v := range r.List("vulnerability", "cvss") {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if metrics, ok := entry["metrics"].(map[string]any); ok {
			if score, ok := metrics["baseScore"].(float64); ok {
				return score
			}
		}
	}
	switch strings.ToUpper(r.Str("vulnerability", "severity")) {
	case "CRITICAL":
		return 9.0
	case "HIGH":
		return 7.0
	case "MEDIUM":
		return 5.0
	case "LOW":
		return 3.0
	case "NEGLIGIBLE":
		return 1.0
	}
	return 0
}

func extractCVE(r model.RawResult) string {
	id := r.Str("vulnerability", "id")
	if strings.HasPrefix(id, "CVE-") {
		return id
	}
	for _, v := range r.List("vulnerability", "relatedVulnerabilities") {
		rel, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if relID, ok := rel["id"].(string); ok && strings.HasPrefix(relID, "CVE-") {
			return relID
		}
	}
	return ""
}

func extractFixedVersion(r model.RawResult) string {
	for _, v := range r.List("matchDetails") {
		detail, ok := v.(map[string]any)
		if !ok {
			continue
		}
		found, ok := detail["found"].(map[string]any)
		if !ok {
			continue
		}
		if state, _ := found["fixState"].(string); state == "fixed" {
			if constraint, ok := found["versionConstraint"].(string); ok && constraint != "" {
				return constraint
			}
			return "Available"
		}
	}
	return ""
}

func summarizeDependency(findings []model.Finding) model.Summary {
	s := model.Summary{
		Kind:     model.KindDependency,
		TopRules: map[string]int{},
		Packages: map[string]int{},
	}
	files := map[string]struct{}{}
	var totalCVSS float64
	var cvssCount int
	for _, f := range findings {
		s.Add(f)
		s.TopRules[f.VulnerabilityID]++
		s.Packages[f.Package]++
		if f.File != "" {
			files[f.File] = struct{}{}
		}
		// average only over findings that carry a real score
		if f.CVSS > 0 {
			totalCVSS += f.CVSS
			cvssCount++
		}
	}
	s.FilesAffected = len(files)
	if cvssCount > 0 {
		s.AverageCVSS = math.Round(totalCVSS/float64(cvssCount)*100) / 100
	}
	return s
}
