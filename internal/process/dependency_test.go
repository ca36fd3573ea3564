package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

func grypeRecord(id, pkg, version, severity string, cvss float64) model.RawResult {
	vuln := map[string]any{
		"id":          id,
		"severity":    severity,
		"description": "bad things",
	}
	if cvss > 0 {
		vuln["cvss"] = []any{
			map[string]any{"metrics": map[string]any{"baseScore": cvss}},
		}
	}
	return model.RawResult{
		"vulnerability": vuln,
		"artifact":      map[string]any{"name": pkg, "version": version, "type": "npm"},
		"source_file":   "temp/package-lock.json",
	}
}

func TestProcessDependencyBatch(t *testing.T) {
	batch := model.Batch{Records: []model.RawResult{
		grypeRecord("CVE-2023-0001", "lodash", "4.17.20", "Critical", 9.8),
		grypeRecord("CVE-2023-0001", "lodash", "4.17.20", "Critical", 9.8), // re-report
		grypeRecord("GHSA-xxxx", "express", "4.16.0", "Medium", 0),
	}}

	findings, summary := New(DependencyKind(), testLogger()).Process(batch)
	require.Len(t, findings, 2)

	assert.Equal(t, "CVE-2023-0001", findings[0].VulnerabilityID)
	assert.Equal(t, "CVE-2023-0001", findings[0].CVE)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
	assert.Equal(t, 9.8, findings[0].CVSS)

	// no base score: nominal score for the reported severity
	assert.Equal(t, 5.0, findings[1].CVSS)
	assert.Equal(t, "", findings[1].CVE)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Critical)
	assert.Equal(t, 1, summary.Medium)
	assert.Equal(t, 2, len(summary.Packages))
	assert.InDelta(t, 7.4, summary.AverageCVSS, 0.001)
}

func TestDependencyCVEFromRelated(t *testing.T) {
	rec := grypeRecord("GHSA-abcd", "minimist", "1.2.0", "High", 7.0)
	rec["vulnerability"].(map[string]any)["relatedVulnerabilities"] = []any{
		map[string]any{"id": "CVE-2020-7598"},
	}

	findings, _ := New(DependencyKind(), testLogger()).Process(model.Batch{Records: []model.RawResult{rec}})
	require.Len(t, findings, 1)
	assert.Equal(t, "CVE-2020-7598", findings[0].CVE)
}

func TestDependencyFixedVersion(t *testing.T) {
	rec := grypeRecord("CVE-2024-1111", "qs", "6.5.0", "High", 7.5)
	rec["matchDetails"] = []any{
		map[string]any{"found": map[string]any{"fixState": "fixed", "versionConstraint": "< 6.5.3"}},
	}

	findings, _ := New(DependencyKind(), testLogger()).Process(model.Batch{Records: []model.RawResult{rec}})
	require.Len(t, findings, 1)
	assert.Equal(t, "< 6.5.3", findings[0].FixedVersion)
}

func TestDependencyUnknownSeverityIsNegligible(t *testing.T) {
	rec := grypeRecord("CVE-2024-2222", "leftpad", "1.0.0", "Whatever", 0)
	findings, summary := New(DependencyKind(), testLogger()).Process(model.Batch{Records: []model.RawResult{rec}})
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityNegligible, findings[0].Severity)
	assert.Equal(t, 1, summary.Negligible)
}
