package report

import (
	"github.com/edhofdc/sourcecode-scanner/internal/config"
	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// Overall is the cross-kind statistic set the risk verdict is computed from.
type Overall struct {
	TotalFiles      int `json:"totalFiles"`
	StaticTotal     int `json:"staticTotal"`
	StaticHigh      int `json:"staticHigh"` // high-or-critical
	StaticMedium    int `json:"staticMedium"`
	StaticLow       int `json:"staticLow"`
	Vulnerabilities int `json:"vulnerabilities"`
	Secrets         int `json:"secrets"`
}

// Aggregate folds the three per-kind summaries into one statistic set. Pure;
// called only after all three processors have finished.
func Aggregate(fileCount int, static, deps, secrets model.Summary) Overall {
	return Overall{
		TotalFiles:      fileCount,
		StaticTotal:     static.Total,
		StaticHigh:      static.Critical + static.High,
		StaticMedium:    static.Medium,
		StaticLow:       static.Low,
		Vulnerabilities: deps.Total,
		Secrets:         secrets.Total,
	}
}

// Verdict classifies the scan against the configured thresholds, highest
// level first. The CRITICAL and HIGH rows gate on high-or-critical static
// findings; the MEDIUM row triggers on any static finding at all.
func Verdict(o Overall, t config.RiskThresholds) model.RiskLevel {
	switch {
	case o.StaticHigh > t.CriticalStatic || o.Secrets > t.CriticalSecrets || o.Vulnerabilities > t.CriticalVulns:
		return model.RiskCritical
	case o.StaticHigh > t.HighStatic || o.Secrets > t.HighSecrets || o.Vulnerabilities > t.HighVulns:
		return model.RiskHigh
	case o.StaticTotal > t.MediumStatic || o.Secrets > t.MediumSecrets || o.Vulnerabilities > t.MediumVulns:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
