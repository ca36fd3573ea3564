package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// RiskThresholds are the counts that push a scan's overall verdict up one
// level. The defaults come from long-standing report tuning; they are
// tunable, not load-bearing.
type RiskThresholds struct {
	CriticalStatic  int `json:"criticalStatic"`
	CriticalSecrets int `json:"criticalSecrets"`
	CriticalVulns   int `json:"criticalVulns"`
	HighStatic      int `json:"highStatic"`
	HighSecrets     int `json:"highSecrets"`
	HighVulns       int `json:"highVulns"`
	MediumStatic    int `json:"mediumStatic"`
	MediumSecrets   int `json:"mediumSecrets"`
	MediumVulns     int `json:"mediumVulns"`
}

type ExternalTools struct {
	Semgrep    bool `json:"semgrep"`
	Grype      bool `json:"grype"`
	Trufflehog bool `json:"trufflehog"`
}

type Config struct {
	OutputDir       string         `json:"outputDir"`
	TempDir         string         `json:"tempDir"`
	UserAgent       string         `json:"userAgent"`
	HTTPTimeoutMs   int            `json:"httpTimeoutMs"`
	ToolTimeoutMs   int            `json:"toolTimeoutMs"`
	SemgrepRulesets []string       `json:"semgrepRulesets"`
	ExternalTools   ExternalTools  `json:"externalTools"`
	Risk            RiskThresholds `json:"risk"`
}

func Default() Config {
	return Config{
		OutputDir:     "output",
		TempDir:       "temp",
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		HTTPTimeoutMs: 30000,
		ToolTimeoutMs: 120000,
		SemgrepRulesets: []string{
			"p/javascript",
			"p/security-audit",
			"p/owasp-top-ten",
			"p/xss",
			"p/sql-injection",
			"p/command-injection",
		},
		ExternalTools: ExternalTools{Semgrep: true, Grype: true, Trufflehog: true},
		Risk: RiskThresholds{
			CriticalStatic: 5, CriticalSecrets: 3, CriticalVulns: 10,
			HighStatic: 2, HighSecrets: 1, HighVulns: 5,
			MediumStatic: 0, MediumSecrets: 0, MediumVulns: 2,
		},
	}
}

// Load searches upwards from startDir for a .scanner-config.json and merges
// it over the defaults. No file found is not an error.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, ".scanner-config.json")
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			_ = json.Unmarshal(b, &cfg)
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}
