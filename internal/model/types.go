package model

import (
	"strings"
	"time"
)

// Kind identifies which scan pipeline produced a finding.
type Kind string

const (
	KindStatic     Kind = "static"
	KindDependency Kind = "dependency"
	KindSecret     Kind = "secret"
)

type Severity string

const (
	SeverityCritical   Severity = "CRITICAL"
	SeverityHigh       Severity = "HIGH"
	SeverityMedium     Severity = "MEDIUM"
	SeverityLow        Severity = "LOW"
	SeverityNegligible Severity = "NEGLIGIBLE"
)

// ParseStaticSeverity maps a static-analysis tool severity onto the shared
// taxonomy. Unknown or empty input resolves to LOW so a formatting defect
// never drops a finding.
func ParseStaticSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR", "HIGH", "CRITICAL":
		return SeverityHigh
	case "WARNING", "MEDIUM":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ParseDependencySeverity passes through the vulnerability scanner's closed
// vocabulary. Unknown input resolves to NEGLIGIBLE.
func ParseDependencySeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical
	case "HIGH":
		return SeverityHigh
	case "MEDIUM":
		return SeverityMedium
	case "LOW":
		return SeverityLow
	default:
		return SeverityNegligible
	}
}

// Rank orders severities for comparison (NEGLIGIBLE=0 .. CRITICAL=4).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func SeverityGTE(a, b Severity) bool { return a.Rank() >= b.Rank() }

// Confidence is the three-level taxonomy for secret findings.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	default:
		return 1
	}
}

// RiskLevel is the overall verdict for one scan.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	default:
		return 1
	}
}

// Finding is one normalized, deduplicated security observation. Created once
// during normalization and never mutated. Kind-specific fields stay zero for
// the other kinds and are omitted from JSON output.
type Finding struct {
	Kind        Kind       `json:"kind"`
	Fingerprint string     `json:"fingerprint"`
	Severity    Severity   `json:"severity,omitempty"`
	Confidence  Confidence `json:"confidence,omitempty"`
	File        string     `json:"file,omitempty"`
	Line        int        `json:"line,omitempty"`
	Column      int        `json:"column,omitempty"`
	Message     string     `json:"message"`
	Scanner     string     `json:"scanner"`

	// static analysis
	RuleID   string `json:"ruleId,omitempty"`
	Category string `json:"category,omitempty"`
	CWE      string `json:"cwe,omitempty"`
	OWASP    string `json:"owasp,omitempty"`
	Snippet  string `json:"snippet,omitempty"`

	// dependency vulnerabilities
	VulnerabilityID string  `json:"vulnerabilityId,omitempty"`
	Package         string  `json:"package,omitempty"`
	Version         string  `json:"version,omitempty"`
	PackageType     string  `json:"packageType,omitempty"`
	CVE             string  `json:"cve,omitempty"`
	CVSS            float64 `json:"cvss,omitempty"`
	FixedVersion    string  `json:"fixedVersion,omitempty"`

	// secrets
	SecretType   string `json:"secretType,omitempty"`
	MaskedSecret string `json:"maskedSecret,omitempty"`
	Verified     bool   `json:"verified,omitempty"`
}

// Summary is the per-kind aggregate, recomputed from a finding list and never
// updated incrementally. Severity buckets double as confidence buckets for the
// secret kind.
type Summary struct {
	Kind        Kind `json:"kind"`
	Unavailable bool `json:"unavailable,omitempty"`

	Total      int `json:"total"`
	Critical   int `json:"critical"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
	Negligible int `json:"negligible,omitempty"`
	Verified   int `json:"verified,omitempty"`

	TopRules      map[string]int `json:"topRules,omitempty"`
	Categories    map[string]int `json:"categories,omitempty"`
	Packages      map[string]int `json:"packages,omitempty"`
	AverageCVSS   float64        `json:"averageCvss,omitempty"`
	FilesAffected int            `json:"filesAffected"`
	Scanners      []string       `json:"scanners,omitempty"`
}

// Add counts a finding into the matching bucket. Secrets bucket by confidence.
func (s *Summary) Add(f Finding) {
	s.Total++
	bucket := f.Severity
	if f.Kind == KindSecret {
		bucket = Severity(f.Confidence)
	}
	switch bucket {
	case SeverityCritical:
		s.Critical++
	case SeverityHigh:
		s.High++
	case SeverityMedium:
		s.Medium++
	case SeverityLow:
		s.Low++
	default:
		s.Negligible++
	}
}

// KindResult pairs a deduplicated finding list with its summary.
type KindResult struct {
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
}

// ScanResult is the top-level aggregate for one scan. The orchestrator owns it
// for the scan's duration and tears down scan artifacts after delivery.
type ScanResult struct {
	TargetURL    string     `json:"targetUrl"`
	Timestamp    time.Time  `json:"timestamp"`
	Files        []string   `json:"files"`
	Static       KindResult `json:"static"`
	Dependencies KindResult `json:"dependencies"`
	Secrets      KindResult `json:"secrets"`
}
