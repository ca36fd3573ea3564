package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
	"github.com/edhofdc/sourcecode-scanner/internal/util"
)

const maxPerBucket = 10

// RenderMarkdown builds the human-readable report: header, executive summary,
// risk verdict, per-kind sections grouped by severity, recommendations.
func RenderMarkdown(res *model.ScanResult, overall Overall, risk model.RiskLevel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Security Vulnerability & Secret Scan Report\n\n")
	fmt.Fprintf(&b, "**Target URL:** %s\n\n", res.TargetURL)
	fmt.Fprintf(&b, "**Scan Date:** %s\n\n", res.Timestamp.Format("2006-01-02 15:04:05"))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Files Scanned | %d |\n", overall.TotalFiles)
	fmt.Fprintf(&b, "| Static Analysis Issues | %d |\n", overall.StaticTotal)
	fmt.Fprintf(&b, "| Dependency Vulnerabilities | %d |\n", overall.Vulnerabilities)
	fmt.Fprintf(&b, "| Secrets / Credentials | %d |\n\n", overall.Secrets)
	fmt.Fprintf(&b, "**Overall Risk Level: %s**\n\n", risk)

	writeStaticSection(&b, res.Static)
	writeDependencySection(&b, res.Dependencies)
	writeSecretSection(&b, res.Secrets)

	b.WriteString("## Recommendations\n\n")
	for _, rec := range Recommendations(res) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}

func writeStaticSection(b *strings.Builder, kr model.KindResult) {
	b.WriteString("## Static Code Analysis (Semgrep)\n\n")
	if kr.Summary.Unavailable {
		b.WriteString("Scanner unavailable; this section was skipped.\n\n")
		return
	}
	fmt.Fprintf(b, "%d potential security issues identified.\n\n", kr.Summary.Total)

	for _, sev := range []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		var bucket []model.Finding
		for _, f := range kr.Findings {
			if f.Severity == sev || (sev == model.SeverityHigh && f.Severity == model.SeverityCritical) {
				bucket = append(bucket, f)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		if sev == model.SeverityLow {
			fmt.Fprintf(b, "### Low Severity Issues: %d found\n\n", len(bucket))
			continue
		}
		fmt.Fprintf(b, "### %s Severity Issues\n\n", title(string(sev)))
		for _, f := range top(bucket) {
			fmt.Fprintf(b, "- **%s**: %s\n  - File: %s (Line %d)\n  - Rule: %s\n",
				f.Category, util.Truncate(f.Message, 100), filepath.Base(f.File), f.Line, f.RuleID)
		}
		b.WriteString("\n")
	}
}

func writeDependencySection(b *strings.Builder, kr model.KindResult) {
	b.WriteString("## Dependency Vulnerabilities (Grype)\n\n")
	if kr.Summary.Unavailable {
		b.WriteString("Scanner unavailable; this section was skipped.\n\n")
		return
	}
	fmt.Fprintf(b, "%d vulnerabilities across %d packages", kr.Summary.Total, len(kr.Summary.Packages))
	if kr.Summary.AverageCVSS > 0 {
		fmt.Fprintf(b, " (average CVSS %.2f)", kr.Summary.AverageCVSS)
	}
	b.WriteString(".\n\n")

	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium} {
		var bucket []model.Finding
		for _, f := range kr.Findings {
			if f.Severity == sev {
				bucket = append(bucket, f)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s Vulnerabilities\n\n", title(string(sev)))
		for _, f := range top(bucket) {
			fmt.Fprintf(b, "- **%s**: %s v%s\n  - CVSS Score: %.1f\n  - %s\n",
				f.VulnerabilityID, f.Package, f.Version, f.CVSS, util.Truncate(f.Message, 100))
		}
		b.WriteString("\n")
	}
}

func writeSecretSection(b *strings.Builder, kr model.KindResult) {
	b.WriteString("## Secret Detection (TruffleHog)\n\n")
	if kr.Summary.Unavailable {
		b.WriteString("External scanner unavailable; results below come from heuristic patterns only.\n\n")
	}
	fmt.Fprintf(b, "%d potential secrets found (%d verified).\n\n", kr.Summary.Total, kr.Summary.Verified)

	for _, conf := range []model.Confidence{model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow} {
		var bucket []model.Finding
		for _, f := range kr.Findings {
			if f.Confidence == conf {
				bucket = append(bucket, f)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s Confidence\n\n", title(string(conf)))
		for _, f := range top(bucket) {
			fmt.Fprintf(b, "- **%s**: `%s`\n  - File: %s (Line %d)\n  - Scanner: %s\n",
				f.SecretType, f.MaskedSecret, filepath.Base(f.File), f.Line, f.Scanner)
		}
		b.WriteString("\n")
	}
}

func top(findings []model.Finding) []model.Finding {
	if len(findings) > maxPerBucket {
		return findings[:maxPerBucket]
	}
	return findings
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
