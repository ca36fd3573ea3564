package report

import "github.com/edhofdc/sourcecode-scanner/internal/model"

// Recommendations derives remediation advice from what the scan actually
// found, after a fixed baseline.
func Recommendations(res *model.ScanResult) []string {
	recs := []string{
		"Implement secure code review processes before deploying code.",
		"Use Content Security Policy (CSP) headers to prevent XSS attacks.",
		"Regularly update all dependencies to the latest secure versions.",
	}

	if len(res.Static.Findings) > 0 {
		recs = append(recs, "[Semgrep] Fix security issues identified through static code analysis.")
		if res.Static.Summary.Categories["Cross-Site Scripting (XSS)"] > 0 {
			recs = append(recs, "[Semgrep] Implement proper input validation and output encoding to prevent XSS.")
		}
		if res.Static.Summary.Categories["SQL Injection"] > 0 {
			recs = append(recs, "[Semgrep] Use parameterized queries and avoid dynamic SQL construction.")
		}
	}

	if len(res.Secrets.Findings) > 0 {
		recs = append(recs,
			"[TruffleHog] Remove all hardcoded secrets and use environment variables or secure secret management systems.",
			"[TruffleHog] Implement pre-commit hooks to prevent secrets from being committed to version control.",
			"[TruffleHog] Conduct a comprehensive audit of the repository to ensure no credentials are exposed.",
		)
	}

	if len(res.Dependencies.Findings) > 0 {
		recs = append(recs,
			"[Grype] Set up automated dependency vulnerability scanning in CI/CD pipeline.",
			"[Grype] Create a process to promptly update vulnerable dependencies.",
			"[Grype] Monitor CVE databases regularly for dependencies in use.",
		)
	}
	return recs
}
