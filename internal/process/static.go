package process

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// StaticKind normalizes static-analysis results (semgrep result records).
func StaticKind() Kind {
	return Kind{
		Name:      model.KindStatic,
		Normalize: normalizeStatic,
		Key: func(f model.Finding) []string {
			return []string{f.File, strconv.Itoa(f.Line), f.RuleID}
		},
		Summarize: summarizeStatic,
	}
}

func normalizeStatic(r model.RawResult) (model.Finding, bool) {
	ruleID := r.Str("check_id")
	file := r.Str("path")
	if ruleID == "" && file == "" {
		return model.Finding{}, false
	}

	msg := r.Str("extra", "message")
	if msg == "" {
		msg = r.Str("message")
	}
	if msg == "" {
		msg = "No message"
	}

	return model.Finding{
		Severity: model.ParseStaticSeverity(r.Str("extra", "severity")),
		File:     file,
		Line:     r.Int("start", "line"),
		Column:   r.Int("start", "col"),
		Message:  msg,
		Scanner:  "semgrep",
		RuleID:   ruleID,
		Category: categorize(ruleID),
		CWE:      extractCWE(r),
		OWASP:    extractOWASP(r),
		Snippet:  r.Str("extra", "lines"),
	}, true
}

var categories = []struct {
	name     string
	keywords []string
}{
	{"Cross-Site Scripting (XSS)", []string{"xss", "cross-site"}},
	{"SQL Injection", []string{"sql", "injection"}},
	{"Command Injection", []string{"command", "exec"}},
	{"Authentication/Authorization", []string{"auth", "session"}},
	{"Cryptographic Issues", []string{"crypto", "hash", "encrypt"}},
	{"Path Traversal", []string{"path", "traversal"}},
	{"Prototype Pollution", []string{"prototype", "pollution"}},
	{"Regular Expression DoS", []string{"regex", "redos"}},
}

func categorize(ruleID string) string {
	lower := strings.ToLower(ruleID)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return "Security Misconfiguration"
}

// extractCWE tolerates the metadata field being a list of numbers, a list of
// tagged strings, or a bare string.
func extractCWE(r model.RawResult) string {
	if v, ok := r.Map("extra", "metadata")["cwe"]; ok {
		switch cwe := v.(type) {
		case string:
			return cwe
		case []any:
			if len(cwe) == 0 {
				return ""
			}
			switch first := cwe[0].(type) {
			case string:
				if strings.HasPrefix(first, "CWE-") {
					return first
				}
				return "CWE-" + first
			case float64:
				return fmt.Sprintf("CWE-%d", int(first))
			}
		}
	}
	return ""
}

func extractOWASP(r model.RawResult) string {
	if v, ok := r.Map("extra", "metadata")["owasp"]; ok {
		switch owasp := v.(type) {
		case string:
			return owasp
		case []any:
			if len(owasp) > 0 {
				if s, ok := owasp[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

func summarizeStatic(findings []model.Finding) model.Summary {
	s := model.Summary{
		Kind:       model.KindStatic,
		TopRules:   map[string]int{},
		Categories: map[string]int{},
	}
	files := map[string]struct{}{}
	for _, f := range findings {
		s.Add(f)
		s.TopRules[f.RuleID]++
		s.Categories[f.Category]++
		if f.File != "" {
			files[f.File] = struct{}{}
		}
	}
	s.FilesAffected = len(files)
	return s
}
