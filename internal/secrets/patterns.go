package secrets

import "regexp"

// Pattern is one named secret-type detector. HighTrust marks the types whose
// shape alone is strong evidence (provider-issued key prefixes).
type Pattern struct {
	Type      string
	Regexp    *regexp.Regexp
	HighTrust bool
}

// The explicit-prefix classes (AKIA, ghp_, AIza, ...) are case-sensitive on
// purpose; only the generic key/value idioms match case-insensitively.
var patterns = []Pattern{
	{Type: "AWS Access Key", Regexp: regexp.MustCompile(`AKIA[0-9A-Z]{16}`), HighTrust: true},
	{Type: "AWS Secret Key", Regexp: regexp.MustCompile(`[0-9a-zA-Z/+]{40}`)},
	{Type: "GitHub Token", Regexp: regexp.MustCompile(`ghp_[0-9a-zA-Z]{36}`), HighTrust: true},
	{Type: "GitHub App Token", Regexp: regexp.MustCompile(`ghs_[0-9a-zA-Z]{36}`)},
	{Type: "GitHub Refresh Token", Regexp: regexp.MustCompile(`ghr_[0-9a-zA-Z]{76}`)},
	{Type: "Google API Key", Regexp: regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`), HighTrust: true},
	{Type: "Slack Token", Regexp: regexp.MustCompile(`xox[baprs]-[0-9a-zA-Z]{10,48}`)},
	{Type: "Discord Token", Regexp: regexp.MustCompile(`[MN][A-Za-z\d]{23}\.[\w-]{6}\.[\w-]{27}`)},
	{Type: "Stripe API Key", Regexp: regexp.MustCompile(`sk_live_[0-9a-zA-Z]{24}`)},
	{Type: "PayPal Client ID", Regexp: regexp.MustCompile(`A[0-9A-Z]{80}`)},
	{Type: "JWT Token", Regexp: regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`)},
	{Type: "Private Key", Regexp: regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----`)},
	{Type: "API Key Generic", Regexp: regexp.MustCompile(`(?i)api_?key\s*[=:]\s*['"][0-9a-zA-Z]{16,}['"]?`)},
	{Type: "Password", Regexp: regexp.MustCompile(`(?i)password\s*[=:]\s*['"][^'"\s]{8,}['"]?`)},
	{Type: "Secret", Regexp: regexp.MustCompile(`(?i)secret\s*[=:]\s*['"][0-9a-zA-Z]{16,}['"]?`)},
	{Type: "Token", Regexp: regexp.MustCompile(`(?i)token\s*[=:]\s*['"][0-9a-zA-Z]{16,}['"]?`)},
}

// Patterns returns the detector table for listing commands.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}
