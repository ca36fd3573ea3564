package secrets

import (
	"strings"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

var contextKeywords = []string{"api", "key", "token", "secret", "password", "auth"}

// scoreConfidence rates a match with an additive point system and buckets the
// total: >=5 HIGH, >=3 MEDIUM, else LOW.
func scoreConfidence(p Pattern, secret, line string) model.Confidence {
	score := 0

	if p.HighTrust {
		score += 3
	} else {
		score++
	}

	switch {
	case len(secret) >= 32:
		score += 2
	case len(secret) >= 16:
		score++
	}

	lineLower := strings.ToLower(line)
	for _, kw := range contextKeywords {
		if strings.Contains(lineLower, kw) {
			score++
			break
		}
	}

	// distinct-character ratio as a cheap entropy proxy
	if len(secret) > 0 && float64(distinctChars(secret)) >= float64(len(secret))*0.7 {
		score++
	}

	switch {
	case score >= 5:
		return model.ConfidenceHigh
	case score >= 3:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
