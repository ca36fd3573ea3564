package secrets

import "strings"

const maskChar = "*"

// Mask hides the interior of a secret, keeping the first and last 4
// characters visible. Values of 8 characters or fewer are masked entirely.
// Every finding must carry only the masked form; raw values never reach a
// report or log.
func Mask(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat(maskChar, len(secret))
	}
	const visible = 4
	return secret[:visible] + strings.Repeat(maskChar, len(secret)-visible*2) + secret[len(secret)-visible:]
}
