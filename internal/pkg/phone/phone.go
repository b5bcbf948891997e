// Package phone normalizes customer phone numbers into E.164 form.
//
// WhatsApp destinations must be E.164 ("+" followed by country code and
// subscriber number). Customer input arrives in every shape imaginable:
// local numbers with a leading zero, formatted numbers with spaces and
// dashes, or values copied straight out of a chat app carrying the
// "whatsapp:" prefix.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// Normalize converts a raw phone string into E.164. Numbers without a
// country code get defaultCountryCode (e.g. "+91") prepended after the
// leading zero, if any, is stripped.
func Normalize(raw, defaultCountryCode string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.TrimPrefix(p, "whatsapp:")

	// Strip common formatting characters
	for _, ch := range []string{" ", "-", "(", ")", "."} {
		p = strings.ReplaceAll(p, ch, "")
	}

	if p == "" {
		return "", fmt.Errorf("phone number is empty")
	}

	// "00" international prefix is equivalent to "+"
	if strings.HasPrefix(p, "00") {
		p = "+" + p[2:]
	}

	if !strings.HasPrefix(p, "+") {
		p = defaultCountryCode + strings.TrimLeft(p, "0")
	}

	if !e164Pattern.MatchString(p) {
		return "", fmt.Errorf("phone number %q is not E.164-normalizable", raw)
	}

	return p, nil
}

// Mask hides the middle digits of a phone number for share history
// listings. Short values are returned unchanged.
func Mask(p string) string {
	if len(p) <= 7 {
		return p
	}
	return p[:5] + "*****" + p[len(p)-2:]
}
