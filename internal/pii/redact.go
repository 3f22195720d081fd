// Package pii scrubs contact details from free text before it leaves the process.
//
// Redaction is a best-effort heuristic over regular expressions. It catches the
// common shapes of email addresses, phone numbers and URLs; it does not guarantee
// complete removal of personal data, and callers handling regulated data must not
// rely on it as the only control.
package pii

import (
	"regexp"
	"strings"
)

const (
	EmailToken = "[EMAIL]"
	PhoneToken = "[PHONE]"
	URLToken   = "[URL]"
)

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s()\-]{7,}\d`)
	urlPattern   = regexp.MustCompile(`https?://\S+|www\.\S+`)

	yearRange = regexp.MustCompile(`^(19|20)\d{2}\s*-\s*(19|20)\d{2}$`)
)

// Redact replaces emails, then phone numbers, then URLs with fixed tokens and
// trims the result. The order is fixed; applying it to its own output is a no-op.
func Redact(text string) string {
	text = emailPattern.ReplaceAllString(text, EmailToken)
	text = phonePattern.ReplaceAllStringFunc(text, redactPhone)
	text = urlPattern.ReplaceAllString(text, URLToken)
	return strings.TrimSpace(text)
}

// redactPhone keeps employment date ranges such as "2019 - 2021" that share the
// phone shape, and runs with fewer than seven digits.
func redactPhone(match string) string {
	if yearRange.MatchString(match) {
		return match
	}
	digits := 0
	for _, r := range match {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 {
		return match
	}
	return PhoneToken
}
