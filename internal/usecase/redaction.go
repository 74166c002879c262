package usecase

import "regexp"

const (
	RedactedEmail = "[email hidden]"
	RedactedPhone = "[phone hidden]"
	RedactedLink  = "[link hidden]"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// Digit groups joined by single spaces, dots or dashes, optionally led by
	// '+' and a parenthesised area code.
	phoneCandidate = regexp.MustCompile(`\+?(?:\(\d{1,4}\)\s?)?\d+(?:[\s.\-]\d+)*`)
	urlPattern     = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s]+`)

	thousandsPattern = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)
	datePattern      = regexp.MustCompile(`^(?:\d{4}[\-/.]\d{1,2}[\-/.]\d{1,2}|\d{1,2}[\-/.]\d{1,2}[\-/.]\d{4})$`)
)

// RedactContactInfo hides contact details in message text. The passes run
// independently in a fixed order: email, phone, then URL.
func RedactContactInfo(text string) string {
	text = emailPattern.ReplaceAllString(text, RedactedEmail)
	text = phoneCandidate.ReplaceAllStringFunc(text, func(s string) string {
		if isPhoneNumber(s) {
			return RedactedPhone
		}
		return s
	})
	text = urlPattern.ReplaceAllString(text, RedactedLink)
	return text
}

// isPhoneNumber rejects prices written with thousands separators and
// calendar dates, which share the shape of a grouped phone number.
func isPhoneNumber(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return false
	}
	return !thousandsPattern.MatchString(s) && !datePattern.MatchString(s)
}
