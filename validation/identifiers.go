package validation

import (
	"regexp"
	"strings"
)

// Identifier extraction used by the cancellation flow: a reservation id, a
// phone number or an email address mentioned anywhere in the message.

var reservationIDRe = regexp.MustCompile(`RES\d+`)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// ExtractReservationID finds a reservation id (RES...) in the message.
func ExtractReservationID(message string) string {
	return reservationIDRe.FindString(strings.ToUpper(message))
}

// ExtractPhone finds a phone number in the message, reduced to digits and an
// optional leading plus.
func ExtractPhone(message string) string {
	for _, re := range phonePatterns {
		if m := re.FindString(message); m != "" {
			return nonPhoneChars.ReplaceAllString(m, "")
		}
	}
	return ""
}

// ExtractEmail finds an email address in the message.
func ExtractEmail(message string) string {
	return emailRe.FindString(message)
}
