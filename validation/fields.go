package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Per-field validators. Each returns whether the value is acceptable together
// with the normalized value on success, or a customer-facing reason on failure.

var (
	nameCharsRe    = regexp.MustCompile(`^[A-Za-z\s\-'.]+$`)
	nameLetterRe   = regexp.MustCompile(`[A-Za-z]`)
	repeatSpecialRe = regexp.MustCompile(`[-'.]{2,}`)
	nonDigitsRe    = regexp.MustCompile(`[^\d]`)
	emailPatternRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateName checks a customer name and normalizes it to title case.
func ValidateName(name string) (bool, string) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return false, "Name cannot be empty"
	}
	if len(cleaned) < 2 {
		return false, "Name too short (minimum 2 characters)"
	}
	if len(cleaned) > 50 {
		return false, "Name too long (maximum 50 characters)"
	}
	if !nameCharsRe.MatchString(cleaned) {
		return false, "Name contains invalid characters"
	}
	if !nameLetterRe.MatchString(cleaned) {
		return false, "Name must contain at least one letter"
	}
	if repeatSpecialRe.MatchString(cleaned) {
		return false, "Name contains consecutive special characters"
	}
	return true, titleCase(cleaned)
}

func titleCase(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '\'' || r == '.':
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteString(strings.ToUpper(string(r)))
			startOfWord = false
		default:
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}

// ValidatePhone checks a phone number and normalizes it to a canonical
// punctuated form. Ten digits assume country code 1.
func ValidatePhone(phone string) (bool, string) {
	if strings.TrimSpace(phone) == "" {
		return false, "Phone number cannot be empty"
	}
	digits := nonDigitsRe.ReplaceAllString(strings.TrimSpace(phone), "")
	if digits == "" {
		return false, "Invalid phone number format"
	}
	if len(digits) < 10 {
		return false, "Phone number too short (minimum 10 digits)"
	}
	if len(digits) > 13 {
		return false, "Phone number too long (maximum 13 digits)"
	}

	var formatted string
	switch len(digits) {
	case 10:
		formatted = fmt.Sprintf("+1 (%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
	case 11:
		formatted = fmt.Sprintf("+%s (%s) %s-%s", digits[0:1], digits[1:4], digits[4:7], digits[7:11])
	default:
		formatted = fmt.Sprintf("+%s (%s) %s-%s", digits[0:2], digits[2:5], digits[5:8], digits[8:])
	}
	return true, formatted
}

// ValidateEmail checks an email address and normalizes it to lower case.
func ValidateEmail(email string) (bool, string) {
	cleaned := strings.ToLower(strings.TrimSpace(email))
	if cleaned == "" {
		return false, "Email cannot be empty"
	}
	if !emailPatternRe.MatchString(cleaned) {
		return false, "Invalid email format"
	}
	return true, cleaned
}

// ValidatePartySize checks a party size against the shop's maximum.
func ValidatePartySize(partySize, maxSize int) (bool, string) {
	if partySize < 1 {
		return false, "Party size must be at least 1"
	}
	if partySize > maxSize {
		return false, fmt.Sprintf("Maximum party size is %d", maxSize)
	}
	return true, "Valid party size"
}
