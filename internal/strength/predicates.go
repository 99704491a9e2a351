package strength

import "strings"

// HasUpper reports whether s contains an ASCII uppercase letter.
func HasUpper(s string) bool {
	return strings.ContainsFunc(s, isUpper)
}

// HasLower reports whether s contains an ASCII lowercase letter.
func HasLower(s string) bool {
	return strings.ContainsFunc(s, isLower)
}

// HasDigit reports whether s contains a decimal digit 0-9.
func HasDigit(s string) bool {
	return strings.ContainsFunc(s, isDigit)
}

// HasSpecial reports whether s contains a character that is neither an ASCII
// letter nor a digit. Non-ASCII letters count as special.
func HasSpecial(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !isUpper(r) && !isLower(r) && !isDigit(r)
	})
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
