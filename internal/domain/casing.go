package domain

// Identifier casing helpers. Pascal identifiers are ASCII letters, digits and
// underscores; these helpers are intentionally byte-oriented.

// IsPascalCase reports whether s starts with an upper-case letter and
// contains no underscores. Single upper-case letters qualify ("T").
func IsPascalCase(s string) bool {
	if s == "" {
		return false
	}
	if !isUpper(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			return false
		}
		if !isLetter(c) && !isDigit(c) {
			return false
		}
	}
	return true
}

// HasTypePrefix reports whether s follows the "<prefix><PascalCase>" shape,
// e.g. HasTypePrefix('T', "TCustomer") is true while "Tcustomer" and "TX_"
// are not.
func HasTypePrefix(prefix byte, s string) bool {
	if len(s) < 2 {
		return false
	}
	if s[0] != prefix {
		return false
	}
	return IsPascalCase(s[1:])
}

// IsAllCaps reports whether s is SCREAMING_SNAKE_CASE (letters upper-case,
// digits and underscores allowed, must contain at least one letter).
func IsAllCaps(s string) bool {
	if s == "" {
		return false
	}
	hasLetter := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUpper(c):
			hasLetter = true
		case isDigit(c) || c == '_':
		default:
			return false
		}
	}
	return hasLetter
}

func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isLetter(c byte) bool { return isUpper(c) || isLower(c) }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
