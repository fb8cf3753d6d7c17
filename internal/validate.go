package internal

import "strings"

// IsEmail reports whether s has the rough shape of an email address. The
// backend performs authoritative validation; this only catches obvious typos
// before a network round trip.
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 254 {
		return false
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.IndexByte(s[at+1:], '@') != -1 {
		return false
	}

	domain := s[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	return true
}

// IsNumericCode reports whether s is exactly length decimal digits.
func IsNumericCode(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
