package rule

import (
	"strings"
)

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func IsValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if IsAlpha(c) || IsDigit(c) {
			continue
		}

		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+',
			'-', '.', '^', '_', '`', '|', '~':
			continue
		}

		return false
	}

	return true
}

// Unquote unquotes s if it was quoted with double quotes.
// Backslash escapes inside the quotes are removed.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	s = s[1 : len(s)-1]
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c == '\\' {
			// Take the escaped byte as is.
			idx++
			if idx == len(s) {
				break
			}
			c = s[idx]
		}
		sb.WriteByte(c)
	}

	return sb.String()
}

// SplitPairs splits s on [PairSeparator], trimming every part.
// Empty parts are dropped.
func SplitPairs(s string) []string {
	parts := strings.Split(s, string(rune(PairSeparator)))
	pairs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = TrimWhitespace(part)
		if part == "" {
			continue
		}
		pairs = append(pairs, part)
	}
	return pairs
}
