package rule

import "strings"

const (
	CR   byte = '\r'
	LF   byte = '\n'
	SP   byte = ' '
	HTAB byte = '\t'
	VT   byte = 0x0B
	FF   byte = 0x0C
)

var (
	OWS         = []byte{SP, HTAB}
	CRLF        = []byte{CR, LF}
	Whitespaces = []byte{SP, HTAB, VT, FF, CR}
)

// Delimiters of the cookie grammars.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.1.1
const (
	PairSeparator  = ';'
	ValueSeparator = '='
	FieldSeparator = ':'
)

func IsWhitespace(r rune) bool {
	for _, ws := range Whitespaces {
		if r == rune(ws) {
			return true
		}
	}
	return false
}

func IsAlpha(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }
func IsDigit(r rune) bool { return '0' <= r && r <= '9' }

// TrimWhitespace removes leading and trailing [Whitespaces] from s.
func TrimWhitespace(s string) string {
	return strings.TrimFunc(s, IsWhitespace)
}

// IsBlank reports whether s is empty or consists of whitespace only.
func IsBlank(s string) bool { return TrimWhitespace(s) == "" }

// Cut slices s around the first sep and trims whitespace of both sides.
func Cut(s string, sep byte) (before, after string, found bool) {
	before, after, found = strings.Cut(s, string(sep))
	return TrimWhitespace(before), TrimWhitespace(after), found
}
