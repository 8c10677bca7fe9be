package http

import (
	"bytes"
	"strconv"
	"strings"

	"cookie-stack/application/util/rule"

	"github.com/pkg/errors"
)

// Field names relevant to cookies.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4
const (
	FieldCookie     = "Cookie"
	FieldSetCookie  = "Set-Cookie"
	FieldSetCookie2 = "Set-Cookie2" // Obsoleted by RFC 6265 but still seen.
)

type RequestLine struct {
	Method  string
	Target  string
	Version Version
}

type RequestHead struct {
	RequestLine
	Headers []Field
}

type StatusLine struct {
	Version      Version
	StatusCode   uint
	ReasonPhrase string
}

type ResponseHead struct {
	StatusLine
	Headers []Field
}

// [Major, Minor]
type Version [2]uint

// ParseVersion parses http version text(e.g. "HTTP/1.1") into [Version].
func ParseVersion(b []byte) (Version, error) {
	prefix := []byte("HTTP/")
	if !bytes.HasPrefix(b, prefix) {
		return Version{}, errors.Errorf("http version prefix not found: %s", b)
	}

	first, second, found := bytes.Cut(b[len(prefix):], []byte{'.'})
	if !found {
		return Version{}, errors.Errorf("dot seperator not found on version: %s", b)
	}

	major, err1 := strconv.ParseUint(string(first), 10, 64)
	minor, err2 := strconv.ParseUint(string(second), 10, 64)
	if err1 != nil || err2 != nil {
		return Version{}, errors.Errorf("http version is not convertable to int: %s", b)
	}

	return Version{uint(major), uint(minor)}, nil
}

func (ver Version) String() string {
	return "HTTP/" + strconv.FormatUint(uint64(ver[0]), 10) + "." + strconv.FormatUint(uint64(ver[1]), 10)
}

type Field struct{ Name, Value []byte }

func NewField(name, value string) Field {
	return Field{Name: []byte(name), Value: []byte(value)}
}

func ParseField(fieldLine []byte) (Field, error) {
	name, value, found := bytes.Cut(fieldLine, []byte{rule.FieldSeparator})
	if !found {
		return Field{}, errors.Errorf("colon seperator not found on header: %q", string(fieldLine))
	}

	// No whitespace is allowed between field name and colon.
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.1-2
	if !rule.IsValidToken(string(name)) {
		return Field{}, errors.Errorf("field name is not a valid token: %q", string(name))
	}

	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.1-3
	value = bytes.Trim(value, string(rule.OWS))

	return Field{Name: name, Value: value}, nil
}

// Is reports whether the field name equals name, ignoring case.
func (f *Field) Is(name string) bool {
	return strings.EqualFold(string(f.Name), name)
}

func (f *Field) Text() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(f.Name)
	buf.Write([]byte{rule.FieldSeparator, rule.SP})
	buf.Write(f.Value)
	return buf.Bytes()
}

// FieldValues returns values of every field named name in order of appearance.
// Values are never merged: Set-Cookie values may legitimately contain commas.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.3-5
func FieldValues(fields []Field, name string) []string {
	values := make([]string, 0)
	for _, f := range fields {
		if f.Is(name) {
			values = append(values, string(f.Value))
		}
	}
	return values
}
