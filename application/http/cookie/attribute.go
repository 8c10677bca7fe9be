package cookie

import (
	"math"
	"strconv"
	"strings"

	"cookie-stack/application/util/rule"

	"github.com/pkg/errors"
)

// Attribute is an optional cookie attribute name in its canonical form.
type Attribute string

const (
	Comment  Attribute = "comment"
	Domain   Attribute = "domain"
	Expires  Attribute = "expires"
	HTTPOnly Attribute = "httponly"
	MaxAge   Attribute = "max-age"
	Path     Attribute = "path"
	Secure   Attribute = "secure"
	Version  Attribute = "version"
)

// Attributes returns every recognized attribute in canonical order.
func Attributes() []Attribute {
	return []Attribute{Comment, Domain, Expires, HTTPOnly, MaxAge, Path, Secure, Version}
}

func (a Attribute) valid() bool {
	switch a {
	case Comment, Domain, Expires, HTTPOnly, MaxAge, Path, Secure, Version:
		return true
	}
	return false
}

// ParseAttribute normalizes key into an [Attribute].
// Matching ignores case and treats '_' as '-', so "Max_Age" is [MaxAge].
func ParseAttribute(key string) (Attribute, error) {
	normalized := strings.ReplaceAll(strings.ToLower(rule.TrimWhitespace(key)), "_", "-")

	attr := Attribute(normalized)
	if attr.valid() {
		return attr, nil
	}

	switch normalized {
	case "name", "value":
		return "", errors.Wrapf(ErrUnrecognizedAttribute, "required attribute passed as optional: %q", key)
	}

	return "", errors.Wrapf(ErrUnrecognizedAttribute, "%q", key)
}

type Kind uint8

const (
	KindAbsent Kind = iota
	KindText
	KindFlag
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindText:
		return "text"
	case KindFlag:
		return "flag"
	case KindNumber:
		return "number"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the value of a single attribute. The zero Value is absent.
type Value struct {
	kind Kind
	text string
	num  float64
}

func Text(s string) Value      { return Value{kind: KindText, text: s} }
func Number(f float64) Value   { return Value{kind: KindNumber, num: f} }
func Flag() Value              { return Value{kind: KindFlag} }
func Absent() Value            { return Value{} }
func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsSet() bool    { return v.kind != KindAbsent }
func (v Value) IsFlag() bool   { return v.kind == KindFlag }
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Text returns the textual value. ok is false unless v is [KindText].
func (v Value) Text() (s string, ok bool) { return v.text, v.kind == KindText }

// Number returns the numeric value. ok is false unless v is [KindNumber].
func (v Value) Number() (f float64, ok bool) { return v.num, v.kind == KindNumber }

// String renders v the way it would appear after '=' in a Set-Cookie value.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindFlag:
		return "true"
	}
	return ""
}

// toSeconds coerces a max-age value into [KindNumber].
func toSeconds(v Value) (Value, error) {
	var f float64
	switch v.kind {
	case KindAbsent:
		return v, nil
	case KindNumber:
		f = v.num
	case KindText:
		parsed, err := strconv.ParseFloat(rule.TrimWhitespace(v.text), 64)
		if err != nil {
			return Value{}, errors.Wrapf(ErrMalformedMaxAge, "%q", v.text)
		}
		f = parsed
	default:
		return Value{}, errors.Wrapf(ErrMalformedMaxAge, "max-age given as %s", v.kind)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, errors.Wrapf(ErrMalformedMaxAge, "%v is not finite", f)
	}

	return Number(f), nil
}
