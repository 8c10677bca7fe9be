package cookie

import (
	"cookie-stack/application/http"
	"cookie-stack/application/util/rule"
	"cookie-stack/lib/types/pointer"

	"github.com/pkg/errors"
)

type ParseOptions struct {
	// UnquoteValue removes double quotes surrounding a cookie value.
	// Off by default: values are kept exactly as received.
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.1.1
	UnquoteValue bool

	// ValidateExpires parses the expires attribute while parsing the cookie,
	// failing with [ErrMalformedDate] instead of when the expiry is first needed.
	ValidateExpires bool
}

var DefaultParseOptions = ParseOptions{
	UnquoteValue:    false,
	ValidateExpires: false,
}

// Parser parses the text of Cookie and Set-Cookie fields.
// It holds no state besides its options, so it is safe for concurrent use.
type Parser struct {
	opts ParseOptions
}

func NewParser(opts ParseOptions) *Parser {
	return &Parser{opts: opts}
}

var defaultParser = NewParser(DefaultParseOptions)

// ParseCookieHeaderValue parses a Cookie field value with [DefaultParseOptions].
func ParseCookieHeaderValue(text string) (*Dict[*Cookie], error) {
	return defaultParser.ParseCookieHeaderValue(text)
}

// ParseSetCookieValue parses a Set-Cookie field value with [DefaultParseOptions].
func ParseSetCookieValue(text string) (*Cookie, error) {
	return defaultParser.ParseSetCookieValue(text)
}

// ParseSetCookieHeaderLine parses a whole Set-Cookie field line with [DefaultParseOptions].
func ParseSetCookieHeaderLine(text string) (*Cookie, error) {
	return defaultParser.ParseSetCookieHeaderLine(text)
}

// ParseCookieHeaderValue parses the flat "name=value; name=value" pairs of a Cookie field.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.2.1
func (p *Parser) ParseCookieHeaderValue(text string) (*Dict[*Cookie], error) {
	dict := NewDict[*Cookie]()
	for _, pair := range rule.SplitPairs(text) {
		name, value, err := p.parsePair(pair)
		if err != nil {
			return nil, err
		}

		dict.Set(name, &Cookie{Name: name, Value: pointer.To(value)})
	}

	return dict, nil
}

// ParseSetCookieValue parses "name=value" followed by attributes, all separated by ';'.
// The value may itself contain '='. An attribute without '=' is a flag.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.1.1
func (p *Parser) ParseSetCookieValue(text string) (*Cookie, error) {
	pairs := rule.SplitPairs(text)
	if len(pairs) == 0 {
		return nil, errors.Wrap(ErrMalformedCookie, "empty cookie")
	}

	name, value, err := p.parsePair(pairs[0])
	if err != nil {
		return nil, err
	}

	c := &Cookie{Name: name, Value: pointer.To(value)}
	for _, pair := range pairs[1:] {
		key, val, found := rule.Cut(pair, rule.ValueSeparator)

		attr, err := ParseAttribute(key)
		if err != nil {
			return nil, &InvalidAttributeError{Attribute: key, Input: text}
		}

		v := Flag()
		if found {
			v = Text(val)
		}

		if err := c.SetAttr(attr, v); err != nil {
			return nil, errors.Wrapf(err, "in cookie: %s", text)
		}
	}

	if p.opts.ValidateExpires {
		if _, _, err := c.ExpiresTime(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ParseSetCookieHeaderLine parses a field line such as "Set-Cookie: foo=bar; path=/".
// Set-Cookie2 lines are accepted as well.
func (p *Parser) ParseSetCookieHeaderLine(text string) (*Cookie, error) {
	name, value, found := rule.Cut(text, rule.FieldSeparator)
	if !found {
		return nil, errors.Wrapf(ErrNotSetCookieHeader, "%q", text)
	}

	field := http.NewField(name, value)
	if !field.Is(http.FieldSetCookie) && !field.Is(http.FieldSetCookie2) {
		return nil, errors.Wrapf(ErrNotSetCookieHeader, "%q", text)
	}

	return p.ParseSetCookieValue(value)
}

func (p *Parser) parsePair(pair string) (name, value string, err error) {
	name, value, found := rule.Cut(pair, rule.ValueSeparator)
	if !found {
		return "", "", errors.Wrapf(ErrMalformedCookie, "missing '=' in %q", pair)
	}

	if p.opts.UnquoteValue {
		value = rule.Unquote(value)
	}

	return name, value, nil
}
