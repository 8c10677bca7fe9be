// Package adapter connects raw HTTP message heads to the cookie model:
// it extracts cookies from response and request fields and builds the
// Cookie field to send from a jar. It does no network I/O.
package adapter

import (
	"io"
	"log/slog"

	"cookie-stack/application/http"
	"cookie-stack/application/http/cookie"

	"github.com/pkg/errors"
)

type Options struct {
	Parse  cookie.ParseOptions
	Decode http.DecodeOptions
}

var DefaultOptions = Options{
	Parse:  cookie.DefaultParseOptions,
	Decode: http.DefaultDecodeOptions,
}

type Adapter struct {
	parser *cookie.Parser
	opts   Options

	logger *slog.Logger
}

func New(logger *slog.Logger, opts Options) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Adapter{
		parser: cookie.NewParser(opts.Parse),
		opts:   opts,
		logger: logger,
	}
}

// ParseHeaderLines parses full field lines such as "Set-Cookie: foo=bar; path=/".
func (a *Adapter) ParseHeaderLines(lines []string) ([]*cookie.Cookie, error) {
	cookies := make([]*cookie.Cookie, 0, len(lines))
	for idx, line := range lines {
		c, err := a.parser.ParseSetCookieHeaderLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing header line %d", idx)
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

// ParseFields parses every Set-Cookie and Set-Cookie2 field, in order of appearance.
// Fields are parsed one by one and never merged on commas,
// since dates and cookie values may contain commas.
func (a *Adapter) ParseFields(fields []http.Field) ([]*cookie.Cookie, error) {
	cookies := make([]*cookie.Cookie, 0)
	for _, f := range fields {
		if !f.Is(http.FieldSetCookie) && !f.Is(http.FieldSetCookie2) {
			continue
		}

		c, err := a.parser.ParseSetCookieValue(string(f.Value))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s field", f.Name)
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

// ReadResponse decodes a response head from r and returns the cookies it sets.
// The body is not read.
func (a *Adapter) ReadResponse(r io.Reader) ([]*cookie.Cookie, error) {
	var head http.ResponseHead
	if err := http.NewHeadDecoder(r, a.opts.Decode).DecodeResponse(&head); err != nil {
		return nil, errors.Wrap(err, "decoding response head")
	}

	cookies, err := a.ParseFields(head.Headers)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("cookies received",
		slog.Uint64("status", uint64(head.StatusCode)), slog.Int("count", len(cookies)))

	return cookies, nil
}

// ParseRequestFields merges the pairs of every Cookie field into one dict.
// A name appearing more than once keeps its last value.
func (a *Adapter) ParseRequestFields(fields []http.Field) (*cookie.Dict[*cookie.Cookie], error) {
	merged := cookie.NewDict[*cookie.Cookie]()
	for _, value := range http.FieldValues(fields, http.FieldCookie) {
		d, err := a.parser.ParseCookieHeaderValue(value)
		if err != nil {
			return nil, errors.Wrap(err, "parsing Cookie field")
		}
		for _, c := range d.Values() {
			merged.Set(c.Name, c)
		}
	}
	return merged, nil
}

// ReadRequest decodes a request head from r and returns the cookies it carries.
func (a *Adapter) ReadRequest(r io.Reader) (*cookie.Dict[*cookie.Cookie], error) {
	var head http.RequestHead
	if err := http.NewHeadDecoder(r, a.opts.Decode).DecodeRequest(&head); err != nil {
		return nil, errors.Wrap(err, "decoding request head")
	}
	return a.ParseRequestFields(head.Headers)
}

// Store adds every cookie to jar, stopping at the first failure.
func (a *Adapter) Store(jar *cookie.Jar, cookies []*cookie.Cookie) error {
	for _, c := range cookies {
		if err := jar.Add(c); err != nil {
			return errors.Wrapf(err, "storing cookie %q", c.Name)
		}
	}
	return nil
}

// RequestField builds the Cookie field to send from jar.
// ok is false when there is nothing to send.
func (a *Adapter) RequestField(jar *cookie.Jar) (f http.Field, ok bool) {
	value := jar.BuildCookieHeaderValue()
	if value == "" {
		return http.Field{}, false
	}
	return http.NewField(http.FieldCookie, value), true
}
