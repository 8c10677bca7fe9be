package http

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"cookie-stack/application/util/rule"

	"github.com/pkg/errors"
)

type DecodeOptions struct {
	// AllowSoleLF specifies wheter a single LF character should be recognized as a valid line terminator.
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-3
	AllowSoleLF bool

	// LenientWhitespace replaces all [rule.Whitespaces] into [rule.SP].
	// And also trims preceding and trailing whitespace.
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3-3
	LenientWhitespace bool

	// MaxFieldLineLength sets the limit of field line length on headers.
	// Zero means no limit.
	MaxFieldLineLength uint

	// MaxRequestLineLength sets the limit of request line length.
	// Recommended: >= 8000
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3-5
	MaxRequestLineLength uint

	// MaxStatusLineLength sets the limit of status line length.
	MaxStatusLineLength uint
}

var DefaultDecodeOptions = DecodeOptions{
	AllowSoleLF:          false,
	LenientWhitespace:    false,
	MaxFieldLineLength:   0,
	MaxRequestLineLength: 0,
	MaxStatusLineLength:  0,
}

var (
	errLineTooLong       = errors.New("line length exceeeds limit")
	ErrMissingCRBeforeLF = errors.New("missing CR before LF")

	ErrFieldLineTooLong   = errors.New("field line length exceeds limit")
	ErrMalformedFieldLine = errors.New("field line is malformed")

	ErrRequestLineTooLong   = errors.New("request line length exceeds limit")
	ErrMalformedRequestLine = errors.New("request line is malformed")

	ErrStatusLineTooLong   = errors.New("status line length exceeds limit")
	ErrMalformedStatusLine = errors.New("status line is malformed")
)

// HeadDecoder decodes a message head: start line and field lines up to
// the empty line. The message body, if any, is left unread in [HeadDecoder.Rest].
type HeadDecoder struct {
	br   *bufio.Reader
	opts DecodeOptions
}

func NewHeadDecoder(r io.Reader, opts DecodeOptions) *HeadDecoder {
	return &HeadDecoder{br: bufio.NewReader(r), opts: opts}
}

// Rest returns a reader of whatever follows the decoded head.
func (hd *HeadDecoder) Rest() io.Reader { return hd.br }

// h MUST be a non-nil pointer
func (hd *HeadDecoder) DecodeRequest(h *RequestHead) error {
	line, err := hd.readStartLine(hd.opts.MaxRequestLineLength, ErrRequestLineTooLong)
	if err != nil {
		return errors.Wrap(err, "reading request line")
	}

	reqLine, err := parseRequestLine(line)
	if err != nil {
		return ErrMalformedRequestLine
	}

	var headers []Field
	if err := hd.decodeHeaders(&headers); err != nil {
		return errors.Wrap(err, "parsing headers")
	}

	*h = RequestHead{RequestLine: reqLine, Headers: headers}

	return nil
}

// h MUST be a non-nil pointer
func (hd *HeadDecoder) DecodeResponse(h *ResponseHead) error {
	line, err := hd.readStartLine(hd.opts.MaxStatusLineLength, ErrStatusLineTooLong)
	if err != nil {
		return errors.Wrap(err, "reading status line")
	}

	statLine, err := parseStatusLine(line)
	if err != nil {
		return ErrMalformedStatusLine
	}

	var headers []Field
	if err := hd.decodeHeaders(&headers); err != nil {
		return errors.Wrap(err, "parsing headers")
	}

	*h = ResponseHead{StatusLine: statLine, Headers: headers}

	return nil
}

func (hd *HeadDecoder) readLine(limit uint) ([]byte, error) {
	b, err := hd.br.ReadBytes(rule.LF)
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if limit > 0 && uint(len(b)) > limit {
		// TODO: This does not prevent reading huge bytes.
		return nil, errLineTooLong
	}

	b = b[:len(b)-1] // Remove LF.

	if !hd.opts.AllowSoleLF {
		if len(b) == 0 || b[len(b)-1] != rule.CR {
			return nil, ErrMissingCRBeforeLF
		}
		b = b[:len(b)-1] // Remove CR.
	} else {
		b = bytes.TrimSuffix(b, []byte{rule.CR})
	}

	if hd.opts.LenientWhitespace {
		for _, c := range rule.Whitespaces {
			b = bytes.ReplaceAll(b, []byte{c}, []byte{rule.SP})
		}
		return bytes.Trim(b, string([]byte{rule.SP})), nil
	}

	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-4
	return bytes.ReplaceAll(b, []byte{rule.CR}, []byte{rule.SP}), nil
}

func (hd *HeadDecoder) readStartLine(limit uint, tooLong error) ([]byte, error) {
	for {
		b, err := hd.readLine(limit)
		if err != nil {
			if errors.Is(err, errLineTooLong) {
				return nil, tooLong
			}
			return nil, err
		}

		// An empty line can be received before message.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-6
		if len(b) > 0 {
			return b, nil
		}
	}
}

func (hd *HeadDecoder) decodeHeaders(headers *[]Field) error {
	tmpHeaders := make([]Field, 0)
	for {
		fieldLine, err := hd.readLine(hd.opts.MaxFieldLineLength)
		if err != nil {
			if errors.Is(err, errLineTooLong) {
				return ErrFieldLineTooLong
			}
			return errors.Wrap(err, "reading line")
		}

		if len(fieldLine) == 0 {
			// An empty line. This means that there are no more headers.
			break
		}

		field, err := ParseField(fieldLine)
		if err != nil {
			return ErrMalformedFieldLine
		}

		tmpHeaders = append(tmpHeaders, field)
	}

	*headers = tmpHeaders

	return nil
}

func parseRequestLine(line []byte) (RequestLine, error) {
	parts := bytes.Split(line, []byte{rule.SP})
	if len(parts) != 3 {
		return RequestLine{}, errors.New("request line is malformed")
	}

	method := string(parts[0])
	if !rule.IsValidToken(method) {
		return RequestLine{}, errors.New("method is not a valid token")
	}

	target := string(parts[1])
	if len(target) == 0 {
		return RequestLine{}, errors.New("request target should not be empty")
	}

	ver, err := ParseVersion(parts[2])
	if err != nil {
		return RequestLine{}, errors.Wrap(err, "parsing version")
	}

	return RequestLine{Method: method, Target: target, Version: ver}, nil
}

func parseStatusLine(line []byte) (StatusLine, error) {
	parts := bytes.SplitN(line, []byte{rule.SP}, 3)
	if len(parts) < 2 {
		return StatusLine{}, errors.New("status line is malformed")
	}

	ver, err := ParseVersion(parts[0])
	if err != nil {
		return StatusLine{}, errors.Wrap(err, "parsing version")
	}

	statusCodeStr := string(parts[1])
	statusCode, err := strconv.ParseUint(statusCodeStr, 10, 64)
	if err != nil || len(statusCodeStr) != 3 {
		return StatusLine{}, errors.Errorf("status code is malformed: %q", statusCodeStr)
	}

	// reason-phrase is optional.
	var reasonPhrase string
	if len(parts) == 3 {
		reasonPhrase = string(parts[2])
	}

	return StatusLine{Version: ver, StatusCode: uint(statusCode), ReasonPhrase: reasonPhrase}, nil
}
