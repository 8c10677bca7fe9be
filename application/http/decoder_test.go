package http

import (
	"io"
	"strings"
	"testing"

	"cookie-stack/application/util/rule"

	"github.com/stretchr/testify/suite"
)

type HeadDecoderTestSuite struct {
	suite.Suite
}

func TestHeadDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(HeadDecoderTestSuite))
}

func (s *HeadDecoderTestSuite) TestReadLine() {
	testcases := []struct {
		desc     string
		opts     DecodeOptions
		limit    uint
		input    string
		expected string
		wantErr  error
	}{
		{
			desc:     "simple line with CRLF",
			input:    "Hello\r\n",
			expected: "Hello",
		},
		{
			desc:    "line exceeding limit",
			input:   "Hey\r\n",
			limit:   1,
			wantErr: errLineTooLong,
		},
		{
			desc:    "Sole LF (fail)",
			input:   "Hello\n",
			wantErr: ErrMissingCRBeforeLF,
		},
		{
			desc:     "Sole LF (success)",
			opts:     DecodeOptions{AllowSoleLF: true},
			input:    "Hello\n",
			expected: "Hello",
		},
		{
			desc:     "line without CR before LF",
			input:    "Hello \r World!\r\n",
			expected: "Hello   World!",
		},
		{
			desc:     "line with lenient whitespace",
			opts:     DecodeOptions{LenientWhitespace: true},
			input:    "Hello" + string(rule.Whitespaces) + "World!" + "\r\n",
			expected: "Hello" + strings.Repeat(" ", len(rule.Whitespaces)) + "World!",
		},
		{
			desc:    "unexpected EOF",
			input:   "Hello",
			wantErr: io.ErrUnexpectedEOF,
		},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			d := NewHeadDecoder(strings.NewReader(tc.input), tc.opts)

			b, err := d.readLine(tc.limit)
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				return
			}

			s.NoError(err)
			s.Equal(tc.expected, string(b))
		})
	}
}

func (s *HeadDecoderTestSuite) TestDecodeHeaders() {
	testcases := []struct {
		desc     string
		opts     DecodeOptions
		input    string
		expected []Field
		wantErr  error
	}{
		{
			desc: "simple headers",
			input: "" +
				"Content-Type: text/html\r\n" +
				"Set-Cookie: visited=yes\r\n" +
				"\r\n",
			expected: []Field{
				NewField("Content-Type", "text/html"),
				NewField("Set-Cookie", "visited=yes"),
			},
		},
		{
			desc: "headers exceeding limit",
			opts: DecodeOptions{MaxFieldLineLength: 5},
			input: "" +
				"Content-Type: text/html\r\n" +
				"\r\n",
			wantErr: ErrFieldLineTooLong,
		},
		{
			desc:    "malformed headers",
			input:   "Content-Type text/html\r\n",
			wantErr: ErrMalformedFieldLine,
		},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			d := NewHeadDecoder(strings.NewReader(tc.input), tc.opts)

			h := []Field{}
			err := d.decodeHeaders(&h)
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				return
			}

			s.NoError(err)
			s.Equal(tc.expected, h)
		})
	}
}

func (s *HeadDecoderTestSuite) TestDecodeResponse() {
	body := "success"
	raw := "" +
		"HTTP/1.1 200 OK\r\n" +
		"Content-Length: 7\r\n" +
		"Set-Cookie: visited=yes; Path=/\r\n" +
		"\r\n" +
		body

	expected := ResponseHead{
		StatusLine: StatusLine{
			Version:      Version{1, 1},
			StatusCode:   200,
			ReasonPhrase: "OK",
		},
		Headers: []Field{
			NewField("Content-Length", "7"),
			NewField("Set-Cookie", "visited=yes; Path=/"),
		},
	}

	d := NewHeadDecoder(strings.NewReader(raw), DefaultDecodeOptions)

	var head ResponseHead
	s.Require().NoError(d.DecodeResponse(&head))
	s.Equal(expected, head)

	b, err := io.ReadAll(d.Rest())
	s.NoError(err)
	s.Equal(body, string(b))
}

func (s *HeadDecoderTestSuite) TestDecodeRequest() {
	raw := "" +
		"\r\n" + // Empty line before message is allowed.
		"GET /get HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Cookie: a=b; c=d\r\n" +
		"\r\n"

	expected := RequestHead{
		RequestLine: RequestLine{
			Method:  "GET",
			Target:  "/get",
			Version: Version{1, 1},
		},
		Headers: []Field{
			NewField("Host", "localhost"),
			NewField("Cookie", "a=b; c=d"),
		},
	}

	d := NewHeadDecoder(strings.NewReader(raw), DefaultDecodeOptions)

	var head RequestHead
	s.Require().NoError(d.DecodeRequest(&head))
	s.Equal(expected, head)
}

func (s *HeadDecoderTestSuite) TestParseStatusLine() {
	testcases := []struct {
		desc     string
		input    string
		expected StatusLine
		wantErr  bool
	}{
		{
			desc:     "with reason phrase",
			input:    "HTTP/1.1 404 Not Found",
			expected: StatusLine{Version: Version{1, 1}, StatusCode: 404, ReasonPhrase: "Not Found"},
		},
		{
			desc:     "without reason phrase",
			input:    "HTTP/1.0 204",
			expected: StatusLine{Version: Version{1, 0}, StatusCode: 204},
		},
		{
			desc:    "status code too long",
			input:   "HTTP/1.1 2000 OK",
			wantErr: true,
		},
		{
			desc:    "bad version",
			input:   "HTTX/1.1 200 OK",
			wantErr: true,
		},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			got, err := parseStatusLine([]byte(tc.input))
			if tc.wantErr {
				s.Error(err)
				return
			}

			s.NoError(err)
			s.Equal(tc.expected, got)
		})
	}
}

func (s *HeadDecoderTestSuite) TestParseRequestLine() {
	testcases := []struct {
		desc     string
		input    string
		expected RequestLine
		wantErr  bool
	}{
		{
			desc:     "simple",
			input:    "GET / HTTP/1.1",
			expected: RequestLine{Method: "GET", Target: "/", Version: Version{1, 1}},
		},
		{
			desc:    "missing target",
			input:   "GET HTTP/1.1",
			wantErr: true,
		},
		{
			desc:    "invalid method",
			input:   "G@T / HTTP/1.1",
			wantErr: true,
		},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			got, err := parseRequestLine([]byte(tc.input))
			if tc.wantErr {
				s.Error(err)
				return
			}

			s.NoError(err)
			s.Equal(tc.expected, got)
		})
	}
}
