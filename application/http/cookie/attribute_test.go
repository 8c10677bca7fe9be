package cookie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttribute(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected Attribute
		wantErr  bool
	}{
		{desc: "canonical", input: "max-age", expected: MaxAge},
		{desc: "upper case", input: "Max-Age", expected: MaxAge},
		{desc: "underscore", input: "max_age", expected: MaxAge},
		{desc: "flag", input: "HttpOnly", expected: HTTPOnly},
		{desc: "surrounding whitespace", input: " path ", expected: Path},
		{desc: "unknown", input: "samesite", wantErr: true},
		{desc: "required attribute", input: "name", wantErr: true},
		{desc: "empty", input: "", wantErr: true},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := ParseAttribute(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnrecognizedAttribute)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAttributesAreAllValid(t *testing.T) {
	for _, attr := range Attributes() {
		parsed, err := ParseAttribute(string(attr))
		assert.NoError(t, err)
		assert.Equal(t, attr, parsed)
	}
}

func TestValue(t *testing.T) {
	var zero Value
	assert.False(t, zero.IsSet())
	assert.Equal(t, KindAbsent, zero.Kind())
	assert.Equal(t, Absent(), zero)

	text := Text("/")
	s, ok := text.Text()
	assert.True(t, ok)
	assert.Equal(t, "/", s)
	_, ok = text.Number()
	assert.False(t, ok)

	num := Number(1.5)
	f, ok := num.Number()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	assert.Equal(t, "1.5", num.String())

	flag := Flag()
	assert.True(t, flag.IsSet())
	assert.True(t, flag.IsFlag())
	_, ok = flag.Text()
	assert.False(t, ok)
}

func TestToSeconds(t *testing.T) {
	testcases := []struct {
		desc     string
		input    Value
		expected Value
		wantErr  bool
	}{
		{desc: "integer text", input: Text("3600"), expected: Number(3600)},
		{desc: "fractional text", input: Text(" 1.5 "), expected: Number(1.5)},
		{desc: "negative text", input: Text("-1"), expected: Number(-1)},
		{desc: "number", input: Number(10), expected: Number(10)},
		{desc: "absent", input: Absent(), expected: Absent()},
		{desc: "not a number", input: Text("soon"), wantErr: true},
		{desc: "not finite", input: Text("NaN"), wantErr: true},
		{desc: "flag", input: Flag(), wantErr: true},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := toSeconds(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformedMaxAge)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
