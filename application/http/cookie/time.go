package cookie

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	// Preferred format, as used by RFC 1123 dates.
	httpDateFormat = "Mon, 2 Jan 2006 15:04:05 MST"
	// Netscape's original cookie format.
	// RFC 2109 specifies two-digit years, but four-digit years are what is actually sent.
	netscapeDateFormat = "Mon, 2-Jan-2006 15:04:05 MST"

	// outputFormat is used when an instant has to be rendered as text.
	outputFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// ParseTime parses an http date in either accepted format.
// The time zone token is ignored and the date is taken as UTC.
// An empty text yields the zero [time.Time] and no error.
func ParseTime(text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{httpDateFormat, netscapeDateFormat} {
		if t, err := time.Parse(layout, text); err == nil {
			return asUTC(t), nil
		}
	}

	return time.Time{}, errors.Wrapf(ErrMalformedDate, "%q", text)
}

// FormatTime renders t in UTC with a fixed layout that [ParseTime] accepts.
func FormatTime(t time.Time) string {
	return t.UTC().Format(outputFormat)
}

// asUTC keeps the wall clock of t but moves it into UTC.
func asUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ExpirationTime pairs an instant with its textual form.
// Whichever form it was built from is kept as is, the other one is derived on demand.
type ExpirationTime struct {
	instant time.Time
	text    string
}

// NewExpirationTime builds an ExpirationTime from seconds since the epoch.
func NewExpirationTime(seconds float64) (*ExpirationTime, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, errors.Errorf("expiration time must be a real number: %v", seconds)
	}

	sec, frac := math.Modf(seconds)
	return &ExpirationTime{instant: time.Unix(int64(sec), int64(frac*1e9)).UTC()}, nil
}

func ExpirationTimeAt(t time.Time) *ExpirationTime {
	return &ExpirationTime{instant: t.UTC()}
}

// ParseExpirationTime parses text with [ParseTime] and keeps text verbatim.
func ParseExpirationTime(text string) (*ExpirationTime, error) {
	t, err := ParseTime(text)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, errors.Wrap(ErrMalformedDate, "empty date")
	}

	return &ExpirationTime{instant: t, text: text}, nil
}

func (e *ExpirationTime) Time() time.Time { return e.instant }

// Unix returns the instant as seconds since the epoch.
func (e *ExpirationTime) Unix() float64 {
	return float64(e.instant.UnixNano()) / float64(time.Second)
}

func (e *ExpirationTime) String() string {
	if e.text == "" {
		e.text = FormatTime(e.instant)
	}
	return e.text
}
