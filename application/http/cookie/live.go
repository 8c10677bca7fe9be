package cookie

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// LiveCookie is a cookie that knows when it was issued,
// which is what max-age is counted from.
type LiveCookie struct {
	*Cookie

	issued time.Time
}

// NewLiveCookie wraps a copy of c, issued at issued.
func NewLiveCookie(c *Cookie, issued time.Time) *LiveCookie {
	return &LiveCookie{Cookie: c.Clone(), issued: issued}
}

func (lc *LiveCookie) IssueTime() time.Time { return lc.issued }

// ExpiresAt returns the instant the cookie stops being valid.
// max-age wins over expires. ok is false for a session cookie.
func (lc *LiveCookie) ExpiresAt() (t time.Time, ok bool, err error) {
	if seconds, ok := lc.MaxAge(); ok {
		return lc.issued.Add(secondsToDuration(seconds)), true, nil
	}

	return lc.ExpiresTime()
}

// Valid reports whether the cookie is still valid at now.
// Session cookies are valid for as long as they are held.
func (lc *LiveCookie) Valid(now time.Time) (bool, error) {
	expiresAt, ok, err := lc.ExpiresAt()
	if err != nil {
		return false, errors.Wrap(err, "computing expiry")
	}
	if !ok {
		return true, nil
	}
	return expiresAt.After(now), nil
}

func (lc *LiveCookie) Equal(other *LiveCookie) bool {
	if lc == nil || other == nil {
		return lc == other
	}
	return lc.issued.Equal(other.issued) && lc.Cookie.Equal(other.Cookie)
}

func (lc *LiveCookie) Clone() *LiveCookie {
	return &LiveCookie{Cookie: lc.Cookie.Clone(), issued: lc.issued}
}

func (lc *LiveCookie) String() string { return lc.format("LiveCookie") }

// secondsToDuration saturates instead of overflowing on huge max-age values.
func secondsToDuration(seconds float64) time.Duration {
	ns := seconds * float64(time.Second)
	switch {
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(ns)
}
