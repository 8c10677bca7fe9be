package cookie

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnrecognizedAttribute = errors.New("unrecognized cookie attribute")
	ErrMalformedMaxAge       = errors.New("max-age is not a number")
	ErrMalformedCookie       = errors.New("cookie pair is malformed")
	ErrNotSetCookieHeader    = errors.New("not a Set-Cookie header")
	ErrMalformedDate         = errors.New("malformed http date")
	ErrKeyNotFound           = errors.New("cookie not found")
	ErrProtocol              = errors.New("use Add to put cookies into a jar")
)

// InvalidAttributeError is returned when a Set-Cookie value carries an
// attribute outside of the recognized set.
type InvalidAttributeError struct {
	Attribute string
	Input     string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid cookie attribute: %s in cookie: %s", e.Attribute, e.Input)
}

func (e *InvalidAttributeError) Unwrap() error { return ErrUnrecognizedAttribute }
