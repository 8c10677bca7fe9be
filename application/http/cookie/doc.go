// Package cookie models HTTP cookies as sent in Set-Cookie and Cookie
// fields, and keeps them in a jar that understands expiration.
//
// A [Cookie] only holds the attributes that were actually set.
// A [LiveCookie] additionally remembers when it was issued, so that
// Max-Age can be resolved against it. Max-Age takes precedence over
// Expires when both are present.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc2109
//
// - https://datatracker.ietf.org/doc/html/rfc6265
package cookie
