// Package http implements the parts of Hypertext Transfer Protocol (HTTP)
// message heads that cookie handling needs: field lines, start lines
// and a head decoder. It performs no I/O of its own beyond reading
// from the given [io.Reader].
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
//
// - https://datatracker.ietf.org/doc/html/rfc6265
package http
