package cookie

import (
	"maps"
	"strings"
	"time"

	"cookie-stack/application/util/rule"
	"cookie-stack/lib/types/pointer"

	"github.com/pkg/errors"
)

// Attr is an attribute key with its value, as given by the caller.
// Key is normalized with [ParseAttribute].
type Attr struct {
	Key   string
	Value Value
}

// Cookie is a cookie as it appeared in a Set-Cookie or Cookie field.
// Only attributes that were set are stored; unset ones read as absent.
type Cookie struct {
	Name string
	// Value is nil when the cookie has no value at all.
	Value *string

	attrs map[Attribute]Value
}

// New creates a cookie. It fails with [ErrUnrecognizedAttribute] if any
// attribute key does not name a recognized attribute, and with
// [ErrMalformedMaxAge] if max-age is not a number.
func New(name string, value *string, attrs ...Attr) (*Cookie, error) {
	c := &Cookie{Name: name, Value: value, attrs: make(map[Attribute]Value, len(attrs))}
	for _, attr := range attrs {
		if err := c.Set(attr.Key, attr.Value); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewValue is a shorthand for [New] with a present value.
func NewValue(name, value string, attrs ...Attr) (*Cookie, error) {
	return New(name, pointer.To(value), attrs...)
}

// Get returns the value of the attribute named key.
// An unset attribute is returned as absent.
func (c *Cookie) Get(key string) (Value, error) {
	attr, err := ParseAttribute(key)
	if err != nil {
		return Value{}, err
	}
	return c.Attr(attr), nil
}

// Attr returns the value of a.
func (c *Cookie) Attr(a Attribute) Value { return c.attrs[a] }

// Set sets the attribute named key. Setting an absent value unsets it.
// max-age is stored as seconds, converting text if needed.
func (c *Cookie) Set(key string, v Value) error {
	attr, err := ParseAttribute(key)
	if err != nil {
		return err
	}
	return c.SetAttr(attr, v)
}

// SetAttr is like [Cookie.Set] for an already recognized attribute.
func (c *Cookie) SetAttr(a Attribute, v Value) error {
	if !a.valid() {
		return errors.Wrapf(ErrUnrecognizedAttribute, "%q", string(a))
	}

	if a == MaxAge {
		converted, err := toSeconds(v)
		if err != nil {
			return err
		}
		v = converted
	}

	if c.attrs == nil {
		c.attrs = make(map[Attribute]Value)
	}

	if !v.IsSet() {
		delete(c.attrs, a)
		return nil
	}

	c.attrs[a] = v
	return nil
}

// Attributes returns a copy of every set attribute.
func (c *Cookie) Attributes() map[Attribute]Value { return maps.Clone(c.attrs) }

func (c *Cookie) text(a Attribute) (string, bool) {
	v := c.attrs[a]
	if v.IsNumber() {
		return v.String(), true
	}
	return v.Text()
}

func (c *Cookie) Comment() (string, bool) { return c.text(Comment) }
func (c *Cookie) Domain() (string, bool)  { return c.text(Domain) }
func (c *Cookie) Path() (string, bool)    { return c.text(Path) }
func (c *Cookie) Version() (string, bool) { return c.text(Version) }

// Expires returns the expires attribute exactly as it was given.
func (c *Cookie) Expires() (string, bool) { return c.text(Expires) }

func (c *Cookie) MaxAge() (seconds float64, ok bool) { return c.attrs[MaxAge].Number() }

// HTTPOnly reports whether the httponly attribute is present.
func (c *Cookie) HTTPOnly() bool { return c.flag(HTTPOnly) }

// Secure reports whether the secure attribute is present.
func (c *Cookie) Secure() bool { return c.flag(Secure) }

// flag treats a valueless attribute and any non-empty text other than "false" as present.
func (c *Cookie) flag(a Attribute) bool {
	v := c.attrs[a]
	if s, ok := v.Text(); ok {
		return !strings.EqualFold(s, "false") && s != ""
	}
	return v.IsSet()
}

// ExpiresTime parses the expires attribute.
// ok is false when the attribute is not set.
func (c *Cookie) ExpiresTime() (t time.Time, ok bool, err error) {
	s, ok := c.Expires()
	if !ok {
		return time.Time{}, false, nil
	}

	e, err := ParseExpirationTime(s)
	if err != nil {
		return time.Time{}, true, errors.Wrapf(err, "parsing expires of cookie %q", c.Name)
	}

	return e.Time(), true, nil
}

// HeaderValue returns the value to put into a Cookie field.
// ok is false when the value is absent or blank.
func (c *Cookie) HeaderValue() (string, bool) {
	if c.Value == nil || rule.IsBlank(*c.Value) {
		return "", false
	}
	return *c.Value, true
}

// Equal reports whether c and other have the same name, value and attributes.
func (c *Cookie) Equal(other *Cookie) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Name != other.Name {
		return false
	}
	if (c.Value == nil) != (other.Value == nil) {
		return false
	}
	if c.Value != nil && *c.Value != *other.Value {
		return false
	}
	return maps.Equal(c.attrs, other.attrs)
}

func (c *Cookie) Clone() *Cookie {
	return &Cookie{
		Name:  c.Name,
		Value: pointer.Clone(c.Value),
		attrs: maps.Clone(c.attrs),
	}
}

func (c *Cookie) String() string { return c.format("Cookie") }

func (c *Cookie) format(kind string) string {
	var sb strings.Builder
	sb.WriteString("<" + kind + "(")
	sb.WriteString(c.Name)
	sb.WriteByte(rule.ValueSeparator)
	sb.WriteString(pointer.Deref(c.Value, ""))

	for _, attr := range Attributes() {
		v, ok := c.attrs[attr]
		if !ok {
			continue
		}
		sb.WriteString("; " + string(attr))
		if !v.IsFlag() {
			sb.WriteByte(rule.ValueSeparator)
			sb.WriteString(v.String())
		}
	}

	sb.WriteString(")>")
	return sb.String()
}
