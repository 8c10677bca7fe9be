package cookie

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Entry is what a [Dict] can hold: [*Cookie] or [*LiveCookie].
type Entry[T any] interface {
	HeaderValue() (string, bool)
	Clone() T
}

// Dict is a collection of cookies keyed by name.
// Setting a name that is already present replaces the stored cookie.
// Iteration is in name order.
type Dict[T Entry[T]] struct {
	entries map[string]T
}

func NewDict[T Entry[T]]() *Dict[T] {
	return &Dict[T]{entries: make(map[string]T)}
}

// DictFromList collects cookies by name. Later cookies overwrite earlier ones.
func DictFromList(cookies []*Cookie) *Dict[*Cookie] {
	d := NewDict[*Cookie]()
	for _, c := range cookies {
		d.Set(c.Name, c)
	}
	return d
}

// Copy returns a dict holding clones of every entry,
// so that neither dict observes changes made through the other.
func (d *Dict[T]) Copy() *Dict[T] {
	clone := make(map[string]T, len(d.entries))
	for name, entry := range d.entries {
		clone[name] = entry.Clone()
	}
	return &Dict[T]{entries: clone}
}

func (d *Dict[T]) Has(name string) bool {
	_, ok := d.entries[name]
	return ok
}

func (d *Dict[T]) Get(name string) (entry T, ok bool) {
	entry, ok = d.entries[name]
	return entry, ok
}

func (d *Dict[T]) Set(name string, entry T) { d.entries[name] = entry }

// Delete removes name. It fails with [ErrKeyNotFound] if name is not present.
func (d *Dict[T]) Delete(name string) error {
	if _, ok := d.entries[name]; !ok {
		return errors.Wrapf(ErrKeyNotFound, "%q", name)
	}
	delete(d.entries, name)
	return nil
}

func (d *Dict[T]) Len() int { return len(d.entries) }

// Names returns every name in sorted order.
func (d *Dict[T]) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Values returns every entry, ordered by name.
func (d *Dict[T]) Values() []T {
	values := make([]T, 0, len(d.entries))
	for _, name := range d.Names() {
		values = append(values, d.entries[name])
	}
	return values
}

// CookieHeaderValue joins "name=value" of every entry into a Cookie field value.
// Entries with an absent or blank value are left out.
func (d *Dict[T]) CookieHeaderValue() string {
	pairs := make([]string, 0, len(d.entries))
	for _, name := range d.Names() {
		if value, ok := d.entries[name].HeaderValue(); ok {
			pairs = append(pairs, name+"="+value)
		}
	}
	return joinPairs(pairs)
}

func joinPairs(pairs []string) string { return strings.Join(pairs, "; ") }
