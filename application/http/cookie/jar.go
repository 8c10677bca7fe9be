package cookie

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type JarOptions struct {
	// Parse is used by [Jar.AddSetCookie].
	Parse ParseOptions
}

var DefaultJarOptions = JarOptions{
	Parse: DefaultParseOptions,
}

// Jar holds the cookies a user agent currently has.
//
// Cookies only get in through [Jar.Add], which is where expiration is
// checked: adding an already expired cookie removes the stored cookie of
// the same name. Cookies that expire later stay stored but are no longer
// reported by [Jar.ValidCookies].
//
// A Jar is not safe for concurrent use.
type Jar struct {
	cookies *Dict[*LiveCookie]
	parser  *Parser

	opts JarOptions

	logger *slog.Logger
	clock  clock.Clock
}

func NewJar(logger *slog.Logger, clock clock.Clock, opts JarOptions) *Jar {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Jar{
		cookies: NewDict[*LiveCookie](),
		parser:  NewParser(opts.Parse),
		opts:    opts,
		logger:  logger,
		clock:   clock,
	}
}

// Clone returns a jar with copies of every stored cookie.
func (j *Jar) Clone() *Jar {
	return &Jar{
		cookies: j.cookies.Copy(),
		parser:  j.parser,
		opts:    j.opts,
		logger:  j.logger,
		clock:   j.clock,
	}
}

// Add stores c, issued now.
// See [Jar.AddLive].
func (j *Jar) Add(c *Cookie) error {
	return j.AddLive(NewLiveCookie(c, j.clock.Now()))
}

// AddLive stores a copy of c under its name, replacing any cookie of that name.
// If c has already expired it is not stored and a stored cookie of that name is removed.
// It fails if the expiry of c can't be computed; the jar is left untouched then.
func (j *Jar) AddLive(c *LiveCookie) error {
	valid, err := c.Valid(j.clock.Now())
	if err != nil {
		return errors.Wrapf(err, "adding cookie %q", c.Name)
	}

	if valid {
		j.logger.Debug("storing cookie", slog.String("name", c.Name), slog.Bool("replaced", j.cookies.Has(c.Name)))
		j.cookies.Set(c.Name, c.Clone())
		return nil
	}

	// An expired cookie that was never set is simply ignored.
	if j.cookies.Has(c.Name) {
		j.logger.Debug("removing cookie expired by server", slog.String("name", c.Name))
		_ = j.cookies.Delete(c.Name)
	}

	return nil
}

// AddSetCookie parses a Set-Cookie field value and adds the result.
func (j *Jar) AddSetCookie(text string) error {
	c, err := j.parser.ParseSetCookieValue(text)
	if err != nil {
		return errors.Wrap(err, "parsing Set-Cookie value")
	}
	return j.Add(c)
}

// Set always fails with [ErrProtocol]; cookies must go through [Jar.Add]
// so their expiration is evaluated.
func (j *Jar) Set(name string, c *Cookie) error {
	return errors.Wrapf(ErrProtocol, "setting %q directly", name)
}

func (j *Jar) Has(name string) bool { return j.cookies.Has(name) }

// Get returns the stored cookie, whether or not it has expired since.
func (j *Jar) Get(name string) (*LiveCookie, bool) { return j.cookies.Get(name) }

// Delete removes name. It fails with [ErrKeyNotFound] if name is not stored.
func (j *Jar) Delete(name string) error {
	return j.cookies.Delete(name)
}

func (j *Jar) Names() []string { return j.cookies.Names() }
func (j *Jar) Len() int        { return j.cookies.Len() }

// Clear removes every cookie.
func (j *Jar) Clear() {
	j.logger.Debug("clearing jar", slog.Int("count", j.cookies.Len()))
	j.cookies = NewDict[*LiveCookie]()
}

// ValidCookies returns stored cookies that are valid at this moment, ordered by name.
// A cookie whose expiry can no longer be computed is skipped.
func (j *Jar) ValidCookies() []*LiveCookie {
	now := j.clock.Now()

	valid := make([]*LiveCookie, 0, j.cookies.Len())
	for _, c := range j.cookies.Values() {
		ok, err := c.Valid(now)
		if err != nil {
			j.logger.Warn("skipping cookie with unusable expiry",
				slog.String("name", c.Name), slog.String("error", err.Error()))
			continue
		}
		if ok {
			valid = append(valid, c)
		}
	}

	return valid
}

// BuildCookieHeaderValue returns the Cookie field value a user agent would send.
// Expired cookies and cookies with an absent or blank value are left out.
// Values are sent verbatim, without quoting or percent-encoding.
func (j *Jar) BuildCookieHeaderValue() string {
	pairs := make([]string, 0, j.cookies.Len())
	for _, c := range j.ValidCookies() {
		if value, ok := c.HeaderValue(); ok {
			pairs = append(pairs, c.Name+"="+value)
		}
	}
	return joinPairs(pairs)
}
