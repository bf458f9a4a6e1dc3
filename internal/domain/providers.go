package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	gofuzz "github.com/google/gofuzz"
	"github.com/google/uuid"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idAlphabet   = alphanumeric + "-."
	maxIDLength  = 64
	dateLayout   = "2006-01-02"
)

var (
	earliestDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	latestDate   = time.Date(2099, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// registerProviders installs the leaf randomness providers.
func registerProviders(r *Registry) {
	Register[string](r, m.KindString, newStringFuzzer)
	Register[string](r, m.KindID, newIDFuzzer)
	Register[string](r, m.KindURI, newURIFuzzer)
	Register[string](r, m.KindDate, func(c *Context) TypeFuzzer[string] { return newDateFuzzer(c, false) })
	Register[string](r, m.KindDateTime, func(c *Context) TypeFuzzer[string] { return newDateFuzzer(c, true) })
	Register[bool](r, m.KindBoolean, newBoolFuzzer)
}

// corruption is one way of deriving a fuzzed leaf value from an existing one.
type corruption func(old string) string

// pickCorruption applies a random strategy and guarantees the result differs
// from old.
func pickCorruption(c *Context, old string, strategies []corruption) string {
	out := strategies[c.Intn(len(strategies))](old)
	if out == old {
		out = old + randomText(c, 1, alphanumeric)
	}

	return out
}

func randomText(c *Context, n int, alphabet string) string {
	var b strings.Builder

	b.Grow(n)

	for range n {
		b.WriteByte(alphabet[c.Intn(len(alphabet))])
	}

	return b.String()
}

type stringFuzzer struct {
	ctx     *Context
	unicode *gofuzz.Fuzzer
}

func newStringFuzzer(c *Context) TypeFuzzer[string] {
	return &stringFuzzer{
		ctx:     c,
		unicode: gofuzz.New().RandSource(c.source),
	}
}

func (f *stringFuzzer) Context() *Context { return f.ctx }

func (f *stringFuzzer) GenerateRandom() string {
	return randomText(f.ctx, 4+f.ctx.Intn(9), alphanumeric)
}

func (f *stringFuzzer) Fuzz(old string) string {
	strategies := []corruption{
		func(string) string { return f.GenerateRandom() },
		func(string) string {
			var s string

			f.unicode.Fuzz(&s)

			return s
		},
		func(old string) string { return "  " + old + "\t" },
		func(string) string { return "" },
	}

	if f.ctx.Flag(FlagExceedMaxLength) {
		strategies = append(strategies, func(string) string {
			return strings.Repeat(randomText(f.ctx, 1, alphanumeric), f.ctx.MaxStringLength()+1)
		})
	}

	return pickCorruption(f.ctx, old, strategies)
}

type idFuzzer struct {
	ctx *Context
}

func newIDFuzzer(c *Context) TypeFuzzer[string] {
	return &idFuzzer{ctx: c}
}

func (f *idFuzzer) Context() *Context { return f.ctx }

func (f *idFuzzer) GenerateRandom() string {
	id, err := uuid.NewRandomFromReader(f.ctx.rng)
	if err != nil {
		return randomText(f.ctx, 16, idAlphabet)
	}

	return id.String()
}

func (f *idFuzzer) Fuzz(old string) string {
	return pickCorruption(f.ctx, old, []corruption{
		func(string) string { return f.GenerateRandom() },
		func(string) string { return randomText(f.ctx, maxIDLength+1, idAlphabet) },
		func(old string) string { return old + " /#" + randomText(f.ctx, 2, alphanumeric) },
		func(string) string { return "" },
	})
}

var (
	hostWords   = []string{"acme", "clinic", "hospital", "lab", "registry", "health"}
	topDomains  = []string{"org", "com", "net", "de"}
	foreignURIs = []string{"ftp", "gopher", "htp", "javascript", "file"}
)

type uriFuzzer struct {
	ctx *Context
}

func newURIFuzzer(c *Context) TypeFuzzer[string] {
	return &uriFuzzer{ctx: c}
}

func (f *uriFuzzer) Context() *Context { return f.ctx }

func (f *uriFuzzer) GenerateRandom() string {
	u := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.example.%s", hostWords[f.ctx.Intn(len(hostWords))], topDomains[f.ctx.Intn(len(topDomains))]),
		Path:   "/" + strings.ToLower(randomText(f.ctx, 6, alphanumeric)),
	}

	return u.String()
}

func (f *uriFuzzer) Fuzz(old string) string {
	return pickCorruption(f.ctx, old, []corruption{
		func(old string) string {
			u, err := url.Parse(old)
			if err != nil || u.Scheme == "" {
				u, _ = url.Parse(f.GenerateRandom())
			}

			u.Scheme = foreignURIs[f.ctx.Intn(len(foreignURIs))]

			return u.String()
		},
		func(old string) string {
			u, err := url.Parse(old)
			if err != nil {
				return strings.TrimPrefix(old, "https://")
			}

			u.Scheme = ""

			return strings.TrimPrefix(u.String(), "//")
		},
		func(old string) string {
			if old == "" {
				return " "
			}

			pos := f.ctx.Intn(len(old))

			return old[:pos] + " " + old[pos:]
		},
		func(string) string {
			id, err := uuid.NewRandomFromReader(f.ctx.rng)
			if err != nil {
				return "urn:uuid:"
			}

			return id.URN()
		},
	})
}

type dateFuzzer struct {
	ctx      *Context
	withTime bool
}

func newDateFuzzer(c *Context, withTime bool) TypeFuzzer[string] {
	return &dateFuzzer{ctx: c, withTime: withTime}
}

func (f *dateFuzzer) Context() *Context { return f.ctx }

func (f *dateFuzzer) randomTime() time.Time {
	span := latestDate.Unix() - earliestDate.Unix()
	return time.Unix(earliestDate.Unix()+f.ctx.rng.Int63n(span), 0).UTC()
}

func (f *dateFuzzer) format(t time.Time) string {
	if f.withTime {
		return strfmt.DateTime(t).String()
	}

	return t.Format(dateLayout)
}

func (f *dateFuzzer) parse(value string) (time.Time, bool) {
	if f.withTime {
		dt, err := strfmt.ParseDateTime(value)
		return time.Time(dt), err == nil
	}

	t, err := time.Parse(dateLayout, value)

	return t, err == nil
}

func (f *dateFuzzer) GenerateRandom() string {
	return f.format(f.randomTime())
}

func (f *dateFuzzer) Fuzz(old string) string {
	strategies := []corruption{
		func(old string) string {
			t, ok := f.parse(old)
			if !ok {
				return f.GenerateRandom()
			}

			return f.format(t.AddDate(0, 0, 1+f.ctx.Intn(3650)))
		},
		func(old string) string {
			t, ok := f.parse(old)
			if !ok {
				t = f.randomTime()
			}

			if f.ctx.CoinFlip() {
				return t.Format("2006")
			}

			return t.Format("2006-01")
		},
		func(string) string {
			impossible := []string{"02-30", "13-01", "00-10", "04-31"}
			return fmt.Sprintf("%04d-%s", 1900+f.ctx.Intn(200), impossible[f.ctx.Intn(len(impossible))])
		},
		func(string) string {
			garbage := []string{"yesterday", "not-a-date", "31/12/2020", "2020-1-1"}
			return garbage[f.ctx.Intn(len(garbage))]
		},
	}

	if f.withTime {
		// A time without a zone offset is not a valid dateTime.
		strategies = append(strategies, func(old string) string {
			t, ok := f.parse(old)
			if !ok {
				t = f.randomTime()
			}

			return t.Format("2006-01-02T15:04:05")
		})
	}

	return pickCorruption(f.ctx, old, strategies)
}

type boolFuzzer struct {
	ctx *Context
}

func newBoolFuzzer(c *Context) TypeFuzzer[bool] {
	return &boolFuzzer{ctx: c}
}

func (f *boolFuzzer) Context() *Context { return f.ctx }

func (f *boolFuzzer) GenerateRandom() bool { return f.ctx.CoinFlip() }

func (f *boolFuzzer) Fuzz(old bool) bool { return !old }
