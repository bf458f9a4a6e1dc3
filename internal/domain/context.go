package domain

import (
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// Session feature flags.
const (
	// FlagExceedMaxLength lets string fuzzing produce a value one character
	// longer than the maximum string length.
	FlagExceedMaxLength = "exceed-max-length"
	// FlagWidenLists lets resource fuzzers duplicate repeating elements.
	FlagWidenLists = "widen-lists"
)

// KnownFlags lists the flags the built-in fuzzers understand.
func KnownFlags() []string {
	return []string{FlagExceedMaxLength, FlagWidenLists}
}

const (
	// DefaultMaxDepth bounds the nesting of recursive generators.
	DefaultMaxDepth = 4
	// DefaultMaxStringLength is the FHIR limit for string values.
	DefaultMaxStringLength = 1024 * 1024
)

// Context is the state of one fuzz session: randomness, registry and log.
// It is not safe for concurrent use; parallel sessions each own a Context.
type Context struct {
	seed            int64
	source          rand.Source
	rng             *rand.Rand
	log             *MutationLog
	registry        *Registry
	flags           map[string]bool
	maxDepth        int
	depth           int
	path            []string
	maxStringLength int
	logger          *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithSeed fixes the RNG seed.
func WithSeed(seed int64) Option {
	return func(c *Context) {
		c.seed = seed
	}
}

// WithFlags enables the named feature flags.
func WithFlags(flags ...string) Option {
	return func(c *Context) {
		for _, flag := range flags {
			c.flags[flag] = true
		}
	}
}

// WithMaxDepth bounds recursive generation.
func WithMaxDepth(depth int) Option {
	return func(c *Context) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithMaxStringLength sets the string length limit used by the
// exceed-max-length mutation.
func WithMaxStringLength(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxStringLength = n
		}
	}
}

// WithRegistrar installs default factories.
func WithRegistrar(registrar Registrar) Option {
	return func(c *Context) {
		registrar(c.registry)
	}
}

// WithLogger sets the logger used for registry and repair diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContext creates a session. The leaf providers are always registered.
func NewContext(opts ...Option) *Context {
	c := &Context{
		log:             NewMutationLog(),
		registry:        NewRegistry(),
		flags:           make(map[string]bool),
		maxDepth:        DefaultMaxDepth,
		maxStringLength: DefaultMaxStringLength,
		logger:          slog.Default(),
	}

	registerProviders(c.registry)

	for _, opt := range opts {
		opt(c)
	}

	c.reseed()

	return c
}

func (c *Context) reseed() {
	c.source = rand.NewSource(c.seed)
	c.rng = rand.New(c.source)
}

// Reset discards the log and every built fuzzer and restarts the RNG from
// the session seed.
func (c *Context) Reset() {
	c.log = NewMutationLog()
	c.registry.reset()
	c.depth = 0
	c.path = nil
	c.reseed()
}

// Seed returns the session seed.
func (c *Context) Seed() int64 {
	return c.seed
}

// Log returns the session log.
func (c *Context) Log() *MutationLog {
	return c.log
}

// Registry returns the session registry.
func (c *Context) Registry() *Registry {
	return c.registry
}

// Flag reports whether a feature flag is enabled.
func (c *Context) Flag(name string) bool {
	return c.flags[name]
}

// MaxStringLength returns the configured string length limit.
func (c *Context) MaxStringLength() int {
	return c.maxStringLength
}

// Rand exposes the session RNG to fuzzers.
func (c *Context) Rand() *rand.Rand {
	return c.rng
}

// Intn returns a uniform int in [0, n).
func (c *Context) Intn(n int) int {
	return c.rng.Intn(n)
}

// CoinFlip returns true with probability 0.5.
func (c *Context) CoinFlip() bool {
	return c.Chance(0.5)
}

// Chance returns true with probability p.
func (c *Context) Chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}

	return c.rng.Float64() < p
}

// AddLog appends an entry to the session log under the qualified field path.
func (c *Context) AddLog(field, description string, before, after any) {
	c.log.Append(LogEntry{
		Field:       c.Qualify(field),
		Description: description,
		Before:      before,
		After:       after,
	})
}

// Anomaly records a structural conflict that could not be repaired.
func (c *Context) Anomaly(field, description string) {
	c.logger.Warn("Unresolved structural conflict", "field", c.Qualify(field), "description", description)
	c.AddLog(field, "anomaly: "+description, nil, nil)
}

// Within runs fn with log entries placed under path, the qualified path of the
// field whose nested node fn mutates.
func (c *Context) Within(path string, fn func()) {
	c.path = append(c.path, path)
	defer func() { c.path = c.path[:len(c.path)-1] }()

	fn()
}

// Qualify returns the log path of field at the current nesting. Inside
// Within, the leading type name is replaced by the enclosing path, so
// "Reference.reference" under "Patient.identifier[0].assigner" becomes
// "Patient.identifier[0].assigner.reference".
func (c *Context) Qualify(field string) string {
	if len(c.path) == 0 {
		return field
	}

	parent := c.path[len(c.path)-1]

	if _, rest, ok := strings.Cut(field, "."); ok {
		return parent + "." + rest
	}

	return parent + "." + field
}

// Nested runs fn one generation level deeper and reports whether it ran.
// It refuses once the maximum depth is reached.
func (c *Context) Nested(fn func()) bool {
	if c.depth >= c.maxDepth {
		return false
	}

	c.depth++
	defer func() { c.depth-- }()

	fn()

	return true
}

// subsetIndices draws k uniformly from [1, n] and then k distinct indices
// uniformly without replacement, returned in ascending order.
func (c *Context) subsetIndices(n int) []int {
	if n <= 0 {
		return nil
	}

	k := 1 + c.rng.Intn(n)
	picked := c.rng.Perm(n)[:k]
	sort.Ints(picked)

	return picked
}

// RandomSubset selects a non-empty random subset of mutators, preserving
// their relative order.
func RandomSubset[T any](c *Context, mutators []FieldMutator[T]) []FieldMutator[T] {
	indices := c.subsetIndices(len(mutators))
	subset := make([]FieldMutator[T], 0, len(indices))

	for _, i := range indices {
		subset = append(subset, mutators[i])
	}

	return subset
}

// PickAnother returns a value from domain that differs from current. When
// current is set, nil (unspecified) is one of the alternatives. It returns
// nil only when no alternative exists.
func PickAnother[E comparable](c *Context, current *E, domain []E) *E {
	candidates := make([]*E, 0, len(domain)+1)
	if current != nil {
		candidates = append(candidates, nil)
	}

	for _, value := range domain {
		if current != nil && value == *current {
			continue
		}

		candidates = append(candidates, &value)
	}

	if len(candidates) == 0 {
		return nil
	}

	return candidates[c.rng.Intn(len(candidates))]
}

// Strings returns the session string provider.
func (c *Context) Strings() TypeFuzzer[string] {
	return Require[string](c, m.KindString)
}

// IDs returns the session id provider.
func (c *Context) IDs() TypeFuzzer[string] {
	return Require[string](c, m.KindID)
}

// URIs returns the session URI provider.
func (c *Context) URIs() TypeFuzzer[string] {
	return Require[string](c, m.KindURI)
}

// Dates returns the session date provider.
func (c *Context) Dates() TypeFuzzer[string] {
	return Require[string](c, m.KindDate)
}

// DateTimes returns the session dateTime provider.
func (c *Context) DateTimes() TypeFuzzer[string] {
	return Require[string](c, m.KindDateTime)
}

// Booleans returns the session boolean provider.
func (c *Context) Booleans() TypeFuzzer[bool] {
	return Require[bool](c, m.KindBoolean)
}
