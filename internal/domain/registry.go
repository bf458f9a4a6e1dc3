package domain

import (
	"fmt"
	"sort"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// Factory builds the fuzzer for one kind, bound to the session context.
type Factory[T any] func(c *Context) TypeFuzzer[T]

// Registrar installs default factories into a registry.
type Registrar func(r *Registry)

// Registry maps kinds to lazily built fuzzers. Each kind is built at most
// once per session.
type Registry struct {
	factories map[m.Kind]func(*Context) any
	instances map[m.Kind]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[m.Kind]func(*Context) any),
		instances: make(map[m.Kind]any),
	}
}

// Register installs the default factory for kind, replacing any previous one.
func Register[T any](r *Registry, kind m.Kind, factory Factory[T]) {
	r.factories[kind] = func(c *Context) any {
		return factory(c)
	}
}

// Kinds returns the kinds with a default factory, sorted.
func (r *Registry) Kinds() []m.Kind {
	kinds := make([]m.Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})

	return kinds
}

// Built reports whether the fuzzer for kind has been constructed.
func (r *Registry) Built(kind m.Kind) bool {
	_, ok := r.instances[kind]
	return ok
}

func (r *Registry) reset() {
	r.instances = make(map[m.Kind]any)
}

// Lookup returns the session fuzzer for kind, building it with the default
// factory on first use.
func Lookup[T any](c *Context, kind m.Kind) (TypeFuzzer[T], error) {
	return LookupOrCreate[T](c, kind, nil)
}

// LookupOrCreate returns the cached fuzzer for kind. On a miss it builds one
// with factory, or with the default factory when factory is nil.
func LookupOrCreate[T any](c *Context, kind m.Kind, factory Factory[T]) (TypeFuzzer[T], error) {
	r := c.registry

	instance, ok := r.instances[kind]
	if !ok {
		var build func(*Context) any

		switch {
		case factory != nil:
			build = func(c *Context) any { return factory(c) }
		case r.factories[kind] != nil:
			build = r.factories[kind]
		default:
			c.logger.Error("Fuzzer requested for unregistered kind", "kind", kind)
			return nil, &UnregisteredKindError{Kind: kind}
		}

		instance = build(c)
		r.instances[kind] = instance
		c.logger.Debug("Built fuzzer", "kind", kind, "type", fmt.Sprintf("%T", instance))
	}

	fuzzer, ok := instance.(TypeFuzzer[T])
	if !ok {
		var zero T

		c.logger.Error("Fuzzer kind mismatch", "kind", kind, "found", fmt.Sprintf("%T", instance))

		return nil, &KindMismatchError{
			Kind:  kind,
			Want:  fmt.Sprintf("%T", zero),
			Found: fmt.Sprintf("%T", instance),
		}
	}

	return fuzzer, nil
}

// Require is Lookup for use inside fuzzers. A configuration error unwinds to
// the enclosing Fuzz or Generate call, which returns it.
func Require[T any](c *Context, kind m.Kind) TypeFuzzer[T] {
	fuzzer, err := Lookup[T](c, kind)
	if err != nil {
		panic(configurationPanic{err: err})
	}

	return fuzzer
}
