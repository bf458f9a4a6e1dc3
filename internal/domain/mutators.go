package domain

const (
	opSet     = "set"
	opClear   = "clear"
	opReplace = "replace"
)

// Value mutates an optional leaf field. An absent field gets a generated
// value; a present one is either cleared or replaced by a fuzzed value.
func Value[T, V any](c *Context, field string, ref func(node *T) **V, leaf TypeFuzzer[V]) FieldMutator[T] {
	return FieldMutator[T]{
		Field: field,
		Mutate: func(node *T) {
			slot := ref(node)
			if *slot == nil {
				value := leaf.GenerateRandom()
				*slot = &value
				c.AddLog(field, opSet, nil, value)

				return
			}

			old := **slot
			if c.CoinFlip() {
				*slot = nil
				c.AddLog(field, opClear, old, nil)

				return
			}

			value := leaf.Fuzz(old)
			*slot = &value
			c.AddLog(field, opReplace, old, value)
		},
	}
}

// Node mutates an optional composite field. An absent field gets a generated
// node; a present one is either cleared or fuzzed in place by the nested
// fuzzer, whose entries are logged under the field's path.
func Node[T, V any](c *Context, field string, ref func(node *T) **V, nested TypeFuzzer[V]) FieldMutator[T] {
	return FieldMutator[T]{
		Field: field,
		Mutate: func(node *T) {
			slot := ref(node)
			if *slot == nil {
				value := nested.GenerateRandom()
				*slot = &value
				c.AddLog(field, opSet, nil, value)

				return
			}

			if c.CoinFlip() {
				old := **slot
				*slot = nil
				c.AddLog(field, opClear, old, nil)

				return
			}

			var value V

			c.Within(c.Qualify(field), func() {
				value = nested.Fuzz(**slot)
			})

			*slot = &value
		},
	}
}

// Enum mutates an optional coded field by picking another value of its
// domain, which may be the unspecified value.
func Enum[T any, E comparable](c *Context, field string, ref func(node *T) **E, domain []E) FieldMutator[T] {
	return FieldMutator[T]{
		Field: field,
		Mutate: func(node *T) {
			slot := ref(node)
			old := *slot
			next := PickAnother(c, old, domain)
			*slot = next

			op := opReplace

			switch {
			case old == nil:
				op = opSet
			case next == nil:
				op = opClear
			}

			c.AddLog(field, op, deref(old), deref(next))
		},
	}
}

// Slice mutates a repeating field through a ListFuzzer.
func Slice[T, E any](c *Context, field string, ref func(node *T) *[]E, elem TypeFuzzer[E]) FieldMutator[T] {
	list := NewListFuzzer(elem)

	return FieldMutator[T]{
		Field: field,
		Mutate: func(node *T) {
			list.FuzzField(field, ref(node))
		},
	}
}

// Side is one member of a mutually exclusive field group.
type Side[T any] struct {
	Field   string
	Present func(node *T) bool
	Value   func(node *T) any
	Clear   func(node *T)
}

// Exclusive repairs a mutually exclusive group: when more than one side is
// populated, one of them is kept at random and the others are cleared.
// A side that stays populated after clearing is logged as an anomaly.
func Exclusive[T any](c *Context, node *T, sides ...Side[T]) {
	populated := make([]int, 0, len(sides))

	for i, side := range sides {
		if side.Present(node) {
			populated = append(populated, i)
		}
	}

	if len(populated) <= 1 {
		return
	}

	keep := populated[c.Intn(len(populated))]

	for _, i := range populated {
		if i == keep {
			continue
		}

		side := sides[i]
		before := side.Value(node)
		side.Clear(node)

		if side.Present(node) {
			c.Anomaly(side.Field, "exclusive field still populated after repair")
			continue
		}

		c.AddLog(side.Field, "repair: "+opClear, before, nil)
	}
}

// deref returns *p as any, or untyped nil for a nil pointer.
func deref[E any](p *E) any {
	if p == nil {
		return nil
	}

	return *p
}
