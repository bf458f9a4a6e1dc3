package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type extensionFuzzer struct {
	ctx *domain.Context
}

// NewExtensionFuzzer creates the Extension fuzzer.
func NewExtensionFuzzer(c *domain.Context) domain.TypeFuzzer[m.Extension] {
	return &extensionFuzzer{ctx: c}
}

func (f *extensionFuzzer) Context() *domain.Context { return f.ctx }

// GenerateRandom returns an extension carrying either a single value[x] or
// nested extensions. Nesting stops at the context's depth limit.
func (f *extensionFuzzer) GenerateRandom() m.Extension {
	c := f.ctx
	ext := m.Extension{URL: ptr(c.URIs().GenerateRandom())}

	if c.Chance(0.25) {
		nested := c.Nested(func() {
			for range 1 + c.Intn(2) {
				ext.Extension = append(ext.Extension, f.GenerateRandom())
			}
		})
		if nested {
			return ext
		}
	}

	switch c.Intn(3) {
	case 0:
		ext.ValueString = ptr(c.Strings().GenerateRandom())
	case 1:
		ext.ValueCode = ptr(c.Strings().GenerateRandom())
	default:
		ext.ValueBoolean = ptr(c.Booleans().GenerateRandom())
	}

	return ext
}

func (f *extensionFuzzer) Fuzz(node m.Extension) m.Extension {
	c := f.ctx

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.Extension]{
		domain.Value(c, "Extension.url", func(n *m.Extension) **string { return &n.URL }, c.URIs()),
		domain.Value(c, "Extension.valueString", func(n *m.Extension) **string { return &n.ValueString }, c.Strings()),
		domain.Value(c, "Extension.valueCode", func(n *m.Extension) **string { return &n.ValueCode }, c.Strings()),
		domain.Value(c, "Extension.valueBoolean", func(n *m.Extension) **bool { return &n.ValueBoolean }, c.Booleans()),
		domain.Slice(c, "Extension.extension", func(n *m.Extension) *[]m.Extension { return &n.Extension }, f),
	}, f.repair)
}

// repair keeps one of value[x] and nested extensions.
func (f *extensionFuzzer) repair(ext *m.Extension) {
	domain.Exclusive(f.ctx, ext,
		domain.Side[m.Extension]{
			Field:   "Extension.valueString",
			Present: func(n *m.Extension) bool { return n.ValueString != nil },
			Value:   func(n *m.Extension) any { return *n.ValueString },
			Clear:   func(n *m.Extension) { n.ValueString = nil },
		},
		domain.Side[m.Extension]{
			Field:   "Extension.valueCode",
			Present: func(n *m.Extension) bool { return n.ValueCode != nil },
			Value:   func(n *m.Extension) any { return *n.ValueCode },
			Clear:   func(n *m.Extension) { n.ValueCode = nil },
		},
		domain.Side[m.Extension]{
			Field:   "Extension.valueBoolean",
			Present: func(n *m.Extension) bool { return n.ValueBoolean != nil },
			Value:   func(n *m.Extension) any { return *n.ValueBoolean },
			Clear:   func(n *m.Extension) { n.ValueBoolean = nil },
		},
		domain.Side[m.Extension]{
			Field:   "Extension.extension",
			Present: func(n *m.Extension) bool { return len(n.Extension) > 0 },
			Value:   func(n *m.Extension) any { return n.Extension },
			Clear:   func(n *m.Extension) { n.Extension = nil },
		},
	)
}
