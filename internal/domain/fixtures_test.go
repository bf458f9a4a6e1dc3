package domain

import (
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

const (
	kindSample m.Kind = "Sample"
	kindChild  m.Kind = "SampleChild"
)

type sampleChild struct {
	Label *string `json:"label,omitempty"`
}

type sample struct {
	Name   *string       `json:"name,omitempty"`
	Active *bool         `json:"active,omitempty"`
	Use    *m.AddressUse `json:"use,omitempty"`
	Tags   []string      `json:"tags,omitempty"`
	Child  *sampleChild  `json:"child,omitempty"`
	Kids   []sampleChild `json:"kids,omitempty"`
	Left   *string       `json:"left,omitempty"`
	Right  *string       `json:"right,omitempty"`
}

type childFuzzer struct {
	ctx *Context
}

func (f *childFuzzer) Context() *Context { return f.ctx }

func (f *childFuzzer) GenerateRandom() sampleChild {
	label := f.ctx.Strings().GenerateRandom()
	return sampleChild{Label: &label}
}

func (f *childFuzzer) Fuzz(node sampleChild) sampleChild {
	return FuzzFields(f.ctx, node, []FieldMutator[sampleChild]{
		Value(f.ctx, "SampleChild.label", func(n *sampleChild) **string { return &n.Label }, f.ctx.Strings()),
	}, nil)
}

type sampleFuzzer struct {
	ctx *Context
}

func (f *sampleFuzzer) Context() *Context { return f.ctx }

func (f *sampleFuzzer) GenerateRandom() sample {
	name := f.ctx.Strings().GenerateRandom()
	left := f.ctx.Strings().GenerateRandom()

	return sample{Name: &name, Left: &left}
}

func (f *sampleFuzzer) Fuzz(node sample) sample {
	c := f.ctx
	child := Require[sampleChild](c, kindChild)

	return FuzzFields(c, node, []FieldMutator[sample]{
		Value(c, "Sample.name", func(n *sample) **string { return &n.Name }, c.Strings()),
		Value(c, "Sample.active", func(n *sample) **bool { return &n.Active }, c.Booleans()),
		Enum(c, "Sample.use", func(n *sample) **m.AddressUse { return &n.Use }, m.AddressUseValues()),
		Slice(c, "Sample.tags", func(n *sample) *[]string { return &n.Tags }, c.Strings()),
		Node(c, "Sample.child", func(n *sample) **sampleChild { return &n.Child }, child),
		Slice(c, "Sample.kids", func(n *sample) *[]sampleChild { return &n.Kids }, child),
		Value(c, "Sample.left", func(n *sample) **string { return &n.Left }, c.Strings()),
		Value(c, "Sample.right", func(n *sample) **string { return &n.Right }, c.Strings()),
	}, f.repair)
}

func (f *sampleFuzzer) repair(node *sample) {
	Exclusive(f.ctx, node,
		Side[sample]{
			Field:   "Sample.left",
			Present: func(n *sample) bool { return n.Left != nil },
			Value:   func(n *sample) any { return deref(n.Left) },
			Clear:   func(n *sample) { n.Left = nil },
		},
		Side[sample]{
			Field:   "Sample.right",
			Present: func(n *sample) bool { return n.Right != nil },
			Value:   func(n *sample) any { return deref(n.Right) },
			Clear:   func(n *sample) { n.Right = nil },
		},
	)
}

func registerSamples(r *Registry) {
	Register[sample](r, kindSample, func(c *Context) TypeFuzzer[sample] { return &sampleFuzzer{ctx: c} })
	Register[sampleChild](r, kindChild, func(c *Context) TypeFuzzer[sampleChild] { return &childFuzzer{ctx: c} })
}

func newSampleContext(opts ...Option) *Context {
	return NewContext(append([]Option{WithRegistrar(registerSamples)}, opts...)...)
}

func strPtr(s string) *string {
	return &s
}
