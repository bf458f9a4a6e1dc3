package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

var namePrefixes = []string{"Dr.", "Mr.", "Ms.", "Prof."}

type humanNameFuzzer struct {
	ctx *domain.Context
}

// NewHumanNameFuzzer creates the HumanName fuzzer.
func NewHumanNameFuzzer(c *domain.Context) domain.TypeFuzzer[m.HumanName] {
	return &humanNameFuzzer{ctx: c}
}

func (f *humanNameFuzzer) Context() *domain.Context { return f.ctx }

func (f *humanNameFuzzer) GenerateRandom() m.HumanName {
	c := f.ctx
	text := c.Strings()

	name := m.HumanName{
		Use:    maybe(c, 0.5, func() m.NameUse { return pick(c, m.NameUseValues()) }),
		Family: ptr(text.GenerateRandom()),
		Given:  []string{text.GenerateRandom()},
	}

	if c.Chance(0.3) {
		name.Given = append(name.Given, text.GenerateRandom())
	}

	if c.Chance(0.2) {
		name.Prefix = []string{pick(c, namePrefixes)}
	}

	return name
}

func (f *humanNameFuzzer) Fuzz(node m.HumanName) m.HumanName {
	c := f.ctx
	text := c.Strings()

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.HumanName]{
		domain.Enum(c, "HumanName.use", func(n *m.HumanName) **m.NameUse { return &n.Use }, m.NameUseValues()),
		domain.Value(c, "HumanName.text", func(n *m.HumanName) **string { return &n.Text }, text),
		domain.Value(c, "HumanName.family", func(n *m.HumanName) **string { return &n.Family }, text),
		domain.Slice(c, "HumanName.given", func(n *m.HumanName) *[]string { return &n.Given }, text),
		domain.Slice(c, "HumanName.prefix", func(n *m.HumanName) *[]string { return &n.Prefix }, text),
		domain.Slice(c, "HumanName.suffix", func(n *m.HumanName) *[]string { return &n.Suffix }, text),
		domain.Node(c, "HumanName.period", func(n *m.HumanName) **m.Period { return &n.Period },
			domain.Require[m.Period](c, m.KindPeriod)),
	}, nil)
}
