package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type identifierFuzzer struct {
	ctx *domain.Context
}

// NewIdentifierFuzzer creates the Identifier fuzzer.
func NewIdentifierFuzzer(c *domain.Context) domain.TypeFuzzer[m.Identifier] {
	return &identifierFuzzer{ctx: c}
}

func (f *identifierFuzzer) Context() *domain.Context { return f.ctx }

func (f *identifierFuzzer) GenerateRandom() m.Identifier {
	c := f.ctx

	identifier := m.Identifier{
		Use:    maybe(c, 0.5, func() m.IdentifierUse { return pick(c, m.IdentifierUseValues()) }),
		System: ptr(c.URIs().GenerateRandom()),
		Value:  ptr(c.Strings().GenerateRandom()),
	}

	if c.Chance(0.3) {
		identifier.Type = ptr(domain.Require[m.CodeableConcept](c, m.KindCodeableConcept).GenerateRandom())
	}

	if c.Chance(0.3) {
		identifier.Period = ptr(domain.Require[m.Period](c, m.KindPeriod).GenerateRandom())
	}

	if c.Chance(0.2) {
		identifier.Assigner = ptr(domain.Require[m.Reference](c, m.KindReference).GenerateRandom())
	}

	return identifier
}

func (f *identifierFuzzer) Fuzz(node m.Identifier) m.Identifier {
	c := f.ctx

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.Identifier]{
		domain.Enum(c, "Identifier.use", func(n *m.Identifier) **m.IdentifierUse { return &n.Use }, m.IdentifierUseValues()),
		domain.Node(c, "Identifier.type", func(n *m.Identifier) **m.CodeableConcept { return &n.Type },
			domain.Require[m.CodeableConcept](c, m.KindCodeableConcept)),
		domain.Value(c, "Identifier.system", func(n *m.Identifier) **string { return &n.System }, c.URIs()),
		domain.Value(c, "Identifier.value", func(n *m.Identifier) **string { return &n.Value }, c.Strings()),
		domain.Node(c, "Identifier.period", func(n *m.Identifier) **m.Period { return &n.Period },
			domain.Require[m.Period](c, m.KindPeriod)),
		domain.Node(c, "Identifier.assigner", func(n *m.Identifier) **m.Reference { return &n.Assigner },
			domain.Require[m.Reference](c, m.KindReference)),
	}, nil)
}
