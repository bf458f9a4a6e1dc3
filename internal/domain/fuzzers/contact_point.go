package fuzzers

import (
	"fmt"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type contactPointFuzzer struct {
	ctx *domain.Context
}

// NewContactPointFuzzer creates the ContactPoint fuzzer.
func NewContactPointFuzzer(c *domain.Context) domain.TypeFuzzer[m.ContactPoint] {
	return &contactPointFuzzer{ctx: c}
}

func (f *contactPointFuzzer) Context() *domain.Context { return f.ctx }

// GenerateRandom returns a contact point whose value matches its system.
func (f *contactPointFuzzer) GenerateRandom() m.ContactPoint {
	c := f.ctx
	system := pick(c, []m.ContactPointSystem{m.ContactPointSystemPhone, m.ContactPointSystemEmail, m.ContactPointSystemURL})

	var value string

	switch system {
	case m.ContactPointSystemEmail:
		value = fmt.Sprintf("%s@example.org", c.Strings().GenerateRandom())
	case m.ContactPointSystemURL:
		value = c.URIs().GenerateRandom()
	default:
		value = fmt.Sprintf("+49 %03d %07d", c.Intn(1000), c.Intn(10000000))
	}

	return m.ContactPoint{
		System: &system,
		Value:  &value,
		Use:    maybe(c, 0.6, func() m.ContactPointUse { return pick(c, m.ContactPointUseValues()) }),
		Rank:   maybe(c, 0.2, domain.Require[int](c, m.KindPositiveInt).GenerateRandom),
	}
}

func (f *contactPointFuzzer) Fuzz(node m.ContactPoint) m.ContactPoint {
	c := f.ctx

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.ContactPoint]{
		domain.Enum(c, "ContactPoint.system", func(n *m.ContactPoint) **m.ContactPointSystem { return &n.System },
			m.ContactPointSystemValues()),
		domain.Value(c, "ContactPoint.value", func(n *m.ContactPoint) **string { return &n.Value }, c.Strings()),
		domain.Enum(c, "ContactPoint.use", func(n *m.ContactPoint) **m.ContactPointUse { return &n.Use },
			m.ContactPointUseValues()),
		domain.Value(c, "ContactPoint.rank", func(n *m.ContactPoint) **int { return &n.Rank },
			domain.Require[int](c, m.KindPositiveInt)),
		domain.Node(c, "ContactPoint.period", func(n *m.ContactPoint) **m.Period { return &n.Period },
			domain.Require[m.Period](c, m.KindPeriod)),
	}, nil)
}
