package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

var countryCodes = []string{"DE", "FR", "NL", "US", "GB", "SE"}

type addressFuzzer struct {
	ctx *domain.Context
}

// NewAddressFuzzer creates the Address fuzzer.
func NewAddressFuzzer(c *domain.Context) domain.TypeFuzzer[m.Address] {
	return &addressFuzzer{ctx: c}
}

func (f *addressFuzzer) Context() *domain.Context { return f.ctx }

func (f *addressFuzzer) GenerateRandom() m.Address {
	c := f.ctx
	text := c.Strings()

	address := m.Address{
		Use:        maybe(c, 0.5, func() m.AddressUse { return pick(c, m.AddressUseValues()) }),
		Line:       []string{text.GenerateRandom()},
		City:       ptr(text.GenerateRandom()),
		PostalCode: maybe(c, 0.8, text.GenerateRandom),
		Country:    ptr(pick(c, countryCodes)),
	}

	if c.Chance(0.2) {
		address.Period = ptr(domain.Require[m.Period](c, m.KindPeriod).GenerateRandom())
	}

	return address
}

func (f *addressFuzzer) Fuzz(node m.Address) m.Address {
	return domain.FuzzFields(f.ctx, node, f.mutators(), nil)
}

func (f *addressFuzzer) mutators() []domain.FieldMutator[m.Address] {
	c := f.ctx
	text := c.Strings()

	return []domain.FieldMutator[m.Address]{
		domain.Enum(c, "Address.use", func(n *m.Address) **m.AddressUse { return &n.Use }, m.AddressUseValues()),
		domain.Slice(c, "Address.line", func(n *m.Address) *[]string { return &n.Line }, text),
		domain.Value(c, "Address.city", func(n *m.Address) **string { return &n.City }, text),
		domain.Value(c, "Address.district", func(n *m.Address) **string { return &n.District }, text),
		domain.Value(c, "Address.state", func(n *m.Address) **string { return &n.State }, text),
		domain.Value(c, "Address.postalCode", func(n *m.Address) **string { return &n.PostalCode }, text),
		domain.Value(c, "Address.country", func(n *m.Address) **string { return &n.Country }, text),
		domain.Node(c, "Address.period", func(n *m.Address) **m.Period { return &n.Period },
			domain.Require[m.Period](c, m.KindPeriod)),
	}
}
