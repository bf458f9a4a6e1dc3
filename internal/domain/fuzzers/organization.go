package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type organizationFuzzer struct {
	ctx *domain.Context
}

// NewOrganizationFuzzer creates the Organization fuzzer.
func NewOrganizationFuzzer(c *domain.Context) domain.TypeFuzzer[m.Organization] {
	return &organizationFuzzer{ctx: c}
}

func (f *organizationFuzzer) Context() *domain.Context { return f.ctx }

func (f *organizationFuzzer) GenerateRandom() m.Organization {
	c := f.ctx

	org := m.Organization{
		ResourceType: string(m.KindOrganization),
		ID:           ptr(c.IDs().GenerateRandom()),
		Identifier:   []m.Identifier{domain.Require[m.Identifier](c, m.KindIdentifier).GenerateRandom()},
		Active:       ptr(true),
		Name:         ptr(c.Strings().GenerateRandom()),
	}

	if c.Chance(0.4) {
		org.Type = []m.CodeableConcept{domain.Require[m.CodeableConcept](c, m.KindCodeableConcept).GenerateRandom()}
	}

	if c.Chance(0.3) {
		org.Alias = []string{c.Strings().GenerateRandom()}
	}

	if c.Chance(0.5) {
		org.Telecom = []m.ContactPoint{domain.Require[m.ContactPoint](c, m.KindContactPoint).GenerateRandom()}
	}

	if c.Chance(0.5) {
		org.Address = []m.Address{domain.Require[m.Address](c, m.KindAddress).GenerateRandom()}
	}

	return org
}

func (f *organizationFuzzer) Fuzz(node m.Organization) m.Organization {
	c := f.ctx

	mutators := []domain.FieldMutator[m.Organization]{
		domain.Value(c, "Organization.id", func(n *m.Organization) **string { return &n.ID }, c.IDs()),
		domain.Slice(c, "Organization.extension", func(n *m.Organization) *[]m.Extension { return &n.Extension },
			domain.Require[m.Extension](c, m.KindExtension)),
		domain.Slice(c, "Organization.identifier", func(n *m.Organization) *[]m.Identifier { return &n.Identifier },
			domain.Require[m.Identifier](c, m.KindIdentifier)),
		domain.Value(c, "Organization.active", func(n *m.Organization) **bool { return &n.Active }, c.Booleans()),
		domain.Slice(c, "Organization.type", func(n *m.Organization) *[]m.CodeableConcept { return &n.Type },
			domain.Require[m.CodeableConcept](c, m.KindCodeableConcept)),
		domain.Value(c, "Organization.name", func(n *m.Organization) **string { return &n.Name }, c.Strings()),
		domain.Slice(c, "Organization.alias", func(n *m.Organization) *[]string { return &n.Alias }, c.Strings()),
		domain.Slice(c, "Organization.telecom", func(n *m.Organization) *[]m.ContactPoint { return &n.Telecom },
			domain.Require[m.ContactPoint](c, m.KindContactPoint)),
		domain.Slice(c, "Organization.address", func(n *m.Organization) *[]m.Address { return &n.Address },
			domain.Require[m.Address](c, m.KindAddress)),
		domain.Node(c, "Organization.partOf", func(n *m.Organization) **m.Reference { return &n.PartOf },
			domain.Require[m.Reference](c, m.KindReference)),
	}

	if c.Flag(domain.FlagWidenLists) {
		mutators = append(mutators, domain.FieldMutator[m.Organization]{
			Field:  "Organization.address",
			Mutate: widen(c, "Organization.address", func(n *m.Organization) *[]m.Address { return &n.Address },
				domain.Require[m.Address](c, m.KindAddress)),
		})
	}

	return domain.FuzzFields(c, node, mutators, nil)
}
