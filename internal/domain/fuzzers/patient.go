package fuzzers

import (
	"slices"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

const (
	deceasedBooleanField  = "Patient.deceasedBoolean"
	deceasedDateTimeField = "Patient.deceasedDateTime"
)

type patientFuzzer struct {
	ctx *domain.Context
}

// NewPatientFuzzer creates the Patient fuzzer.
func NewPatientFuzzer(c *domain.Context) domain.TypeFuzzer[m.Patient] {
	return &patientFuzzer{ctx: c}
}

func (f *patientFuzzer) Context() *domain.Context { return f.ctx }

func (f *patientFuzzer) GenerateRandom() m.Patient {
	c := f.ctx

	patient := m.Patient{
		ResourceType: string(m.KindPatient),
		ID:           ptr(c.IDs().GenerateRandom()),
		Identifier:   []m.Identifier{domain.Require[m.Identifier](c, m.KindIdentifier).GenerateRandom()},
		Active:       maybe(c, 0.7, c.Booleans().GenerateRandom),
		Name:         []m.HumanName{domain.Require[m.HumanName](c, m.KindHumanName).GenerateRandom()},
		Gender:       maybe(c, 0.8, func() m.AdministrativeGender { return pick(c, m.AdministrativeGenderValues()) }),
		BirthDate:    ptr(c.Dates().GenerateRandom()),
	}

	if c.Chance(0.5) {
		patient.Telecom = []m.ContactPoint{domain.Require[m.ContactPoint](c, m.KindContactPoint).GenerateRandom()}
	}

	if c.Chance(0.6) {
		patient.Address = []m.Address{domain.Require[m.Address](c, m.KindAddress).GenerateRandom()}
	}

	if c.Chance(0.2) {
		patient.Extension = []m.Extension{domain.Require[m.Extension](c, m.KindExtension).GenerateRandom()}
	}

	// At most one deceased[x] variant.
	switch c.Intn(4) {
	case 0:
		patient.DeceasedBoolean = ptr(c.Booleans().GenerateRandom())
	case 1:
		patient.DeceasedDateTime = ptr(c.DateTimes().GenerateRandom())
	}

	if c.Chance(0.3) {
		patient.ManagingOrg = ptr(domain.Require[m.Reference](c, m.KindReference).GenerateRandom())
	}

	return patient
}

func (f *patientFuzzer) Fuzz(node m.Patient) m.Patient {
	return domain.FuzzFields(f.ctx, node, f.mutators(), f.repair)
}

func (f *patientFuzzer) mutators() []domain.FieldMutator[m.Patient] {
	c := f.ctx

	mutators := []domain.FieldMutator[m.Patient]{
		domain.Value(c, "Patient.id", func(n *m.Patient) **string { return &n.ID }, c.IDs()),
		domain.Slice(c, "Patient.extension", func(n *m.Patient) *[]m.Extension { return &n.Extension },
			domain.Require[m.Extension](c, m.KindExtension)),
		domain.Slice(c, "Patient.identifier", func(n *m.Patient) *[]m.Identifier { return &n.Identifier },
			domain.Require[m.Identifier](c, m.KindIdentifier)),
		domain.Value(c, "Patient.active", func(n *m.Patient) **bool { return &n.Active }, c.Booleans()),
		domain.Slice(c, "Patient.name", func(n *m.Patient) *[]m.HumanName { return &n.Name },
			domain.Require[m.HumanName](c, m.KindHumanName)),
		domain.Slice(c, "Patient.telecom", func(n *m.Patient) *[]m.ContactPoint { return &n.Telecom },
			domain.Require[m.ContactPoint](c, m.KindContactPoint)),
		domain.Enum(c, "Patient.gender", func(n *m.Patient) **m.AdministrativeGender { return &n.Gender },
			m.AdministrativeGenderValues()),
		domain.Value(c, "Patient.birthDate", func(n *m.Patient) **string { return &n.BirthDate }, c.Dates()),
		{Field: "Patient.deceased[x]", Mutate: f.mutateDeceased},
		domain.Slice(c, "Patient.address", func(n *m.Patient) *[]m.Address { return &n.Address },
			domain.Require[m.Address](c, m.KindAddress)),
		domain.Node(c, "Patient.maritalStatus", func(n *m.Patient) **m.CodeableConcept { return &n.MaritalStatus },
			domain.Require[m.CodeableConcept](c, m.KindCodeableConcept)),
		domain.Node(c, "Patient.managingOrganization", func(n *m.Patient) **m.Reference { return &n.ManagingOrg },
			domain.Require[m.Reference](c, m.KindReference)),
	}

	if c.Flag(domain.FlagWidenLists) {
		mutators = append(mutators, domain.FieldMutator[m.Patient]{
			Field:  "Patient.identifier",
			Mutate: widen(c, "Patient.identifier", func(n *m.Patient) *[]m.Identifier { return &n.Identifier },
				domain.Require[m.Identifier](c, m.KindIdentifier)),
		})
	}

	return mutators
}

// mutateDeceased treats deceased[x] as one field: an absent value gets one
// variant, a present one is cleared or swapped for the other variant.
func (f *patientFuzzer) mutateDeceased(p *m.Patient) {
	c := f.ctx

	switch {
	case p.DeceasedBoolean != nil:
		old := *p.DeceasedBoolean
		p.DeceasedBoolean = nil
		c.AddLog(deceasedBooleanField, "clear", old, nil)

		if c.CoinFlip() {
			value := c.DateTimes().GenerateRandom()
			p.DeceasedDateTime = &value
			c.AddLog(deceasedDateTimeField, "set", nil, value)
		}
	case p.DeceasedDateTime != nil:
		old := *p.DeceasedDateTime
		p.DeceasedDateTime = nil
		c.AddLog(deceasedDateTimeField, "clear", old, nil)

		if c.CoinFlip() {
			value := c.Booleans().GenerateRandom()
			p.DeceasedBoolean = &value
			c.AddLog(deceasedBooleanField, "set", nil, value)
		}
	case c.CoinFlip():
		value := c.Booleans().GenerateRandom()
		p.DeceasedBoolean = &value
		c.AddLog(deceasedBooleanField, "set", nil, value)
	default:
		value := c.DateTimes().GenerateRandom()
		p.DeceasedDateTime = &value
		c.AddLog(deceasedDateTimeField, "set", nil, value)
	}
}

func (f *patientFuzzer) repair(p *m.Patient) {
	domain.Exclusive(f.ctx, p,
		domain.Side[m.Patient]{
			Field:   deceasedBooleanField,
			Present: func(n *m.Patient) bool { return n.DeceasedBoolean != nil },
			Value:   func(n *m.Patient) any { return *n.DeceasedBoolean },
			Clear:   func(n *m.Patient) { n.DeceasedBoolean = nil },
		},
		domain.Side[m.Patient]{
			Field:   deceasedDateTimeField,
			Present: func(n *m.Patient) bool { return n.DeceasedDateTime != nil },
			Value:   func(n *m.Patient) any { return *n.DeceasedDateTime },
			Clear:   func(n *m.Patient) { n.DeceasedDateTime = nil },
		},
	)
}

// widen appends a deep copy of the first element, or two generated ones when
// the list is empty. It is the only mutator that grows a list.
func widen[T, E any](c *domain.Context, field string, ref func(node *T) *[]E, elem domain.TypeFuzzer[E]) func(node *T) {
	return func(node *T) {
		list := ref(node)
		if len(*list) == 0 {
			*list = append(*list, elem.GenerateRandom(), elem.GenerateRandom())
			c.AddLog(field, "widen", nil, *list)

			return
		}

		old := *list
		*list = append(slices.Clone(old), domain.Clone(old[0]))
		c.AddLog(field, "widen", old, *list)
	}
}
