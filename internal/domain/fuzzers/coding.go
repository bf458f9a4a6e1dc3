package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type codingFuzzer struct {
	ctx *domain.Context
}

// NewCodingFuzzer creates the Coding fuzzer.
func NewCodingFuzzer(c *domain.Context) domain.TypeFuzzer[m.Coding] {
	return &codingFuzzer{ctx: c}
}

func (f *codingFuzzer) Context() *domain.Context { return f.ctx }

func (f *codingFuzzer) GenerateRandom() m.Coding {
	c := f.ctx

	return m.Coding{
		System:       ptr(c.URIs().GenerateRandom()),
		Version:      maybe(c, 0.3, c.Strings().GenerateRandom),
		Code:         ptr(c.Strings().GenerateRandom()),
		Display:      maybe(c, 0.7, c.Strings().GenerateRandom),
		UserSelected: maybe(c, 0.2, c.Booleans().GenerateRandom),
	}
}

func (f *codingFuzzer) Fuzz(node m.Coding) m.Coding {
	return domain.FuzzFields(f.ctx, node, f.mutators(), nil)
}

func (f *codingFuzzer) mutators() []domain.FieldMutator[m.Coding] {
	c := f.ctx

	return []domain.FieldMutator[m.Coding]{
		domain.Value(c, "Coding.system", func(n *m.Coding) **string { return &n.System }, c.URIs()),
		domain.Value(c, "Coding.version", func(n *m.Coding) **string { return &n.Version }, c.Strings()),
		domain.Value(c, "Coding.code", func(n *m.Coding) **string { return &n.Code }, c.Strings()),
		domain.Value(c, "Coding.display", func(n *m.Coding) **string { return &n.Display }, c.Strings()),
		domain.Value(c, "Coding.userSelected", func(n *m.Coding) **bool { return &n.UserSelected }, c.Booleans()),
	}
}

type codeableConceptFuzzer struct {
	ctx *domain.Context
}

// NewCodeableConceptFuzzer creates the CodeableConcept fuzzer.
func NewCodeableConceptFuzzer(c *domain.Context) domain.TypeFuzzer[m.CodeableConcept] {
	return &codeableConceptFuzzer{ctx: c}
}

func (f *codeableConceptFuzzer) Context() *domain.Context { return f.ctx }

func (f *codeableConceptFuzzer) GenerateRandom() m.CodeableConcept {
	c := f.ctx
	coding := domain.Require[m.Coding](c, m.KindCoding)

	return m.CodeableConcept{
		Coding: []m.Coding{coding.GenerateRandom()},
		Text:   maybe(c, 0.5, c.Strings().GenerateRandom),
	}
}

func (f *codeableConceptFuzzer) Fuzz(node m.CodeableConcept) m.CodeableConcept {
	c := f.ctx

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.CodeableConcept]{
		domain.Slice(c, "CodeableConcept.coding", func(n *m.CodeableConcept) *[]m.Coding { return &n.Coding },
			domain.Require[m.Coding](c, m.KindCoding)),
		domain.Value(c, "CodeableConcept.text", func(n *m.CodeableConcept) **string { return &n.Text }, c.Strings()),
	}, nil)
}
