package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

var referenceTargets = []m.Kind{m.KindPatient, m.KindOrganization}

type referenceFuzzer struct {
	ctx *domain.Context
}

// NewReferenceFuzzer creates the Reference fuzzer.
func NewReferenceFuzzer(c *domain.Context) domain.TypeFuzzer[m.Reference] {
	return &referenceFuzzer{ctx: c}
}

func (f *referenceFuzzer) Context() *domain.Context { return f.ctx }

func (f *referenceFuzzer) GenerateRandom() m.Reference {
	c := f.ctx
	literal := pick(c, referenceTargets).String() + "/" + c.IDs().GenerateRandom()

	return m.Reference{
		Reference: &literal,
		Display:   maybe(c, 0.5, c.Strings().GenerateRandom),
	}
}

func (f *referenceFuzzer) Fuzz(node m.Reference) m.Reference {
	c := f.ctx

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.Reference]{
		domain.Value(c, "Reference.reference", func(n *m.Reference) **string { return &n.Reference }, c.Strings()),
		domain.Value(c, "Reference.display", func(n *m.Reference) **string { return &n.Display }, c.Strings()),
	}, nil)
}
