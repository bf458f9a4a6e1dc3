// Package fuzzers provides the TypeFuzzer implementations for the resource
// model.
package fuzzers

import (
	"math"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// Defaults registers a factory for every model kind.
func Defaults(r *domain.Registry) {
	domain.Register[int](r, m.KindPositiveInt, newPositiveIntFuzzer)
	domain.Register[m.Coding](r, m.KindCoding, NewCodingFuzzer)
	domain.Register[m.CodeableConcept](r, m.KindCodeableConcept, NewCodeableConceptFuzzer)
	domain.Register[m.Period](r, m.KindPeriod, NewPeriodFuzzer)
	domain.Register[m.Reference](r, m.KindReference, NewReferenceFuzzer)
	domain.Register[m.Identifier](r, m.KindIdentifier, NewIdentifierFuzzer)
	domain.Register[m.Address](r, m.KindAddress, NewAddressFuzzer)
	domain.Register[m.HumanName](r, m.KindHumanName, NewHumanNameFuzzer)
	domain.Register[m.ContactPoint](r, m.KindContactPoint, NewContactPointFuzzer)
	domain.Register[m.Extension](r, m.KindExtension, NewExtensionFuzzer)
	domain.Register[m.Patient](r, m.KindPatient, NewPatientFuzzer)
	domain.Register[m.Organization](r, m.KindOrganization, NewOrganizationFuzzer)
}

func ptr[V any](v V) *V {
	return &v
}

// maybe returns a generated value with probability p, nil otherwise.
func maybe[V any](c *domain.Context, p float64, generate func() V) *V {
	if !c.Chance(p) {
		return nil
	}

	return ptr(generate())
}

func pick[V any](c *domain.Context, values []V) V {
	return values[c.Intn(len(values))]
}

// positiveIntFuzzer serves FHIR positiveInt values.
type positiveIntFuzzer struct {
	ctx *domain.Context
}

func newPositiveIntFuzzer(c *domain.Context) domain.TypeFuzzer[int] {
	return &positiveIntFuzzer{ctx: c}
}

func (f *positiveIntFuzzer) Context() *domain.Context { return f.ctx }

func (f *positiveIntFuzzer) GenerateRandom() int {
	return 1 + f.ctx.Intn(10)
}

func (f *positiveIntFuzzer) Fuzz(old int) int {
	candidates := []int{0, -1 - f.ctx.Intn(100), old + 1, math.MaxInt32 + 1}

	out := pick(f.ctx, candidates)
	if out == old {
		out = old - 1
	}

	return out
}
