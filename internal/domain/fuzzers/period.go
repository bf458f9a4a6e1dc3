package fuzzers

import (
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type periodFuzzer struct {
	ctx *domain.Context
}

// NewPeriodFuzzer creates the Period fuzzer.
func NewPeriodFuzzer(c *domain.Context) domain.TypeFuzzer[m.Period] {
	return &periodFuzzer{ctx: c}
}

func (f *periodFuzzer) Context() *domain.Context { return f.ctx }

// GenerateRandom returns a period whose end, when present, is not before its
// start.
func (f *periodFuzzer) GenerateRandom() m.Period {
	dates := f.ctx.DateTimes()
	a, b := dates.GenerateRandom(), dates.GenerateRandom()

	// RFC 3339 UTC timestamps order lexically.
	if b < a {
		a, b = b, a
	}

	period := m.Period{Start: &a}
	if f.ctx.Chance(0.6) {
		period.End = &b
	}

	return period
}

func (f *periodFuzzer) Fuzz(node m.Period) m.Period {
	c := f.ctx

	return domain.FuzzFields(c, node, []domain.FieldMutator[m.Period]{
		domain.Value(c, "Period.start", func(n *m.Period) **string { return &n.Start }, c.DateTimes()),
		domain.Value(c, "Period.end", func(n *m.Period) **string { return &n.End }, c.DateTimes()),
	}, nil)
}
