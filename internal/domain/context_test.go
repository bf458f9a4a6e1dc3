package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

func TestContext_SeedDeterminism(t *testing.T) {
	draw := func(c *Context) []int {
		out := make([]int, 20)
		for i := range out {
			out[i] = c.Intn(1000)
		}

		return out
	}

	a := NewContext(WithSeed(42))
	b := NewContext(WithSeed(42))
	other := NewContext(WithSeed(43))

	first := draw(a)
	assert.Equal(t, first, draw(b))
	assert.NotEqual(t, first, draw(other))
	assert.Equal(t, int64(42), a.Seed())
}

func TestContext_Reset(t *testing.T) {
	c := NewContext(WithSeed(7))

	first := c.Intn(1_000_000)
	c.AddLog("x", "set", nil, 1)
	c.Strings()
	require.True(t, c.Registry().Built(m.KindString))

	c.Reset()

	assert.Equal(t, 0, c.Log().Len())
	assert.False(t, c.Registry().Built(m.KindString))
	assert.Equal(t, first, c.Intn(1_000_000))
}

func TestContext_Chance(t *testing.T) {
	c := NewContext()

	for range 100 {
		assert.False(t, c.Chance(0))
		assert.True(t, c.Chance(1))
	}
}

func TestContext_Options(t *testing.T) {
	c := NewContext(
		WithFlags(FlagWidenLists),
		WithMaxStringLength(16),
		WithMaxDepth(0),
		WithLogger(nil),
	)

	assert.True(t, c.Flag(FlagWidenLists))
	assert.False(t, c.Flag(FlagExceedMaxLength))
	assert.Equal(t, 16, c.MaxStringLength())
	assert.Equal(t, DefaultMaxDepth, c.maxDepth)
	assert.NotNil(t, c.logger)
}

func TestRandomSubset(t *testing.T) {
	mutators := make([]FieldMutator[sample], 5)
	for i := range mutators {
		mutators[i] = FieldMutator[sample]{Field: string(rune('a' + i))}
	}

	sizes := map[int]bool{}

	for seed := range int64(200) {
		c := NewContext(WithSeed(seed))
		subset := RandomSubset(c, mutators)

		require.NotEmpty(t, subset)
		require.LessOrEqual(t, len(subset), len(mutators))

		sizes[len(subset)] = true

		for i := 1; i < len(subset); i++ {
			assert.Less(t, subset[i-1].Field, subset[i].Field, "subset keeps input order without repeats")
		}
	}

	for k := 1; k <= len(mutators); k++ {
		assert.True(t, sizes[k], "subset size %d never drawn", k)
	}

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RandomSubset[sample](NewContext(), nil))
	})
}

func TestPickAnother(t *testing.T) {
	values := m.AddressUseValues()

	t.Run("absent current never yields nil", func(t *testing.T) {
		for seed := range int64(50) {
			got := PickAnother(NewContext(WithSeed(seed)), nil, values)
			require.NotNil(t, got)
			assert.Contains(t, values, *got)
		}
	})

	t.Run("present current always changes", func(t *testing.T) {
		current := m.AddressUseHome
		sawNil := false

		for seed := range int64(200) {
			got := PickAnother(NewContext(WithSeed(seed)), &current, values)
			if got == nil {
				sawNil = true
				continue
			}

			assert.NotEqual(t, current, *got)
		}

		assert.True(t, sawNil, "unspecified is a valid alternative")
	})

	t.Run("single value domain", func(t *testing.T) {
		only := []m.AddressUse{m.AddressUseHome}
		current := m.AddressUseHome

		assert.Nil(t, PickAnother(NewContext(), &current, only))
		assert.Nil(t, PickAnother[m.AddressUse](NewContext(), nil, nil))
	})
}

func TestContext_Nested(t *testing.T) {
	c := NewContext(WithMaxDepth(2))

	levels := 0

	var descend func()
	descend = func() {
		levels++
		c.Nested(descend)
	}

	require.True(t, c.Nested(descend))
	assert.Equal(t, 2, levels)
	assert.Equal(t, 0, c.depth)
}

func TestContext_Anomaly(t *testing.T) {
	c := NewContext()
	c.Anomaly("Sample.left", "still set")

	entries := c.Log().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Sample.left", entries[0].Field)
	assert.Equal(t, "anomaly: still set", entries[0].Description)
	assert.Nil(t, entries[0].Before)
	assert.Nil(t, entries[0].After)
}

func TestContext_Within(t *testing.T) {
	c := NewContext()
	assert.Equal(t, "Reference.reference", c.Qualify("Reference.reference"))

	c.Within("Patient.identifier[0]", func() {
		assert.Equal(t, "Patient.identifier[0].system", c.Qualify("Identifier.system"))

		c.Within(c.Qualify("Identifier.assigner"), func() {
			c.AddLog("Reference.reference", "set", nil, "Organization/x")
			c.Anomaly("Reference.display", "still set")
		})

		assert.Equal(t, "Patient.identifier[0].value", c.Qualify("Identifier.value"))
	})
	assert.Equal(t, "Identifier.value", c.Qualify("Identifier.value"))

	entries := c.Log().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Patient.identifier[0].assigner.reference", entries[0].Field)
	assert.Equal(t, "Patient.identifier[0].assigner.display", entries[1].Field)

	t.Run("bare field names gain the parent", func(t *testing.T) {
		c.Within("Patient.name[0]", func() {
			assert.Equal(t, "Patient.name[0].family", c.Qualify("family"))
		})
	})

	t.Run("reset clears the path", func(t *testing.T) {
		c.path = append(c.path, "Stale.parent")
		c.Reset()
		assert.Equal(t, "Identifier.value", c.Qualify("Identifier.value"))
	})
}

func TestKnownFlags(t *testing.T) {
	assert.ElementsMatch(t, []string{FlagExceedMaxLength, FlagWidenLists}, KnownFlags())
}
