package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFuzzer_Cardinality(t *testing.T) {
	for seed := range int64(20) {
		c := NewContext(WithSeed(seed))
		list := NewListFuzzer(c.Strings())

		assert.Len(t, list.Fuzz(nil), 1)
		assert.Len(t, list.Fuzz([]string{}), 1)
		assert.Len(t, list.Fuzz([]string{"a", "b", "c"}), 3)
	}
}

func TestListFuzzer_FuzzesFirstElement(t *testing.T) {
	c := NewContext(WithSeed(3))
	list := NewListFuzzer(c.Strings())

	got := list.Fuzz([]string{"a", "b"})
	assert.NotEqual(t, "a", got[0])
	assert.Equal(t, "b", got[1])
	assert.Same(t, c, list.Context())
}

func TestListFuzzer_FuzzField(t *testing.T) {
	t.Run("empty list logs creation", func(t *testing.T) {
		c := NewContext(WithSeed(1))
		list := NewListFuzzer(c.Strings())

		var values []string
		list.FuzzField("Sample.tags", &values)

		require.Len(t, values, 1)

		entries := c.Log().Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "Sample.tags", entries[0].Field)
		assert.Nil(t, entries[0].Before)
		assert.Equal(t, values, entries[0].After)
	})

	t.Run("leaf element change is logged", func(t *testing.T) {
		c := NewContext(WithSeed(1))
		list := NewListFuzzer(c.Strings())

		values := []string{"a", "b"}
		list.FuzzField("Sample.tags", &values)

		entries := c.Log().Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "Sample.tags[0]", entries[0].Field)
		assert.Equal(t, "a", entries[0].Before)
		assert.Equal(t, values[0], entries[0].After)
	})

	t.Run("composite element logs its own fields", func(t *testing.T) {
		c := newSampleContext(WithSeed(1))
		list := NewListFuzzer(Require[sampleChild](c, kindChild))

		kids := []sampleChild{{Label: strPtr("x")}}
		list.FuzzField("Sample.kids", &kids)

		require.Len(t, kids, 1)

		entries := c.Log().Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "Sample.kids[0].label", entries[0].Field)
	})
}
