package controller

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

func testCases() []m.Case {
	return []m.Case{
		{
			Index:    0,
			Seed:     42,
			Kind:     m.KindAddress,
			Original: []byte(`{"city":"Oslo"}`),
			Resource: []byte(`{"city":"Bergen"}`),
			Log: []m.LogRecord{
				{Field: "Address.city", Description: "replace", Before: `"Oslo"`, After: `"Bergen"`},
				{Field: "Address.city", Description: "replace", Before: `"Bergen"`, After: `"Bergen"`},
			},
		},
		{
			Index:    1,
			Seed:     43,
			Kind:     m.KindAddress,
			Original: []byte(`{"city":"Oslo"}`),
			Resource: []byte(`{}`),
			Log:      []m.LogRecord{{Field: "Address.city", Description: "clear", Before: `"Oslo"`}},
		},
	}
}

func TestCaseRow(t *testing.T) {
	row := caseRow(testCases()[0])
	assert.Equal(t, []string{"0", "42", "2", "Address.city"}, []string(row))
}

func TestCaseBrowserModel(t *testing.T) {
	info := SessionInfo{Kind: m.KindAddress, Seed: 42}
	summary := m.Summary{Cases: 2, Mutations: 3, Fields: map[string]int{"Address.city": 3}}

	t.Run("lists cases", func(t *testing.T) {
		model := newCaseBrowserModel(ModeFuzz, info, testCases(), &summary)

		view := model.View()
		assert.Contains(t, view, "fhirfuzz - fuzz Address")
		assert.Contains(t, view, "2 case(s), seed 42")
		assert.Contains(t, view, "3 edit(s) across 1 field(s)")
	})

	t.Run("enter opens selected case", func(t *testing.T) {
		model := newCaseBrowserModel(ModeFuzz, info, testCases(), &summary)

		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
		updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})

		browser, ok := updated.(caseBrowserModel)
		require.True(t, ok)
		assert.True(t, browser.detail)

		view := browser.View()
		assert.Contains(t, view, "Case 1 (seed 43)")
		assert.Contains(t, view, "Address.city")

		updated, _ = browser.Update(tea.KeyMsg{Type: tea.KeyEsc})
		browser, ok = updated.(caseBrowserModel)
		require.True(t, ok)
		assert.False(t, browser.detail)
	})

	t.Run("q quits", func(t *testing.T) {
		model := newCaseBrowserModel(ModeGenerate, info, testCases(), nil)

		updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)

		browser, ok := updated.(caseBrowserModel)
		require.True(t, ok)
		assert.True(t, browser.quitting)
		assert.Empty(t, browser.View())
	})

	t.Run("empty campaign", func(t *testing.T) {
		model := newCaseBrowserModel(ModeGenerate, info, nil, nil)

		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		browser, ok := updated.(caseBrowserModel)
		require.True(t, ok)
		assert.False(t, browser.detail)
		assert.Contains(t, browser.View(), "No cases")
	})

	t.Run("detail scrolling stays in bounds", func(t *testing.T) {
		model := newCaseBrowserModel(ModeFuzz, info, testCases(), nil)
		model.detail = true

		model = model.scrollDetail("up")
		assert.Equal(t, 0, model.offset)

		model = model.scrollDetail("G")
		assert.GreaterOrEqual(t, model.offset, 0)
		assert.LessOrEqual(t, model.offset, len(model.detailLines()))
	})
}

func TestTUI_CollectsCases(t *testing.T) {
	ctx := context.Background()
	ui := NewTUI(&bytes.Buffer{})

	require.NoError(t, ui.Start(ctx, WithFuzzMode()))

	for _, result := range testCases() {
		require.NoError(t, ui.DisplayCase(ctx, result))
	}

	ui.DisplaySummary(ctx, m.Summary{Cases: 2})

	assert.Len(t, ui.cases, 2)
	require.NotNil(t, ui.summary)
	assert.Equal(t, 2, ui.summary.Cases)
	assert.Equal(t, ModeFuzz, ui.config.mode)
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
