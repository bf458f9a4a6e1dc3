package adapter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

func TestCaseStore_SaveCase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	enc, err := NewEncoder(FormatJSON)
	require.NoError(t, err)

	store := NewCaseStore(NewLocalResourceFileAdapter(), enc)

	result := m.Case{
		Index:    7,
		Seed:     49,
		Kind:     m.KindAddress,
		Resource: []byte(`{"city":"Oslo"}`),
		Log: []m.LogRecord{
			{Field: "Address.city", Description: "set", After: `"Oslo"`},
		},
	}

	require.NoError(t, store.SaveCase(ctx, m.Path(dir), result))

	resource, err := os.ReadFile(filepath.Join(dir, "Address-0007.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Oslo"}`, string(resource))

	logData, err := os.ReadFile(filepath.Join(dir, "Address-0007.log.json"))
	require.NoError(t, err)

	var records []m.LogRecord
	require.NoError(t, json.Unmarshal(logData, &records))
	assert.Equal(t, result.Log, records)
}

func TestCaseStore_SaveCaseEmptyLog(t *testing.T) {
	dir := t.TempDir()

	enc, err := NewEncoder(FormatYAML)
	require.NoError(t, err)

	store := NewCaseStore(NewLocalResourceFileAdapter(), enc)

	result := m.Case{Kind: m.KindPeriod, Resource: []byte(`{}`)}
	require.NoError(t, store.SaveCase(context.Background(), m.Path(dir), result))

	logData, err := os.ReadFile(filepath.Join(dir, CaseLogFileName(result, "yaml")))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(logData))
}
