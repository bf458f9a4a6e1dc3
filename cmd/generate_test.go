package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/adapter"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/controller"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type mockWorkflow struct {
	mock.Mock
}

func (w *mockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	return w.Called(ctx, args).Error(0)
}

// useWorkflow routes the next runs to wf.
func useWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	original := newWorkflow
	newWorkflow = func(adapter.ResourceFileAdapter, adapter.CaseStore, controller.UI, domain.Campaign) domain.Workflow {
		return wf
	}

	t.Cleanup(func() { newWorkflow = original })
}

func newTestCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(sub)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func TestGenerateCmd_PassesSettings(t *testing.T) {
	wf := &mockWorkflow{}
	useWorkflow(t, wf)

	wf.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Kind == m.KindAddress &&
			args.Count == 4 &&
			args.Parallel == 2 &&
			args.Seed == 42 &&
			args.ShardIndex == 1 &&
			args.ShardCount == 3 &&
			args.InputPath == "" &&
			args.Output == m.Path("cases") &&
			assert.ObjectsAreEqual([]string{domain.FlagExceedMaxLength, domain.FlagWidenLists}, args.Flags)
	})).Return(nil)

	cmd, _ := newTestCmd(t, newGenerateCmd())
	cmd.SetArgs([]string{
		"generate", "Address",
		"--count", "4", "--parallel", "2", "--seed", "42", "--shard", "1/3",
		"--flag", domain.FlagWidenLists, "--flag", domain.FlagExceedMaxLength,
		"-o", "cases", "--log-file", logFileIn(t),
	})

	require.NoError(t, cmd.Execute())
	wf.AssertExpectations(t)
}

func TestGenerateCmd_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown kind", []string{"generate", "Spaceship"}},
		{"zero count", []string{"generate", "Address", "--count", "0"}},
		{"unknown session flag", []string{"generate", "Address", "--flag", "turbo"}},
		{"unknown format", []string{"generate", "Address", "--format", "xml"}},
		{"bad shard", []string{"generate", "Address", "--shard", "3/3"}},
		{"missing kind", []string{"generate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := &mockWorkflow{}
			useWorkflow(t, wf)

			cmd, _ := newTestCmd(t, newGenerateCmd())
			cmd.SetArgs(append(tt.args, "--log-file", logFileIn(t)))

			require.Error(t, cmd.Execute())
			wf.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateCmd_WritesCases(t *testing.T) {
	dir := t.TempDir()

	cmd, out := newTestCmd(t, newGenerateCmd())
	cmd.SetArgs([]string{
		"generate", "Address", "--count", "3", "--seed", "42", "--no-tui",
		"-o", dir, "--log-file", logFileIn(t),
	})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Generating 3 Address case(s) with 1 worker(s), seed 42")
	assert.Contains(t, out.String(), "Summary: 3 case(s)")

	for i := range 3 {
		result := m.Case{Kind: m.KindAddress, Index: i}

		resource, err := os.ReadFile(filepath.Join(dir, adapter.CaseFileName(result, "json")))
		require.NoError(t, err)
		assert.NotEmpty(t, bytes.TrimSpace(resource))

		_, err = os.Stat(filepath.Join(dir, adapter.CaseLogFileName(result, "json")))
		require.NoError(t, err)
	}
}

func TestGenerateCmd_YAMLFormat(t *testing.T) {
	dir := t.TempDir()

	cmd, _ := newTestCmd(t, newGenerateCmd())
	cmd.SetArgs([]string{
		"generate", "Patient", "--seed", "1", "--no-tui", "--format", "yaml",
		"-o", dir, "--log-file", logFileIn(t),
	})

	require.NoError(t, cmd.Execute())

	resource, err := os.ReadFile(filepath.Join(dir, adapter.CaseFileName(m.Case{Kind: m.KindPatient}, "yaml")))
	require.NoError(t, err)
	assert.Contains(t, string(resource), "resourceType: Patient")
}

func TestGenerateCmd_SameSeedSameOutput(t *testing.T) {
	run := func() []byte {
		dir := t.TempDir()

		cmd, _ := newTestCmd(t, newGenerateCmd())
		cmd.SetArgs([]string{
			"generate", "Organization", "--seed", "9", "--no-tui",
			"-o", dir, "--log-file", logFileIn(t),
		})
		require.NoError(t, cmd.Execute())

		resource, err := os.ReadFile(filepath.Join(dir, adapter.CaseFileName(m.Case{Kind: m.KindOrganization}, "json")))
		require.NoError(t, err)

		return resource
	}

	assert.Equal(t, string(run()), string(run()))
}

func TestGenerateCmd_TOMLFormat(t *testing.T) {
	dir := t.TempDir()

	cmd, _ := newTestCmd(t, newGenerateCmd())
	cmd.SetArgs([]string{
		"generate", "Organization", "--seed", "5", "--no-tui", "--format", "toml",
		"-o", dir, "--log-file", logFileIn(t),
	})

	require.NoError(t, cmd.Execute())

	result := m.Case{Kind: m.KindOrganization}

	resource, err := os.ReadFile(filepath.Join(dir, adapter.CaseFileName(result, "toml")))
	require.NoError(t, err)
	assert.Contains(t, string(resource), `resourceType = "Organization"`)

	_, err = os.Stat(filepath.Join(dir, adapter.CaseLogFileName(result, "toml")))
	require.NoError(t, err)
}
