package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/controller"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain/fuzzers"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

type mockFiles struct {
	mock.Mock
}

func (f *mockFiles) ReadResource(ctx context.Context, path m.Path) ([]byte, error) {
	args := f.Called(ctx, path)
	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

func (f *mockFiles) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	return f.Called(ctx, path, content).Error(0)
}

func (f *mockFiles) JoinPath(elem ...string) m.Path {
	return f.Called(elem).Get(0).(m.Path)
}

type mockStore struct {
	mock.Mock
}

func (s *mockStore) SaveCase(ctx context.Context, dir m.Path, result m.Case) error {
	return s.Called(ctx, dir, result).Error(0)
}

type mockUI struct {
	mock.Mock
}

func (u *mockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	return u.Called(ctx, len(options)).Error(0)
}

func (u *mockUI) Close(ctx context.Context) { u.Called(ctx) }

func (u *mockUI) Wait(ctx context.Context) { u.Called(ctx) }

func (u *mockUI) DisplaySessionInfo(ctx context.Context, info controller.SessionInfo) {
	u.Called(ctx, info)
}

func (u *mockUI) DisplayCase(ctx context.Context, result m.Case) error {
	return u.Called(ctx, result).Error(0)
}

func (u *mockUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	u.Called(ctx, summary)
}

func newRunArgs(t *testing.T) domain.RunArgs {
	t.Helper()

	return domain.RunArgs{
		CampaignArgs: domain.CampaignArgs{
			Kind:     m.KindAddress,
			Count:    3,
			Parallel: 2,
			Seed:     42,
			Options:  []domain.Option{domain.WithRegistrar(fuzzers.Defaults)},
			SpillDir: t.TempDir(),
		},
	}
}

func TestWorkflow_Generate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	files := new(mockFiles)
	store := new(mockStore)
	ui := new(mockUI)

	ui.On("Start", ctx, 1).Return(nil)
	ui.On("DisplaySessionInfo", ctx, mock.MatchedBy(func(info controller.SessionInfo) bool {
		return info.Kind == m.KindAddress && info.Count == 3 && info.Seed == 42
	})).Return()
	ui.On("DisplayCase", ctx, mock.AnythingOfType("model.Case")).Return(nil).Times(3)
	ui.On("DisplaySummary", ctx, mock.MatchedBy(func(summary m.Summary) bool {
		return summary.Cases == 3
	})).Return()
	ui.On("Wait", ctx).Return()
	ui.On("Close", ctx).Return()
	store.On("SaveCase", ctx, m.Path("out"), mock.AnythingOfType("model.Case")).Return(nil).Times(3)

	args := newRunArgs(t)
	args.Output = "out"

	workflow := domain.NewWorkflow(files, store, ui, domain.NewCampaign(fuzzers.NewCatalog()))

	// Act
	err := workflow.Run(ctx, args)

	// Assert
	require.NoError(t, err)
	ui.AssertExpectations(t)
	store.AssertExpectations(t)
	files.AssertNotCalled(t, "ReadResource", mock.Anything, mock.Anything)

	var indices []int

	for _, call := range ui.Calls {
		if call.Method == "DisplayCase" {
			indices = append(indices, call.Arguments.Get(1).(m.Case).Index)
		}
	}

	assert.Equal(t, []int{0, 1, 2}, indices)
}

func TestWorkflow_FuzzReadsInput(t *testing.T) {
	ctx := context.Background()
	files := new(mockFiles)
	store := new(mockStore)
	ui := new(mockUI)

	input := []byte(`{"city":"Oslo","country":"DE"}`)
	files.On("ReadResource", ctx, m.Path("address.json")).Return(input, nil)

	ui.On("Start", ctx, 1).Return(nil)
	ui.On("DisplaySessionInfo", ctx, mock.Anything).Return()
	ui.On("DisplayCase", ctx, mock.MatchedBy(func(result m.Case) bool {
		return !result.Generated()
	})).Return(nil)
	ui.On("DisplaySummary", ctx, mock.Anything).Return()
	ui.On("Wait", ctx).Return()
	ui.On("Close", ctx).Return()

	args := newRunArgs(t)
	args.InputPath = "address.json"

	err := domain.NewWorkflow(files, store, ui, domain.NewCampaign(fuzzers.NewCatalog())).Run(ctx, args)
	require.NoError(t, err)

	files.AssertExpectations(t)
	ui.AssertNumberOfCalls(t, "DisplayCase", 3)
	store.AssertNotCalled(t, "SaveCase", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_ReadError(t *testing.T) {
	ctx := context.Background()
	files := new(mockFiles)
	ui := new(mockUI)

	readErr := errors.New("no such file")
	files.On("ReadResource", ctx, m.Path("missing.json")).Return(nil, readErr)

	args := newRunArgs(t)
	args.InputPath = "missing.json"

	err := domain.NewWorkflow(files, new(mockStore), ui, domain.NewCampaign(fuzzers.NewCatalog())).Run(ctx, args)
	require.ErrorIs(t, err, readErr)
	ui.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestWorkflow_DisplayError(t *testing.T) {
	ctx := context.Background()
	ui := new(mockUI)

	displayErr := errors.New("broken pipe")

	ui.On("Start", ctx, 1).Return(nil)
	ui.On("DisplaySessionInfo", ctx, mock.Anything).Return()
	ui.On("DisplayCase", ctx, mock.Anything).Return(displayErr).Once()
	ui.On("Close", ctx).Return()

	err := domain.NewWorkflow(new(mockFiles), new(mockStore), ui, domain.NewCampaign(fuzzers.NewCatalog())).Run(ctx, newRunArgs(t))
	require.ErrorIs(t, err, displayErr)
	ui.AssertNotCalled(t, "DisplaySummary", mock.Anything, mock.Anything)
	ui.AssertNotCalled(t, "Wait", mock.Anything)
}
