package domain

import (
	"context"
	"fmt"
	"log/slog"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/adapter"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/controller"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// RunArgs contains the arguments of a generate or fuzz run.
type RunArgs struct {
	CampaignArgs

	// InputPath selects fuzz mode; empty means generate.
	InputPath m.Path
	// Output is the directory cases are saved to; empty saves nothing.
	Output m.Path
	// Flags echoes the enabled session flags for display.
	Flags []string
}

// Workflow drives a campaign from input to display and storage.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
}

type workflow struct {
	adapter.ResourceFileAdapter
	adapter.CaseStore
	controller.UI
	Campaign
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	files adapter.ResourceFileAdapter,
	store adapter.CaseStore,
	ui controller.UI,
	campaign Campaign,
) Workflow {
	return &workflow{
		ResourceFileAdapter: files,
		CaseStore:           store,
		UI:                  ui,
		Campaign:            campaign,
	}
}

// Run executes the campaign, then replays its cases in index order to the UI
// and the case store.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	mode := controller.WithGenerateMode()

	if args.InputPath != "" {
		input, err := w.ReadResource(ctx, args.InputPath)
		if err != nil {
			slog.Error("Failed to read input", "path", args.InputPath, "error", err)
			return fmt.Errorf("read input: %w", err)
		}

		args.Input = input
		mode = controller.WithFuzzMode()
	}

	if err := w.Start(ctx, mode); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	w.DisplaySessionInfo(ctx, controller.SessionInfo{
		Kind:       args.Kind,
		Input:      args.InputPath,
		Count:      int(args.Count),
		Parallel:   int(max(args.Parallel, 1)),
		Seed:       args.Seed,
		Flags:      args.Flags,
		ShardIndex: args.ShardIndex,
		ShardCount: args.ShardCount,
	})

	cases, err := w.Campaign.Run(ctx, args.CampaignArgs)
	if err != nil {
		return fmt.Errorf("run campaign: %w", err)
	}

	defer func() {
		if err := cases.Remove(); err != nil {
			slog.Error("Failed to remove spill", "path", cases.Path(), "error", err)
		}
	}()

	err = cases.Range(func(_ uint64, result m.Case) error {
		if err := w.DisplayCase(ctx, result); err != nil {
			return fmt.Errorf("display case %d: %w", result.Index, err)
		}

		if args.Output == "" {
			return nil
		}

		return w.SaveCase(ctx, args.Output, result)
	})
	if err != nil {
		slog.Error("Failed to replay cases", "error", err)
		return err
	}

	summary, err := Summarize(cases)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	w.DisplaySummary(ctx, summary)
	w.Wait(ctx)

	return nil
}
