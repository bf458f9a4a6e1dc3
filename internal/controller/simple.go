package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	summaryColor = color.New(color.FgGreen, color.Bold)
	faintColor   = color.New(color.Faint)
)

// SimpleUI implements UI by printing to the cobra command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = newStartConfig(options)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait returns immediately; SimpleUI prints as cases arrive.
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplaySessionInfo prints the campaign parameters.
func (s *SimpleUI) DisplaySessionInfo(ctx context.Context, info SessionInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	action := "Generating"
	if s.config.mode == ModeFuzz {
		action = "Fuzzing"
	}

	s.printf("%s %d %s case(s) with %d worker(s), seed %d\n", action, info.Count, info.Kind, info.Parallel, info.Seed)

	if info.Input != "" {
		s.printf("Input: %s\n", info.Input)
	}

	if len(info.Flags) > 0 {
		s.printf("Flags: %s\n", strings.Join(info.Flags, ", "))
	}

	if info.ShardCount > 0 {
		s.printf("Shard %d/%d\n", info.ShardIndex, info.ShardCount)
	}
}

// DisplayCase prints a case's mutation log and, for fuzzed cases, the diff
// against the input.
func (s *SimpleUI) DisplayCase(ctx context.Context, result m.Case) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n", headerColor.Sprintf("Case %d (seed %d): %d edit(s)", result.Index, result.Seed, len(result.Log)))

	if len(result.Log) > 0 {
		s.printf("%s", renderLogTable(result.Log))
	}

	if result.Generated() {
		s.printf("%s", indentJSON(result.Resource))
		return nil
	}

	diff, err := renderDiff(result.Original, result.Resource)
	if err != nil {
		return fmt.Errorf("diff case %d: %w", result.Index, err)
	}

	if diff == "" {
		s.printf("%s\n", faintColor.Sprint("(no textual change)"))
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// DisplaySummary prints per-field edit counts for the campaign.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s\n", summaryColor.Sprintf("Summary: %d case(s), %d edit(s)", summary.Cases, summary.Mutations))

	if len(summary.Fields) > 0 {
		s.printf("%s", renderSummaryTable(summary))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
