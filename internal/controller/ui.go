// Package controller provides the user interfaces that display fuzz campaigns.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeGenerate StartMode = iota
	ModeFuzz
)

func (mode StartMode) String() string {
	if mode == ModeFuzz {
		return "fuzz"
	}

	return "generate"
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithGenerateMode sets the UI to display generated cases.
func WithGenerateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeGenerate
	}
}

// WithFuzzMode sets the UI to display fuzzed cases next to their input.
func WithFuzzMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFuzz
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var config StartConfig
	for _, option := range options {
		option(&config)
	}

	return config
}

// SessionInfo describes a campaign about to run.
type SessionInfo struct {
	Kind       m.Kind
	Input      m.Path
	Count      int
	Parallel   int
	Seed       int64
	Flags      []string
	ShardIndex uint
	ShardCount uint
}

// UI defines the interface for displaying campaign cases.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplaySessionInfo(ctx context.Context, info SessionInfo)
	DisplayCase(ctx context.Context, result m.Case) error
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// NewUI returns the interactive TUI when useTTY is set and the SimpleUI
// otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
