// Package adapter contains the filesystem and encoding adapters used by the
// fhirfuzz workflow.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// StdinPath names standard input as a resource source.
const StdinPath m.Path = "-"

// ResourceFileAdapter abstracts the file access of the workflow so it can be
// tested without touching the disk.
type ResourceFileAdapter interface {
	// ReadResource loads a resource file and returns it as standard JSON.
	// Comments and trailing commas are accepted.
	ReadResource(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces path atomically, creating parent directories.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalResourceFileAdapter implements ResourceFileAdapter on the local disk.
type LocalResourceFileAdapter struct {
	stdin io.Reader
}

// NewLocalResourceFileAdapter constructs a LocalResourceFileAdapter reading
// StdinPath from os.Stdin.
func NewLocalResourceFileAdapter() *LocalResourceFileAdapter {
	return &LocalResourceFileAdapter{stdin: os.Stdin}
}

// ReadResource implements ResourceFileAdapter.
func (a *LocalResourceFileAdapter) ReadResource(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)

	if path == StdinPath {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(string(path))
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return bytes.TrimSpace(standardized), nil
}

// WriteFile implements ResourceFileAdapter.
func (a *LocalResourceFileAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	if err := atomic.WriteFile(string(path), bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// JoinPath implements ResourceFileAdapter.
func (a *LocalResourceFileAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
