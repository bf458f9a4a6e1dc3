package adapter

import (
	"context"
	"fmt"
	"log/slog"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// CaseStore persists campaign cases.
type CaseStore interface {
	SaveCase(ctx context.Context, dir m.Path, result m.Case) error
}

type caseStore struct {
	files   ResourceFileAdapter
	encoder Encoder
}

// NewCaseStore creates a CaseStore writing through files in the encoder's
// format.
func NewCaseStore(files ResourceFileAdapter, encoder Encoder) CaseStore {
	return &caseStore{files: files, encoder: encoder}
}

// CaseFileName returns the base name of a case's resource file.
func CaseFileName(result m.Case, ext string) string {
	return fmt.Sprintf("%s-%04d.%s", result.Kind, result.Index, ext)
}

// CaseLogFileName returns the base name of a case's mutation log file.
func CaseLogFileName(result m.Case, ext string) string {
	return fmt.Sprintf("%s-%04d.log.%s", result.Kind, result.Index, ext)
}

// SaveCase writes the case's resource and its mutation log under dir.
func (s *caseStore) SaveCase(ctx context.Context, dir m.Path, result m.Case) error {
	ext := s.encoder.Extension()

	resource, err := s.encoder.EncodeDocument(result.Resource)
	if err != nil {
		slog.Error("Failed to encode case", "index", result.Index, "error", err)
		return fmt.Errorf("encode case %d: %w", result.Index, err)
	}

	resourcePath := s.files.JoinPath(string(dir), CaseFileName(result, ext))
	if err := s.files.WriteFile(ctx, resourcePath, resource); err != nil {
		return err
	}

	records := result.Log
	if records == nil {
		records = []m.LogRecord{}
	}

	log, err := s.encoder.EncodeValue(records)
	if err != nil {
		return fmt.Errorf("encode log %d: %w", result.Index, err)
	}

	logPath := s.files.JoinPath(string(dir), CaseLogFileName(result, ext))
	if err := s.files.WriteFile(ctx, logPath, log); err != nil {
		return err
	}

	slog.Debug("Saved case", "index", result.Index, "path", resourcePath)

	return nil
}
