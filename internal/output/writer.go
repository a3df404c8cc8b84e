// Package output writes the unified record set to durable storage.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"eligibility/internal/models"
)

// ErrUnknownFormat is returned for output formats without an encoder.
var ErrUnknownFormat = errors.New("unknown output format")

// Encoder serializes records with the given field order.
type Encoder interface {
	Encode(w io.Writer, fields []string, records []models.Record) error
}

// NewEncoder returns the encoder for format: "csv", "jsonl" or "avro".
func NewEncoder(format string) (Encoder, error) {
	switch format {
	case "", "csv":
		return CSVEncoder{}, nil
	case "jsonl":
		return JSONLEncoder{}, nil
	case "avro":
		return AvroEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FileWriter writes records to a local file, creating missing directories.
type FileWriter struct {
	encoder Encoder
}

// NewFileWriter creates a writer for format.
func NewFileWriter(format string) (*FileWriter, error) {
	enc, err := NewEncoder(format)
	if err != nil {
		return nil, err
	}

	return &FileWriter{encoder: enc}, nil
}

// WriteFile writes records to path.
func (fw *FileWriter) WriteFile(path string, fields []string, records []models.Record) (err error) {
	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0755); mkdirErr != nil {
		return fmt.Errorf("failed to create output directory: %w", mkdirErr)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := fw.encoder.Encode(f, fields, records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
