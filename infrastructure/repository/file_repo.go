// Package repository provides data access implementations.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"multilabel-go/domain/annotation"
)

// JSONFileRepository stores one JSON file per image in a directory.
type JSONFileRepository struct {
	dir    string
	logger *slog.Logger
}

// NewJSONFileRepository creates a repository rooted at dir. The directory must exist.
func NewJSONFileRepository(dir string, logger *slog.Logger) (*JSONFileRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat annotation directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("annotation path %s is not a directory", dir)
	}

	return &JSONFileRepository{dir: dir, logger: logger}, nil
}

// JSONFileFactory adapts NewJSONFileRepository to annotation.RepositoryFactory.
func JSONFileFactory(logger *slog.Logger) annotation.RepositoryFactory {
	return func(dir string) (annotation.Repository, error) {
		return NewJSONFileRepository(dir, logger)
	}
}

// Location returns the file path of the record for an image.
func (r *JSONFileRepository) Location(imageFilename string) string {
	return filepath.Join(r.dir, annotation.RecordName(imageFilename))
}

// Save overwrites the record file. The content is written to a temporary file
// first and renamed into place.
func (r *JSONFileRepository) Save(ctx context.Context, rec *annotation.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := rec.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode annotation: %w", err)
	}

	path := r.Location(rec.ImageFilename)
	tmp, err := os.CreateTemp(r.dir, ".annotation-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write annotation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close annotation: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set annotation permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace annotation: %w", err)
	}

	r.logger.Debug("Annotation written", "path", path)
	return nil
}

// Load reads the record for an image. Returns nil if the file does not exist.
func (r *JSONFileRepository) Load(ctx context.Context, imageFilename string) (*annotation.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.Location(imageFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read annotation %s: %w", path, err)
	}

	var rec annotation.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse annotation %s: %w", path, err)
	}
	return &rec, nil
}

// Ensure JSONFileRepository implements annotation.Repository
var _ annotation.Repository = (*JSONFileRepository)(nil)
