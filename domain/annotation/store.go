package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNoOutputDirectory is returned by Save when no output directory has been chosen.
var ErrNoOutputDirectory = errors.New("no output directory set")

// Store saves and loads records in the chosen output directory,
// optionally copying every saved record to a mirror repository.
type Store struct {
	outputDir string
	primary   Repository
	mirror    Repository
	factory   RepositoryFactory
	logger    *slog.Logger
}

// StoreConfig holds configuration for Store.
type StoreConfig struct {
	// Factory opens the primary repository when the output directory is set
	Factory RepositoryFactory
	// Mirror is optional and receives a copy of each saved record
	Mirror Repository
	Logger *slog.Logger
}

// NewStore creates a store without an output directory.
func NewStore(cfg *StoreConfig) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		factory: cfg.Factory,
		mirror:  cfg.Mirror,
		logger:  cfg.Logger,
	}
}

// SetOutputDirectory creates dir if needed and directs future saves there.
// Records already written elsewhere are left in place.
func (s *Store) SetOutputDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory path is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	repo, err := s.factory(abs)
	if err != nil {
		return fmt.Errorf("failed to open output directory: %w", err)
	}

	s.outputDir = abs
	s.primary = repo
	s.logger.Info("Output directory set", "output_dir", abs)
	return nil
}

// OutputDirectory returns the current output directory, or "" if unset.
func (s *Store) OutputDirectory() string {
	return s.outputDir
}

// HasOutputDirectory reports whether saves are possible.
func (s *Store) HasOutputDirectory() bool {
	return s.primary != nil
}

// Save writes the record for imagePath and returns where it was written.
func (s *Store) Save(ctx context.Context, imagePath string, labels []Label) (string, error) {
	if s.primary == nil {
		return "", ErrNoOutputDirectory
	}

	rec := NewRecord(imagePath, labels)
	if err := s.primary.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save annotation for %s: %w", rec.ImageFilename, err)
	}
	location := s.primary.Location(rec.ImageFilename)
	s.logger.Debug("Annotation saved", "image", rec.ImageFilename, "path", location)

	if s.mirror != nil {
		if err := s.mirror.Save(ctx, rec); err != nil {
			s.logger.Warn("Failed to mirror annotation", "image", rec.ImageFilename, "error", err)
		}
	}

	return location, nil
}

// Load returns the stored record for imagePath, or nil when there is no output
// directory or no record. Unreadable records are logged and treated as absent.
func (s *Store) Load(ctx context.Context, imagePath string) *Record {
	if s.primary == nil {
		return nil
	}

	name := filepath.Base(imagePath)
	rec, err := s.primary.Load(ctx, name)
	if err != nil {
		s.logger.Warn("Ignoring unreadable annotation", "image", name, "error", err)
		return nil
	}
	return rec
}
