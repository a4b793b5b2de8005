package schema

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// DefaultPath is the well-known schema file read at startup, relative to the working directory.
const DefaultPath = "./attribute_labels.json"

// Store holds the current schema. Replacement is wholesale, never a merge.
type Store struct {
	current *Schema
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewStore creates a store holding an empty schema.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		current: Empty(),
		logger:  logger,
	}
}

// Current returns the active schema.
func (s *Store) Current() *Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadDefault reads the schema file at path. A missing or unparsable file
// leaves an empty schema; the problem is only logged.
func (s *Store) LoadDefault(path string) *Schema {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("No schema file, starting with empty schema", "path", path)
		} else {
			s.logger.Warn("Failed to read schema file", "path", path, "error", err)
		}
		s.set(Empty())
		return s.Current()
	}

	parsed, err := Parse(string(data))
	if err != nil {
		s.logger.Warn("Ignoring invalid schema file", "path", path, "error", err)
		s.set(Empty())
		return s.Current()
	}

	s.set(parsed)
	s.logger.Info("Schema loaded", "path", path, "attributes", parsed.Len())
	return parsed
}

// Replace parses text and swaps it in. On error the existing schema is kept
// and the returned error wraps ErrInvalidFormat.
func (s *Store) Replace(text string) (*Schema, error) {
	parsed, err := Parse(text)
	if err != nil {
		return nil, err
	}
	s.set(parsed)
	s.logger.Info("Schema replaced", "attributes", parsed.Len())
	return parsed, nil
}

func (s *Store) set(schema *Schema) {
	s.mu.Lock()
	s.current = schema
	s.mu.Unlock()
}
