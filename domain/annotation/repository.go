package annotation

import "context"

// Repository defines persistence of annotation records, keyed by image file name.
type Repository interface {
	// Save writes the record, fully replacing any previous one for the same image.
	Save(ctx context.Context, record *Record) error

	// Load retrieves the record for an image file name.
	// Returns nil if no record exists.
	Load(ctx context.Context, imageFilename string) (*Record, error)

	// Location describes where the record for an image lives (a path or URI).
	Location(imageFilename string) string
}

// RepositoryFactory opens the primary repository for an output directory.
type RepositoryFactory func(dir string) (Repository, error)
