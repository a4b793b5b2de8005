// Package session holds the annotation session: the loaded images, the cursor,
// the labels chosen for the current image and the display zoom.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"multilabel-go/core/state"
	"multilabel-go/domain/annotation"
	"multilabel-go/domain/imageset"
	"multilabel-go/domain/schema"
)

var (
	// ErrNoImages is returned by navigation when no images are loaded.
	ErrNoImages = errors.New("no images loaded")
	// ErrAtStart is returned by Retreat on the first image, after saving it.
	ErrAtStart = errors.New("already at the first image")
	// ErrAtEnd is returned by Advance on the last image, after saving it.
	ErrAtEnd = errors.New("already at the last image")
	// ErrUnknownAttribute is returned when selecting for an attribute the schema lacks.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrUnknownLabel is returned when selecting a label the attribute does not offer.
	ErrUnknownLabel = errors.New("unknown label")
)

// Session is the single annotation session of the application.
// It is driven from one goroutine and is not safe for concurrent use.
type Session struct {
	images    *imageset.Set
	cursor    int
	selection map[string]string
	zoom      Zoom

	schemas     *schema.Store
	annotations *annotation.Store
	onSaved     func(imagePath, location string)
	logger      *slog.Logger
}

// Config holds configuration for creating a new Session.
type Config struct {
	Schemas     *schema.Store
	Annotations *annotation.Store
	// OnSaved is called after each successful save with the image and written location
	OnSaved func(imagePath, location string)
	Logger  *slog.Logger
}

// New creates a session without images. The selection starts at the
// defaults of the store's current schema.
func New(cfg *Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Session{
		zoom:        NewZoom(),
		schemas:     cfg.Schemas,
		annotations: cfg.Annotations,
		onSaved:     cfg.OnSaved,
		logger:      cfg.Logger,
	}
	s.selection = s.schemas.Current().Defaults()
	return s
}

// State returns the derived workspace state.
func (s *Session) State() state.WorkspaceState {
	return state.Derive(s.images != nil, s.images.Len(), s.annotations.HasOutputDirectory())
}

// Len returns the number of loaded images.
func (s *Session) Len() int {
	return s.images.Len()
}

// Cursor returns the index of the current image. Meaningless when Len is zero.
func (s *Session) Cursor() int {
	return s.cursor
}

// Folder returns the loaded image folder, or "" before the first SetFolder.
func (s *Session) Folder() string {
	if s.images == nil {
		return ""
	}
	return s.images.Folder()
}

// Current returns the path of the current image, or "" when none is loaded.
func (s *Session) Current() string {
	if s.images.Len() == 0 {
		return ""
	}
	return s.images.At(s.cursor)
}

// Zoom returns the current display scale.
func (s *Session) Zoom() float64 {
	return s.zoom.Level()
}

// ZoomStep applies one discrete zoom step.
func (s *Session) ZoomStep(in bool) float64 {
	return s.zoom.Step(in)
}

// ZoomWheel applies one wheel tick.
func (s *Session) ZoomWheel(in bool) float64 {
	return s.zoom.Wheel(in)
}

// Selection returns the chosen label of every schema attribute, in schema order.
func (s *Session) Selection() []annotation.Label {
	attrs := s.schemas.Current().Attributes()
	labels := make([]annotation.Label, 0, len(attrs))
	for _, attr := range attrs {
		value, ok := s.selection[attr.Name]
		if !ok {
			value = attr.Default()
		}
		labels = append(labels, annotation.Label{Attribute: attr.Name, Value: value})
	}
	return labels
}

// SetFolder scans path and moves the cursor to its first image, applying
// that image's stored annotation. The previous image is not saved.
func (s *Session) SetFolder(ctx context.Context, path string) error {
	images, err := imageset.Scan(path)
	if err != nil {
		return err
	}

	s.images = images
	s.cursor = 0
	s.logger.Info("Image folder opened", "folder", images.Folder(), "count", images.Len())

	if !images.IsEmpty() {
		s.applyStored(ctx)
	}
	return nil
}

// SetOutputDirectory directs subsequent saves to dir.
func (s *Session) SetOutputDirectory(dir string) error {
	return s.annotations.SetOutputDirectory(dir)
}

// OutputDirectory returns the current output directory, or "" if unset.
func (s *Session) OutputDirectory() string {
	return s.annotations.OutputDirectory()
}

// Advance saves the current image and moves to the next one.
// On the last image it saves and returns ErrAtEnd.
func (s *Session) Advance(ctx context.Context) error {
	return s.move(ctx, 1)
}

// Retreat saves the current image and moves to the previous one.
// On the first image it saves and returns ErrAtStart.
func (s *Session) Retreat(ctx context.Context) error {
	return s.move(ctx, -1)
}

func (s *Session) move(ctx context.Context, delta int) error {
	if s.images.Len() == 0 {
		return ErrNoImages
	}

	// A failed save leaves the cursor where it is.
	if err := s.Save(ctx); err != nil {
		return err
	}

	next := s.cursor + delta
	if next < 0 {
		return ErrAtStart
	}
	if next >= s.images.Len() {
		return ErrAtEnd
	}

	s.cursor = next
	s.applyStored(ctx)
	s.logger.Debug("Moved to image", "index", s.cursor, "image", filepath.Base(s.Current()))
	return nil
}

// Save writes the current selection for the current image.
func (s *Session) Save(ctx context.Context) error {
	current := s.Current()
	if current == "" {
		return ErrNoImages
	}

	location, err := s.annotations.Save(ctx, current, s.Selection())
	if err != nil {
		return err
	}
	if s.onSaved != nil {
		s.onSaved(current, location)
	}
	return nil
}

// SelectLabel sets the label of one attribute for the current image.
func (s *Session) SelectLabel(attribute, label string) error {
	sc := s.schemas.Current()
	if !sc.Has(attribute) {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}
	if !sc.Contains(attribute, label) {
		return fmt.Errorf("%w: %q for attribute %q", ErrUnknownLabel, label, attribute)
	}
	s.selection[attribute] = label
	return nil
}

// ReconcileSchema resets the selection after the schema was replaced:
// every attribute starts at its first label and removed attributes are dropped.
func (s *Session) ReconcileSchema() {
	s.selection = s.schemas.Current().Defaults()
}

// applyStored copies the stored labels of the current image into the
// selection. Labels for unknown attributes or labels the schema does not
// offer are skipped, leaving the previous choice in place.
func (s *Session) applyStored(ctx context.Context) {
	rec := s.annotations.Load(ctx, s.Current())
	if rec == nil {
		return
	}

	sc := s.schemas.Current()
	for _, l := range rec.Labels {
		if sc.Contains(l.Attribute, l.Value) {
			s.selection[l.Attribute] = l.Value
		}
	}
}
