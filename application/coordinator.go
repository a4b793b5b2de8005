// Package application provides the application layer that turns user
// commands into session operations and publishes the resulting events.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"multilabel-go/application/session"
	"multilabel-go/core/command"
	"multilabel-go/core/event"
	"multilabel-go/core/eventbus"
	"multilabel-go/core/state"
	"multilabel-go/domain/annotation"
	"multilabel-go/domain/schema"
)

// Coordinator owns the annotation session and serializes all operations on it.
// Dispatch must be called from a single goroutine (the UI thread).
type Coordinator struct {
	session *session.Session

	// Dependencies
	eventBus    eventbus.EventBus
	schemas     *schema.Store
	annotations *annotation.Store
	logger      *slog.Logger

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	EventBus    eventbus.EventBus
	Schemas     *schema.Store
	Annotations *annotation.Store
	Logger      *slog.Logger
}

// NewCoordinator creates a coordinator with a fresh session.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Coordinator{
		eventBus:    cfg.EventBus,
		schemas:     cfg.Schemas,
		annotations: cfg.Annotations,
		logger:      cfg.Logger,
		ctx:         ctx,
		cancel:      cancel,
	}

	c.session = session.New(&session.Config{
		Schemas:     cfg.Schemas,
		Annotations: cfg.Annotations,
		OnSaved:     c.onSaved,
		Logger:      cfg.Logger.With("component", "session"),
	})

	return c
}

// Start announces the initial schema and selection so the UI can build itself.
func (c *Coordinator) Start() {
	c.publishSchema()
	c.publishImage()
	c.publishZoom(event.ZoomSourceStep)
	c.logger.Info("Coordinator started", "attributes", c.schemas.Current().Len())
}

// Stop cancels in-flight operations. Unsaved changes of the current image are discarded.
func (c *Coordinator) Stop() {
	c.cancel()
	c.logger.Info("Coordinator stopped")
}

// Dispatch sends a command to the appropriate handler.
// The handler's error is returned unchanged so the UI can classify it.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	c.logger.Debug("Dispatching command", "command", cmd.CommandName())

	switch cmd := cmd.(type) {
	// Workspace
	case *command.SelectFolder:
		return c.handleSelectFolder(cmd)
	case *command.SetOutputDirectory:
		return c.handleSetOutputDirectory(cmd)
	case *command.ReplaceSchema:
		return c.handleReplaceSchema(cmd)
	case *command.Quit:
		return c.handleQuit()

	// Annotation
	case *command.Advance:
		return c.handleMove(c.session.Advance)
	case *command.Retreat:
		return c.handleMove(c.session.Retreat)
	case *command.SelectLabel:
		return c.handleSelectLabel(cmd)

	// View
	case *command.ZoomStep:
		c.session.ZoomStep(cmd.In)
		c.publishZoom(event.ZoomSourceStep)
		return nil
	case *command.ZoomWheel:
		c.session.ZoomWheel(cmd.In)
		c.publishZoom(event.ZoomSourceWheel)
		return nil

	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

// Queries

// Schema returns the active schema.
func (c *Coordinator) Schema() *schema.Schema {
	return c.schemas.Current()
}

// Selection returns the labels chosen for the current image, in schema order.
func (c *Coordinator) Selection() []annotation.Label {
	return c.session.Selection()
}

// CurrentImage returns the path of the current image, or "".
func (c *Coordinator) CurrentImage() string {
	return c.session.Current()
}

// Position returns the cursor and the number of loaded images.
func (c *Coordinator) Position() (index, total int) {
	return c.session.Cursor(), c.session.Len()
}

// Zoom returns the current display scale.
func (c *Coordinator) Zoom() float64 {
	return c.session.Zoom()
}

// OutputDirectory returns the output directory, or "" if unset.
func (c *Coordinator) OutputDirectory() string {
	return c.session.OutputDirectory()
}

// State returns the derived workspace state.
func (c *Coordinator) State() state.WorkspaceState {
	return c.session.State()
}

// Command handlers

func (c *Coordinator) handleSelectFolder(cmd *command.SelectFolder) error {
	if err := c.session.SetFolder(c.ctx, cmd.TargetPath()); err != nil {
		c.logger.Error("Failed to open image folder", "folder", cmd.TargetPath(), "error", err)
		return err
	}

	c.publish(event.NewFolderOpened(c.session.Folder(), c.session.Len()))
	c.publishImage()
	return nil
}

func (c *Coordinator) handleSetOutputDirectory(cmd *command.SetOutputDirectory) error {
	if err := c.session.SetOutputDirectory(cmd.TargetPath()); err != nil {
		c.logger.Error("Failed to set output directory", "output_dir", cmd.TargetPath(), "error", err)
		return err
	}

	c.publish(event.NewOutputDirectoryChanged(c.session.OutputDirectory()))
	return nil
}

func (c *Coordinator) handleReplaceSchema(cmd *command.ReplaceSchema) error {
	if _, err := c.schemas.Replace(cmd.Text); err != nil {
		c.logger.Warn("Rejected schema", "error", err)
		return err
	}

	c.session.ReconcileSchema()
	c.publishSchema()
	c.publishSelection()
	return nil
}

func (c *Coordinator) handleQuit() error {
	c.logger.Info("Quit requested")
	c.publish(&event.QuitRequested{})
	return nil
}

// handleMove runs a navigation operation. Images and selection are
// republished only when the cursor actually moved.
func (c *Coordinator) handleMove(move func(context.Context) error) error {
	before := c.session.Current()
	err := move(c.ctx)
	if c.session.Current() != before {
		c.publishImage()
	}
	if err != nil {
		c.logger.Debug("Navigation stopped", "error", err)
	}
	return err
}

func (c *Coordinator) handleSelectLabel(cmd *command.SelectLabel) error {
	if err := c.session.SelectLabel(cmd.Attribute, cmd.Label); err != nil {
		c.logger.Warn("Rejected label", "attribute", cmd.Attribute, "label", cmd.Label, "error", err)
		return err
	}
	c.publishSelection()
	return nil
}

func (c *Coordinator) onSaved(imagePath, location string) {
	c.publish(event.NewAnnotationSaved(filepath.Base(imagePath), location))
}

// Event helpers

func (c *Coordinator) publish(e event.Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(e)
	}
}

func (c *Coordinator) publishImage() {
	c.publish(event.NewImageChanged(c.session.Current(), c.session.Cursor(), c.session.Len()))
	c.publishSelection()
}

func (c *Coordinator) publishSelection() {
	labels := c.session.Selection()
	choices := make([]event.Choice, len(labels))
	for i, l := range labels {
		choices[i] = event.Choice{Attribute: l.Attribute, Label: l.Value}
	}
	c.publish(event.NewSelectionChanged(choices))
}

func (c *Coordinator) publishSchema() {
	attrs := c.schemas.Current().Attributes()
	options := make([]event.AttributeOptions, len(attrs))
	for i, a := range attrs {
		labels := make([]string, len(a.Labels))
		copy(labels, a.Labels)
		options[i] = event.AttributeOptions{Name: a.Name, Labels: labels}
	}
	c.publish(event.NewSchemaReplaced(options))
}

func (c *Coordinator) publishZoom(source event.ZoomSource) {
	c.publish(event.NewZoomChanged(c.session.Zoom(), source))
}
