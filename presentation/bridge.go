// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"log/slog"
	"sync"

	"multilabel-go/application"
	"multilabel-go/core/command"
	"multilabel-go/core/event"
	"multilabel-go/core/eventbus"
	"multilabel-go/core/state"
	"multilabel-go/domain/annotation"
	"multilabel-go/domain/schema"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
// It provides a clean separation between UI and business logic.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	// Subscription management
	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
// Events are delivered on the goroutine that dispatched the command,
// which is the UI goroutine.
type UICallbacks struct {
	// Workspace
	OnFolderOpened           func(folder string, count int)
	OnOutputDirectoryChanged func(path string)
	OnSchemaReplaced         func(attributes []event.AttributeOptions)
	OnQuitRequested          func()

	// Annotation
	OnImageChanged     func(path string, index, total int)
	OnSelectionChanged func(choices []event.Choice)
	OnAnnotationSaved  func(imageFilename, recordPath string)

	// View
	OnZoomChanged func(level float64, source event.ZoomSource)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	// Subscribe to events
	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

// SelectFolder opens a folder of images.
func (b *UIEventBridge) SelectFolder(path string) error {
	return b.coordinator.Dispatch(command.NewSelectFolder(path))
}

// SetOutputDirectory sets where annotation records are written.
func (b *UIEventBridge) SetOutputDirectory(path string) error {
	return b.coordinator.Dispatch(command.NewSetOutputDirectory(path))
}

// ReplaceSchema replaces the attribute schema with the given JSON text.
func (b *UIEventBridge) ReplaceSchema(text string) error {
	return b.coordinator.Dispatch(&command.ReplaceSchema{Text: text})
}

// Next saves the current image and shows the next one.
func (b *UIEventBridge) Next() error {
	return b.coordinator.Dispatch(&command.Advance{})
}

// Previous saves the current image and shows the previous one.
func (b *UIEventBridge) Previous() error {
	return b.coordinator.Dispatch(&command.Retreat{})
}

// SelectLabel chooses a label for an attribute of the current image.
func (b *UIEventBridge) SelectLabel(attribute, label string) error {
	return b.coordinator.Dispatch(command.NewSelectLabel(attribute, label))
}

// ZoomStep zooms by one discrete step.
func (b *UIEventBridge) ZoomStep(in bool) error {
	return b.coordinator.Dispatch(&command.ZoomStep{In: in})
}

// ZoomWheel zooms by one mouse wheel tick.
func (b *UIEventBridge) ZoomWheel(in bool) error {
	return b.coordinator.Dispatch(&command.ZoomWheel{In: in})
}

// Quit asks the application to close.
func (b *UIEventBridge) Quit() error {
	return b.coordinator.Dispatch(&command.Quit{})
}

// Query methods

// SchemaText returns the current schema as editable JSON text.
func (b *UIEventBridge) SchemaText() string {
	return schema.Format(b.coordinator.Schema())
}

// Selection returns the labels chosen for the current image.
func (b *UIEventBridge) Selection() []annotation.Label {
	return b.coordinator.Selection()
}

// OutputDirectory returns the output directory, or "" if unset.
func (b *UIEventBridge) OutputDirectory() string {
	return b.coordinator.OutputDirectory()
}

// State returns the workspace state.
func (b *UIEventBridge) State() state.WorkspaceState {
	return b.coordinator.State()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.FolderOpened:
		if callbacks.OnFolderOpened != nil {
			callbacks.OnFolderOpened(evt.Folder, evt.Count)
		}

	case *event.OutputDirectoryChanged:
		if callbacks.OnOutputDirectoryChanged != nil {
			callbacks.OnOutputDirectoryChanged(evt.Path)
		}

	case *event.SchemaReplaced:
		if callbacks.OnSchemaReplaced != nil {
			callbacks.OnSchemaReplaced(evt.Attributes)
		}

	case *event.QuitRequested:
		if callbacks.OnQuitRequested != nil {
			callbacks.OnQuitRequested()
		}

	case *event.ImageChanged:
		if callbacks.OnImageChanged != nil {
			callbacks.OnImageChanged(evt.Path, evt.Index, evt.Total)
		}

	case *event.SelectionChanged:
		if callbacks.OnSelectionChanged != nil {
			callbacks.OnSelectionChanged(evt.Choices)
		}

	case *event.AnnotationSaved:
		if callbacks.OnAnnotationSaved != nil {
			callbacks.OnAnnotationSaved(evt.ImageFilename, evt.RecordPath)
		}

	case *event.ZoomChanged:
		if callbacks.OnZoomChanged != nil {
			callbacks.OnZoomChanged(evt.Level, evt.Source)
		}

	default:
		b.logger.Debug("Unhandled event", "event", e.EventName())
	}
}
