// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// Choice is the label currently chosen for one attribute.
type Choice struct {
	Attribute string
	Label     string
}

// AttributeOptions lists the labels offered for one attribute, in display order.
type AttributeOptions struct {
	Name   string
	Labels []string
}

// FolderOpened is published after an image folder has been scanned.
type FolderOpened struct {
	Folder string
	Count  int
}

func NewFolderOpened(folder string, count int) *FolderOpened {
	return &FolderOpened{Folder: folder, Count: count}
}

func (e *FolderOpened) EventName() string {
	return "FolderOpened"
}

// ImageChanged is published when the image under the cursor changes.
// Path is empty and Total is zero when there is nothing to show.
type ImageChanged struct {
	Path  string
	Index int
	Total int
}

func NewImageChanged(path string, index, total int) *ImageChanged {
	return &ImageChanged{Path: path, Index: index, Total: total}
}

func (e *ImageChanged) EventName() string {
	return "ImageChanged"
}

// HasImage reports whether the event refers to an actual image.
func (e *ImageChanged) HasImage() bool {
	return e.Path != "" && e.Total > 0
}

// SelectionChanged is published whenever the current selection changes.
type SelectionChanged struct {
	Choices []Choice
}

func NewSelectionChanged(choices []Choice) *SelectionChanged {
	return &SelectionChanged{Choices: choices}
}

func (e *SelectionChanged) EventName() string {
	return "SelectionChanged"
}

// Lookup returns the chosen label for an attribute.
func (e *SelectionChanged) Lookup(attribute string) (string, bool) {
	for _, c := range e.Choices {
		if c.Attribute == attribute {
			return c.Label, true
		}
	}
	return "", false
}

// SchemaReplaced is published after the attribute schema was swapped.
// Selectors must be rebuilt from Attributes.
type SchemaReplaced struct {
	Attributes []AttributeOptions
}

func NewSchemaReplaced(attributes []AttributeOptions) *SchemaReplaced {
	return &SchemaReplaced{Attributes: attributes}
}

func (e *SchemaReplaced) EventName() string {
	return "SchemaReplaced"
}
