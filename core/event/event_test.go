package event

import "testing"

func TestEvent_Names(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{NewFolderOpened("/data", 3), "FolderOpened"},
		{NewImageChanged("/data/a.jpg", 0, 3), "ImageChanged"},
		{NewSelectionChanged(nil), "SelectionChanged"},
		{NewSchemaReplaced(nil), "SchemaReplaced"},
		{NewOutputDirectoryChanged("/out"), "OutputDirectoryChanged"},
		{NewAnnotationSaved("a.jpg", "/out/a.json"), "AnnotationSaved"},
		{NewZoomChanged(1.1, ZoomSourceStep), "ZoomChanged"},
		{&QuitRequested{}, "QuitRequested"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.EventName(); got != tt.expected {
				t.Errorf("EventName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestImageChanged_HasImage(t *testing.T) {
	tests := []struct {
		name     string
		event    *ImageChanged
		expected bool
	}{
		{"with image", NewImageChanged("/data/a.jpg", 0, 1), true},
		{"empty path", NewImageChanged("", 0, 0), false},
		{"zero total", NewImageChanged("/data/a.jpg", 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.HasImage(); got != tt.expected {
				t.Errorf("HasImage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSelectionChanged_Lookup(t *testing.T) {
	evt := NewSelectionChanged([]Choice{
		{Attribute: "color", Label: "red"},
		{Attribute: "shape", Label: "round"},
	})

	if got, ok := evt.Lookup("shape"); !ok || got != "round" {
		t.Errorf("Lookup(shape) = %q, %v; want round, true", got, ok)
	}
	if _, ok := evt.Lookup("size"); ok {
		t.Error("Lookup(size) should not find an attribute outside the selection")
	}
}

func TestZoomSource_String(t *testing.T) {
	tests := []struct {
		source   ZoomSource
		expected string
	}{
		{ZoomSourceStep, "Step"},
		{ZoomSourceWheel, "Wheel"},
		{ZoomSource(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.source.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}
