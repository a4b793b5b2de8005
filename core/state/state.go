// Package state defines the annotation workspace states.
package state

import "fmt"

// WorkspaceState describes what the annotation workspace can currently do.
// It is derived from the loaded folder and output directory, never stored.
type WorkspaceState int

const (
	// StateNoFolder is the initial state before any image folder is chosen.
	StateNoFolder WorkspaceState = iota
	// StateEmptyFolder indicates the chosen folder holds no recognized images.
	StateEmptyFolder
	// StateViewing indicates images can be browsed but not saved.
	StateViewing
	// StateAnnotating indicates images are loaded and an output directory is set.
	StateAnnotating
)

// String returns the string representation of the state.
func (s WorkspaceState) String() string {
	switch s {
	case StateNoFolder:
		return "NoFolder"
	case StateEmptyFolder:
		return "EmptyFolder"
	case StateViewing:
		return "Viewing"
	case StateAnnotating:
		return "Annotating"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Derive computes the state from the workspace facts.
func Derive(folderChosen bool, imageCount int, hasOutputDir bool) WorkspaceState {
	switch {
	case !folderChosen:
		return StateNoFolder
	case imageCount == 0:
		return StateEmptyFolder
	case !hasOutputDir:
		return StateViewing
	default:
		return StateAnnotating
	}
}

// HasImage returns true if there is a current image to display and label.
func (s WorkspaceState) HasImage() bool {
	return s == StateViewing || s == StateAnnotating
}

// CanSave returns true if the current image's selection can be persisted.
func (s WorkspaceState) CanSave() bool {
	return s == StateAnnotating
}
