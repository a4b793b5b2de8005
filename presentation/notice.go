package presentation

import (
	"errors"

	"multilabel-go/application/session"
	"multilabel-go/domain/annotation"
	"multilabel-go/domain/schema"
)

// severity decides how a command error is shown to the user.
type severity int

const (
	severityNone severity = iota
	severityInfo
	severityWarning
	severityError
)

// notice is the dialog content for a command error.
type notice struct {
	severity severity
	title    string
	message  string
}

// noticeFor maps a command error to what the user sees.
// Navigating an empty folder is silently ignored.
func noticeFor(err error) notice {
	switch {
	case err == nil, errors.Is(err, session.ErrNoImages):
		return notice{severity: severityNone}
	case errors.Is(err, session.ErrAtEnd):
		return notice{severityInfo, "Notice", "This is already the last image."}
	case errors.Is(err, session.ErrAtStart):
		return notice{severityInfo, "Notice", "This is already the first image."}
	case errors.Is(err, annotation.ErrNoOutputDirectory):
		return notice{severityWarning, "Warning", "Please set the output directory first."}
	case errors.Is(err, schema.ErrInvalidFormat):
		return notice{severityWarning, "Warning", "Please enter valid attribute JSON:\n" + err.Error()}
	default:
		return notice{severityError, "Error", err.Error()}
	}
}
