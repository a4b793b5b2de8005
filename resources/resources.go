// Package resources embeds static assets shipped with the application.
package resources

import (
	"embed"
	"fmt"
)

// ExampleSchema is shown as the placeholder of the label editor.
//
//go:embed attribute_labels.example.json
var ExampleSchema string

//go:embed help/*.md
var helpFiles embed.FS

// Help page names.
const (
	HelpAbout     = "about"
	HelpUsage     = "help"
	HelpShortcuts = "shortcuts"
)

// HelpText returns the markdown text of a help page.
func HelpText(name string) (string, error) {
	data, err := helpFiles.ReadFile("help/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("help page %q not found: %w", name, err)
	}
	return string(data), nil
}
