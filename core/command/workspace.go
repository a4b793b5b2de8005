package command

// SelectFolder opens a folder of images for annotation.
type SelectFolder struct {
	basePathCommand
}

func NewSelectFolder(path string) *SelectFolder {
	return &SelectFolder{basePathCommand{path: path}}
}

func (c *SelectFolder) CommandName() string {
	return "SelectFolder"
}

// SetOutputDirectory sets the directory annotation records are written to.
type SetOutputDirectory struct {
	basePathCommand
}

func NewSetOutputDirectory(path string) *SetOutputDirectory {
	return &SetOutputDirectory{basePathCommand{path: path}}
}

func (c *SetOutputDirectory) CommandName() string {
	return "SetOutputDirectory"
}

// ReplaceSchema replaces the attribute schema with user supplied JSON text.
type ReplaceSchema struct {
	Text string
}

func (c *ReplaceSchema) CommandName() string {
	return "ReplaceSchema"
}

// Quit closes the application without confirmation.
type Quit struct{}

func (c *Quit) CommandName() string {
	return "Quit"
}
