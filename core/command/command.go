// Package command defines all commands that can be sent to the application.
// Commands represent user intentions and are processed by the application layer.
package command

// Command is the base interface for all commands.
// Commands are sent from the presentation layer to the application layer.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// PathCommand is a command that carries a file system path chosen by the user.
type PathCommand interface {
	Command
	// TargetPath returns the selected path
	TargetPath() string
}

// basePathCommand provides common implementation for path commands.
type basePathCommand struct {
	path string
}

func (c *basePathCommand) TargetPath() string {
	return c.path
}
