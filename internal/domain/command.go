// Package domain holds the core types of the leap CLI: the commands a user
// can issue and the per-file error taxonomy.
package domain

// Command is one user intent parsed from process arguments. The set of
// implementations is closed: FormatCommand, VerifyCommand and
// PrintStdCommand.
type Command interface {
	isCommand()
}

// FormatCommand rewrites each spec file, in the given order.
type FormatCommand struct {
	Paths    []string
	ToStdout bool
}

// VerifyCommand parses the spec files as a single unit of work.
type VerifyCommand struct {
	Paths []string
}

// PrintStdCommand prints the standard type catalogue.
type PrintStdCommand struct{}

func (FormatCommand) isCommand()   {}
func (VerifyCommand) isCommand()   {}
func (PrintStdCommand) isCommand() {}

// NewFormatCommand copies paths so later changes to the caller's slice
// cannot alter the command.
func NewFormatCommand(paths []string, toStdout bool) FormatCommand {
	return FormatCommand{Paths: clonePaths(paths), ToStdout: toStdout}
}

// NewVerifyCommand copies paths so later changes to the caller's slice
// cannot alter the command.
func NewVerifyCommand(paths []string) VerifyCommand {
	return VerifyCommand{Paths: clonePaths(paths)}
}

func clonePaths(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}
