package invocation

import "strings"

// Kind identifies the operation an invocation asks the external tool to perform.
type Kind string

const (
	// KindInfo asks the tool to print and validate metadata for a single file.
	KindInfo Kind = "info"
	// KindConvert asks the tool to re-encode a source file into the format
	// implied by the target path's extension.
	KindConvert Kind = "convert"
)

// Invocation is a structured description of a single tool invocation. It is
// built as a plain value and rendered to an argument vector or command string
// only at the execution boundary.
//
// Rendered formats:
//
//	info:    <tool> --info -v <path>
//	convert: <tool> <source> -o <target>
type Invocation struct {
	Kind Kind
	Args []string
}

// Argv returns the full argument vector for the given tool binary.
func (i Invocation) Argv(tool string) []string {
	switch i.Kind {
	case KindInfo:
		return append([]string{tool, "--info", "-v"}, i.Args...)
	case KindConvert:
		argv := []string{tool}
		if len(i.Args) > 0 {
			argv = append(argv, i.Args[0])
		}
		if len(i.Args) > 1 {
			argv = append(argv, "-o", i.Args[1])
		}
		return argv
	default:
		return append([]string{tool}, i.Args...)
	}
}

// Render returns the invocation as a single command string. Rendering is pure:
// the same invocation and tool always produce the same string.
func (i Invocation) Render(tool string) string {
	return strings.Join(i.Argv(tool), " ")
}

// InputPath returns the path of the file the invocation reads, or an empty
// string when the invocation has no input.
func (i Invocation) InputPath() string {
	if len(i.Args) == 0 {
		return ""
	}
	return i.Args[0]
}

// OutputPath returns the path the invocation writes, or an empty string for
// read-only invocations.
func (i Invocation) OutputPath() string {
	if i.Kind == KindConvert && len(i.Args) > 1 {
		return i.Args[1]
	}
	return ""
}

// Command defines the interface for all invocation builders
type Command interface {
	Name() string
	Invocation() Invocation
}

// CommandFactory is a function type that creates a command from configuration parameters
type CommandFactory func(params map[string]any) (Command, error)

// CommandConfig represents a command configuration with name and parameters
type CommandConfig struct {
	Name   string
	Params map[string]any
}
