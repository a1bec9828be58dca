/*
Package cmdline models the command line being composed in the shell: a
pipeline of segments, each holding a stack of command nodes with their flags
and positionals, plus the undo history that backspace walks in reverse.

The types here are plain values with no I/O; discovery of command metadata
lives in the carapace client and selection logic in the UI.
*/
package cmdline

import "strings"

// FlagDef describes one flag of a discovered command.
type FlagDef struct {
	Longhand      string
	Shorthand     string
	Usage         string
	RequiresValue bool
}

// CommandDef describes a discovered command or subcommand.
type CommandDef struct {
	Name        string
	Short       string
	Aliases     []string
	Flags       []FlagDef
	Subcommands []CommandDef
}

// FindSubcommand resolves a subcommand by name or alias.
func (d *CommandDef) FindSubcommand(name string) (*CommandDef, bool) {
	for i := range d.Subcommands {
		sc := &d.Subcommands[i]
		if sc.Name == name {
			return sc, true
		}
		for _, a := range sc.Aliases {
			if a == name {
				return sc, true
			}
		}
	}
	return nil, false
}

// FlagInstance is a flag the user has committed, with its value if any.
type FlagInstance struct {
	Form  string
	Value string
}

// CommandNode is one level of the command stack: the root command or a
// subcommand, with everything attached at that depth.
type CommandNode struct {
	Name        string
	Flags       []FlagInstance
	Positionals []string
}

// opKind enumerates the undoable operations recorded in history.
type opKind string

const (
	opFlag       opKind = "flag"
	opPositional opKind = "pos"
	opSubcommand opKind = "subcmd"
)

// historyOp records one committed operation so RemoveLast can undo in the
// exact order the user built the line.
type historyOp struct {
	kind  opKind
	depth int
}

// Redirection is an input or output redirection attached to a segment.
type Redirection struct {
	File   string
	Input  bool
	Append bool
}

// Segment is one command of the pipeline: a root, its subcommand stack, the
// undo history, and any redirections.
type Segment struct {
	Root         string
	Stack        []CommandNode
	Redirections []Redirection

	history []historyOp
}

// NewSegment returns a segment with a single root node.
func NewSegment(root string) *Segment {
	return &Segment{
		Root:  root,
		Stack: []CommandNode{{Name: root}},
	}
}

// Top returns the deepest node, or nil when the stack is empty.
func (s *Segment) Top() *CommandNode {
	if len(s.Stack) == 0 {
		return nil
	}
	return &s.Stack[len(s.Stack)-1]
}

// PushSubcommand descends into a subcommand.
func (s *Segment) PushSubcommand(name string) {
	s.Stack = append(s.Stack, CommandNode{Name: name})
	s.history = append(s.history, historyOp{kind: opSubcommand, depth: len(s.Stack) - 1})
}

// Pop ascends one level. The root node is never popped.
func (s *Segment) Pop() {
	if len(s.Stack) <= 1 {
		return
	}
	s.Stack = s.Stack[:len(s.Stack)-1]
}

// AddFlagAtDepth attaches a flag to the node at the given depth.
func (s *Segment) AddFlagAtDepth(depth int, form, value string) {
	if depth >= len(s.Stack) {
		return
	}
	s.Stack[depth].Flags = append(s.Stack[depth].Flags, FlagInstance{Form: form, Value: value})
	s.history = append(s.history, historyOp{kind: opFlag, depth: depth})
}

// AddFlag attaches a flag to the deepest node.
func (s *Segment) AddFlag(form, value string) {
	if len(s.Stack) == 0 {
		return
	}
	s.AddFlagAtDepth(len(s.Stack)-1, form, value)
}

// RemoveFlagAtDepth removes the most recent instance of form at depth.
func (s *Segment) RemoveFlagAtDepth(form string, depth int) bool {
	if depth >= len(s.Stack) {
		return false
	}
	flags := s.Stack[depth].Flags
	for i := len(flags) - 1; i >= 0; i-- {
		if flags[i].Form == form {
			s.Stack[depth].Flags = append(flags[:i], flags[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFlag removes the most recent instance of form at the deepest node.
func (s *Segment) RemoveFlag(form string) bool {
	if len(s.Stack) == 0 {
		return false
	}
	return s.RemoveFlagAtDepth(form, len(s.Stack)-1)
}

// AddPositional appends a positional argument to the deepest node.
func (s *Segment) AddPositional(val string) {
	if len(s.Stack) == 0 {
		return
	}
	s.Stack[len(s.Stack)-1].Positionals = append(s.Stack[len(s.Stack)-1].Positionals, val)
	s.history = append(s.history, historyOp{kind: opPositional, depth: len(s.Stack) - 1})
}

// RemoveLast undoes the most recent recorded operation. Without history it
// falls back to stripping the deepest node's flags, then positionals, then
// the node itself.
func (s *Segment) RemoveLast() {
	if len(s.history) == 0 {
		if top := s.Top(); top != nil {
			if n := len(top.Flags); n > 0 {
				top.Flags = top.Flags[:n-1]
				return
			}
			if n := len(top.Positionals); n > 0 {
				top.Positionals = top.Positionals[:n-1]
				return
			}
			s.Pop()
		}
		return
	}

	op := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	switch op.kind {
	case opFlag:
		if op.depth < len(s.Stack) {
			if n := len(s.Stack[op.depth].Flags); n > 0 {
				s.Stack[op.depth].Flags = s.Stack[op.depth].Flags[:n-1]
			}
		}
	case opPositional:
		if op.depth < len(s.Stack) {
			if n := len(s.Stack[op.depth].Positionals); n > 0 {
				s.Stack[op.depth].Positionals = s.Stack[op.depth].Positionals[:n-1]
			}
		}
	case opSubcommand:
		s.Pop()
	}
}

// Preview renders the segment as the command line it would execute.
func (s *Segment) Preview() string {
	parts := []string{s.Root}
	for i := range s.Stack {
		node := &s.Stack[i]
		if i > 0 {
			parts = append(parts, node.Name)
		}
		for _, f := range node.Flags {
			parts = append(parts, f.Form)
			if f.Value != "" {
				parts = append(parts, f.Value)
			}
		}
		parts = append(parts, node.Positionals...)
	}
	for _, r := range s.Redirections {
		switch {
		case r.Input:
			parts = append(parts, "<", r.File)
		case r.Append:
			parts = append(parts, ">>", r.File)
		default:
			parts = append(parts, ">", r.File)
		}
	}
	return strings.Join(parts, " ")
}

// CommandLine is a pipeline of segments with one focused for editing.
type CommandLine struct {
	Segments []*Segment
	Focused  int
}

// New returns a command line with a single empty segment.
func New() *CommandLine {
	return &CommandLine{Segments: []*Segment{NewSegment("")}}
}

// FocusedSegment returns the segment currently being edited.
func (cl *CommandLine) FocusedSegment() *Segment {
	return cl.Segments[cl.Focused]
}

// AddSegment appends an empty segment after a pipe and focuses it.
func (cl *CommandLine) AddSegment() {
	cl.Segments = append(cl.Segments, NewSegment(""))
	cl.Focused = len(cl.Segments) - 1
}

// RemoveFocusedSegment drops the focused segment when it is still empty and
// not the only one.
func (cl *CommandLine) RemoveFocusedSegment() {
	if len(cl.Segments) <= 1 || cl.FocusedSegment().Root != "" {
		return
	}
	cl.Segments = append(cl.Segments[:cl.Focused], cl.Segments[cl.Focused+1:]...)
	if cl.Focused > 0 {
		cl.Focused--
	}
}

// FocusNext moves focus one segment right.
func (cl *CommandLine) FocusNext() {
	if cl.Focused+1 < len(cl.Segments) {
		cl.Focused++
	}
}

// FocusPrev moves focus one segment left.
func (cl *CommandLine) FocusPrev() {
	if cl.Focused > 0 {
		cl.Focused--
	}
}

// Preview renders the full pipeline.
func (cl *CommandLine) Preview() string {
	parts := make([]string, len(cl.Segments))
	for i, s := range cl.Segments {
		parts[i] = s.Preview()
	}
	return strings.Join(parts, " | ")
}
