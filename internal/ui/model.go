/*
Package ui is the interactive completion screen: a bubbletea model that shows
the current command's flags and subcommands, feeds every keystroke through the
ace-key engine, and commits selections into the command line being composed.

Two input channels coexist. The alpha channel treats runes as engine input;
the numeric channel, entered by typing a digit that the engine cannot use,
selects items by the line number that was on screen when the first digit was
pressed. The screen is preview box, paged item list, then a one-line modeline
whose leading marker shows which channel is active.
*/
package ui

import (
	"sort"
	"strings"

	"acesh/pkg/catalog"
	"acesh/pkg/cmdline"
)

// layout constants reused by rendering code
const (
	previewBlockLines = 3
	modelineLines     = 1
	reservedLines     = previewBlockLines + modelineLines
	defaultWidth      = 80
)

// itemKind separates flags from commands in the list.
type itemKind string

const (
	kindCmd  itemKind = "cmd"
	kindFlag itemKind = "flag"
)

// ChooseItem is one selectable row: a flag or a (sub)command.
type ChooseItem struct {
	Kind    itemKind
	Label   string
	Forms   []string
	FlagDef *cmdline.FlagDef
	CmdDef  *cmdline.CommandDef
	Short   string
	Depth   int
}

// Source resolves command metadata for the screen. The carapace client is
// the production implementation.
type Source interface {
	ListEntries() ([]catalog.Entry, error)
	Export(name string) (*cmdline.CommandDef, error)
}

// Model is the full screen state.
type Model struct {
	items    []ChooseItem
	typed    string
	typedRaw string
	seg      *cmdline.Segment
	current  *cmdline.CommandDef
	source   Source
	defCache map[string]*cmdline.CommandDef

	// value-input state for positionals and flags that take a value
	inValueMode  bool
	pendingFlag  *cmdline.FlagDef
	pendingForm  string
	pendingPos   bool
	pendingDepth int
	pendingValue string

	errMsg string

	// set on enter; the caller executes it after the program exits
	ExitPreview string

	// pagination
	page    int
	perPage int
	width   int
	height  int

	// display preferences from the config file
	showDesc    bool
	maxPageRows int
	reserved    int

	// numeric channel baseline: item indices that were on screen when the
	// first digit arrived. nil means the alpha channel is active.
	numericBaseline []int
}

// NewModel builds the initial screen from discovered top-level commands.
func NewModel(entries []catalog.Entry, source Source) Model {
	m := Model{
		seg:      cmdline.NewSegment(""),
		source:   source,
		defCache: make(map[string]*cmdline.CommandDef),
		showDesc: true,
		reserved: reservedLines,
	}
	if len(entries) > 0 {
		items := make([]ChooseItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, ChooseItem{
				Kind:  kindCmd,
				Label: e.Name,
				Forms: []string{e.Name},
				Short: e.Short,
			})
		}
		m.items = sortItems(items)
	}
	return m
}

// sortItems orders flags before commands, each group by ascending label
// length then lexicographically, so short entries land on the first page.
func sortItems(items []ChooseItem) []ChooseItem {
	var flags, cmds []ChooseItem
	for _, it := range items {
		if it.Kind == kindFlag {
			flags = append(flags, it)
		} else {
			cmds = append(cmds, it)
		}
	}
	byLabel := func(s []ChooseItem) {
		sort.SliceStable(s, func(i, j int) bool {
			if len(s[i].Label) != len(s[j].Label) {
				return len(s[i].Label) < len(s[j].Label)
			}
			return s[i].Label < s[j].Label
		})
	}
	byLabel(flags)
	byLabel(cmds)
	return append(flags, cmds...)
}

// mode names the modeline's center block: the typed buffer while one exists,
// otherwise the deepest command name, otherwise the program name.
func (m *Model) mode() string {
	if m.typed != "" {
		return "Typed: " + m.typed
	}
	for i := len(m.seg.Stack) - 1; i >= 0; i-- {
		if name := strings.TrimSpace(m.seg.Stack[i].Name); name != "" {
			return name
		}
	}
	return "acesh"
}

// defForDepth resolves the command definition for a stack depth by walking
// subcommands from the cached root definition.
func (m *Model) defForDepth(depth int) *cmdline.CommandDef {
	if depth >= len(m.seg.Stack) {
		return nil
	}
	rootName := m.seg.Stack[0].Name
	if rootName == "" {
		return nil
	}
	if rootDef, ok := m.defCache[rootName]; ok {
		cur := rootDef
		for i := 1; i <= depth; i++ {
			sub, ok := cur.FindSubcommand(m.seg.Stack[i].Name)
			if !ok {
				return nil
			}
			cur = sub
		}
		return cur
	}
	if m.current != nil && depth == len(m.seg.Stack)-1 {
		return m.current
	}
	return nil
}

// buildItemsFromCommand rebuilds the list for cmd: flags from every stack
// depth (parent flags labeled with their origin), then cmd's subcommands.
func (m *Model) buildItemsFromCommand(cmd *cmdline.CommandDef) {
	if cmd == nil || cmd.Name == "" {
		m.items = nil
		return
	}
	topDepth := len(m.seg.Stack) - 1
	if topDepth < 0 {
		topDepth = 0
	}

	var items []ChooseItem
	for d := 0; d <= topDepth; d++ {
		def := m.defForDepth(d)
		if def == nil {
			continue
		}
		for i := range def.Flags {
			f := &def.Flags[i]
			forms := catalog.FlagForms(*f)
			if len(forms) == 0 {
				continue
			}
			label := strings.Join(forms, ", ")
			if d < topDepth {
				label = def.Name + ": " + label
			}
			items = append(items, ChooseItem{
				Kind:    kindFlag,
				Label:   label,
				Forms:   forms,
				FlagDef: f,
				Depth:   d,
			})
		}
	}
	for i := range cmd.Subcommands {
		sc := &cmd.Subcommands[i]
		items = append(items, ChooseItem{
			Kind:   kindCmd,
			Label:  sc.Name,
			Forms:  catalog.SubcommandForms(*sc),
			CmdDef: sc,
			Short:  sc.Short,
			Depth:  topDepth,
		})
	}

	m.items = sortItems(items)
	m.page = 0
}

// setItemsFromEntries resets the screen to the top-level command list.
func (m *Model) setItemsFromEntries(entries []catalog.Entry) {
	items := make([]ChooseItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ChooseItem{
			Kind:  kindCmd,
			Label: e.Name,
			Forms: []string{e.Name},
			Short: e.Short,
		})
	}
	m.items = sortItems(items)
	m.current = nil
	m.seg.Root = ""
	if len(m.seg.Stack) > 0 {
		m.seg.Stack[0].Name = ""
	}
}

// applyLoadedCommand installs an exported root definition as the new root.
func (m *Model) applyLoadedCommand(def *cmdline.CommandDef) {
	m.defCache[def.Name] = def
	m.seg.Root = def.Name
	if len(m.seg.Stack) == 0 {
		m.seg = cmdline.NewSegment(def.Name)
	} else {
		m.seg.Stack[0].Name = def.Name
	}
	m.current = def
	m.buildItemsFromCommand(def)
	m.clearTyped()
}

// restoreCurrentAfterPop recomputes current and the list after backspace
// removed a subcommand from the stack.
func (m *Model) restoreCurrentAfterPop() {
	if m.seg.Root == "" {
		m.current = nil
		m.items = nil
		return
	}
	rootDef, ok := m.defCache[m.seg.Stack[0].Name]
	if !ok {
		m.current = nil
		m.items = nil
		return
	}
	cur := rootDef
	for i := 1; i < len(m.seg.Stack); i++ {
		sub, ok := cur.FindSubcommand(m.seg.Stack[i].Name)
		if !ok {
			break
		}
		cur = sub
	}
	m.current = cur
	m.buildItemsFromCommand(cur)
}

func (m *Model) clearTyped() {
	m.typed = ""
	m.typedRaw = ""
}

// allForms flattens item forms in item order; formOwner maps each form back
// to its item index.
func (m *Model) allForms() ([]string, map[string]int) {
	var forms []string
	owner := make(map[string]int)
	for idx, it := range m.items {
		for _, f := range it.Forms {
			forms = append(forms, f)
			if _, dup := owner[f]; !dup {
				owner[f] = idx
			}
		}
	}
	return forms, owner
}

// Configure applies display preferences from the config file. pageRows caps
// the rows per page (0 means fill the window); reserved is the line count
// kept for the preview box and modeline.
func (m *Model) Configure(pageRows, reserved int, showDescriptions bool) {
	m.maxPageRows = pageRows
	if reserved > 0 {
		m.reserved = reserved
	}
	m.showDesc = showDescriptions
}

// Preview returns the command line composed so far.
func (m *Model) Preview() string {
	return m.seg.Preview()
}

// Err returns the last discovery error shown to the user.
func (m *Model) Err() string {
	return m.errMsg
}
