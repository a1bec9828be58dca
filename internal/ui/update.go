package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"acesh/pkg/acekey"
	"acesh/pkg/cmdline"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleWindowSize(width, height int) {
	m.width = width
	m.height = height
	m.perPage = height - m.reserved
	if m.perPage < 0 {
		m.perPage = 0
	}
	if m.maxPageRows > 0 && m.perPage > m.maxPageRows {
		m.perPage = m.maxPageRows
	}
	visible := m.visibleItems()
	totalPages := 1
	if len(visible) > 0 && m.perPage > 0 {
		totalPages = (len(visible) + m.perPage - 1) / m.perPage
	}
	if m.page >= totalPages {
		m.page = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if !m.inValueMode {
			return m, tea.Quit
		}
		m.cancelValueMode()
		return m, nil
	case tea.KeyEnter:
		m.handleEnter()
		if m.ExitPreview != "" {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyBackspace:
		if m.inValueMode {
			if r := []rune(m.pendingValue); len(r) > 0 {
				m.pendingValue = string(r[:len(r)-1])
			}
			return m, nil
		}
		m.handleBackspace()
		return m, nil
	case tea.KeyUp, tea.KeyCtrlP:
		if m.page > 0 {
			m.page--
		}
		return m, nil
	case tea.KeyDown, tea.KeyCtrlN:
		m.handlePageDown()
		return m, nil
	case tea.KeySpace:
		if m.inValueMode {
			m.pendingValue += " "
			return m, nil
		}
		m.inValueMode = true
		m.pendingPos = true
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if m.inValueMode {
				m.pendingValue += string(r)
				continue
			}
			m.handleRune(r)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) cancelValueMode() {
	m.inValueMode = false
	m.pendingFlag = nil
	m.pendingForm = ""
	m.pendingPos = false
	m.pendingDepth = 0
	m.pendingValue = ""
}

func (m *Model) handleEnter() {
	if m.inValueMode {
		if m.pendingPos {
			if m.pendingValue != "" {
				m.seg.AddPositional(m.pendingValue)
			}
			m.inValueMode = false
			m.pendingPos = false
			m.pendingValue = ""
			return
		}
		if m.pendingFlag != nil {
			m.seg.AddFlagAtDepth(m.pendingDepth, m.pendingForm, m.pendingValue)
			m.inValueMode = false
			m.pendingFlag = nil
			m.pendingForm = ""
			m.pendingValue = ""
			return
		}
	}
	if preview := strings.TrimSpace(m.seg.Preview()); preview != "" {
		m.ExitPreview = preview
	}
}

func (m *Model) handlePageDown() {
	visible := m.visibleItems()
	per := m.perPage
	if per == 0 {
		per = len(visible)
	}
	if per == 0 {
		return
	}
	totalPages := 1
	if len(visible) > 0 {
		totalPages = (len(visible) + per - 1) / per
	}
	if m.page+1 < totalPages {
		m.page++
	}
}

func (m *Model) handleBackspace() {
	if m.typed != "" {
		t := []rune(m.typed)
		m.typed = string(t[:len(t)-1])
		r := []rune(m.typedRaw)
		m.typedRaw = string(r[:len(r)-1])
		if m.typedRaw == "" {
			m.numericBaseline = nil
		}
		return
	}

	// At a bare root with nothing attached, undo means going back to the
	// top-level command list.
	if top := m.seg.Top(); top != nil {
		if m.seg.Root != "" && len(m.seg.Stack) == 1 &&
			len(top.Flags) == 0 && len(top.Positionals) == 0 && m.source != nil {
			entries, err := m.source.ListEntries()
			if err != nil {
				m.errMsg = err.Error()
				return
			}
			m.setItemsFromEntries(entries)
			return
		}
	}

	before := len(m.seg.Stack)
	m.seg.RemoveLast()
	if len(m.seg.Stack) < before {
		m.restoreCurrentAfterPop()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

// handleRune routes one keystroke: digits may open the numeric channel,
// everything else feeds the engine.
func (m *Model) handleRune(r rune) {
	if !acekey.IsSingleAceRune(string(r)) {
		return
	}

	wasNumeric := allDigits(m.typedRaw)

	if isDigit(r) && !wasNumeric && !m.simulateAlphaTreatment(r) {
		m.captureNumericBaseline(r)
	} else {
		m.updateTypedForRune(r, wasNumeric)
	}

	forms, owner := m.allForms()
	assignments, err := acekey.AssignKeys(forms, m.typedRaw)

	if m.processNumericSelection() {
		return
	}
	if err == nil {
		m.tryImmediateAssignmentSelection(assignments, forms, owner)
	}
}

func (m *Model) updateTypedForRune(r rune, wasNumeric bool) {
	lower := strings.ToLower(string(r))

	if isDigit(r) && wasNumeric {
		m.typedRaw += string(r)
		m.typed += lower
		m.page = 0
		return
	}

	if !isDigit(r) && wasNumeric {
		// numeric channel ends; the rune starts a fresh alpha buffer
		m.numericBaseline = nil
		m.typedRaw = string(r)
		m.typed = lower
		m.page = 0
		return
	}

	m.typedRaw += string(r)
	m.typed += lower
	m.page = 0
}

// simulateAlphaTreatment reports whether a first digit should stay on the
// alpha channel because the engine can still use it (some form contains it).
func (m *Model) simulateAlphaTreatment(r rune) bool {
	forms, _ := m.allForms()
	sim := m.typedRaw + string(r)

	if asg, err := acekey.AssignKeys(forms, sim); err == nil && len(asg) > 0 {
		return true
	}
	if len(m.items) == 1 {
		for _, f := range m.items[0].Forms {
			if strings.ContainsRune(f, r) {
				return true
			}
		}
	}
	return false
}

// captureNumericBaseline snapshots the on-screen item indices so later digits
// match against what the user was looking at, then starts the digit buffer.
func (m *Model) captureNumericBaseline(r rune) {
	baseline := m.visibleItemIndices()
	if len(baseline) == 0 {
		baseline = make([]int, len(m.items))
		for i := range m.items {
			baseline[i] = i
		}
	}
	m.numericBaseline = baseline
	m.typedRaw = string(r)
	m.typed = string(r)
	m.page = 0
}

// processNumericSelection fires when the digit buffer matches exactly one
// baseline line number (1-based, prefix match).
func (m *Model) processNumericSelection() bool {
	if !allDigits(m.typedRaw) {
		return false
	}
	candidates := m.numericBaseline
	fromBaseline := candidates != nil
	if candidates == nil {
		candidates = make([]int, len(m.items))
		for i := range m.items {
			candidates[i] = i
		}
	}
	var matches []int
	for _, idx := range candidates {
		if idx < 0 || idx >= len(m.items) {
			continue
		}
		if strings.HasPrefix(strconv.Itoa(idx+1), m.typedRaw) {
			matches = append(matches, idx)
		}
	}
	if len(matches) != 1 {
		return false
	}
	it := m.items[matches[0]]
	chosenForm := ""
	if len(it.Forms) > 0 {
		chosenForm = it.Forms[0]
	}
	selected := false
	switch it.Kind {
	case kindCmd:
		selected = m.handleCommandChoice(&it, chosenForm)
	case kindFlag:
		if it.FlagDef != nil {
			selected = m.handleFlagChoice(it.FlagDef, chosenForm, it.Depth)
		}
	}
	if selected && fromBaseline {
		m.numericBaseline = nil
	}
	return selected
}

// tryImmediateAssignmentSelection commits the choice when the engine reports
// a single uniquely-selected candidate and only one item is on screen.
func (m *Model) tryImmediateAssignmentSelection(assignments []acekey.Assignment, forms []string, owner map[string]int) bool {
	if len(assignments) != 1 || assignments[0].Key != "" {
		return false
	}
	if len(m.visibleItems()) != 1 {
		return false
	}
	idx := assignments[0].Index
	if idx < 0 || idx >= len(forms) {
		return false
	}
	chosenForm := forms[idx]
	itemIdx, ok := owner[chosenForm]
	if !ok {
		return false
	}
	it := m.items[itemIdx]
	switch it.Kind {
	case kindCmd:
		return m.handleCommandChoice(&it, chosenForm)
	case kindFlag:
		if it.FlagDef != nil {
			return m.handleFlagChoice(it.FlagDef, chosenForm, it.Depth)
		}
	}
	return false
}

// handleCommandChoice descends into a command: the first selection loads the
// root definition, later ones push subcommands.
func (m *Model) handleCommandChoice(it *ChooseItem, chosenForm string) bool {
	cmdName := chosenForm
	if it.CmdDef != nil {
		cmdName = it.CmdDef.Name
	}

	if m.current == nil && m.seg.Root == "" {
		if m.source == nil {
			return false
		}
		def, err := m.source.Export(cmdName)
		if err != nil {
			m.errMsg = err.Error()
			return true
		}
		m.applyLoadedCommand(def)
		return true
	}

	m.seg.PushSubcommand(cmdName)

	if it.CmdDef != nil {
		m.current = it.CmdDef
		m.buildItemsFromCommand(it.CmdDef)
		m.clearTyped()
		return true
	}

	if m.source == nil {
		m.clearTyped()
		return true
	}
	def, err := m.source.Export(chosenForm)
	if err != nil {
		m.errMsg = err.Error()
		return true
	}
	m.defCache[def.Name] = def
	m.current = def
	m.buildItemsFromCommand(def)
	m.clearTyped()
	return true
}

// handleFlagChoice toggles a flag: selecting a committed flag removes it,
// value flags open value input, everything else commits immediately.
func (m *Model) handleFlagChoice(fd *cmdline.FlagDef, chosenForm string, depth int) bool {
	if m.seg.RemoveFlagAtDepth(chosenForm, depth) {
		m.clearTyped()
		return true
	}
	if fd.RequiresValue {
		m.inValueMode = true
		m.pendingFlag = fd
		m.pendingForm = chosenForm
		m.pendingDepth = depth
		m.clearTyped()
		return true
	}
	m.seg.AddFlagAtDepth(depth, chosenForm, "")
	m.clearTyped()
	return true
}
