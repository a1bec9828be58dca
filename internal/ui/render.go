package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"acesh/pkg/acekey"
)

// assignPrefixMap maps every form to its current ace key ("" when the engine
// has no answer for it this round).
func assignPrefixMap(forms []string, typedRaw string) map[string]string {
	assigned := make(map[string]string, len(forms))
	for _, f := range forms {
		assigned[f] = ""
	}
	asg, err := acekey.AssignKeys(forms, typedRaw)
	if err != nil {
		return assigned
	}
	for _, a := range asg {
		if a.Index >= 0 && a.Index < len(forms) {
			assigned[forms[a.Index]] = a.Key
		}
	}
	return assigned
}

// assignedMap computes keys for the set the user is currently working
// against: the numeric baseline subset when that channel is active, all
// items otherwise.
func (m *Model) assignedMap() map[string]string {
	if m.numericBaseline != nil {
		var subset []string
		for _, idx := range m.numericBaseline {
			if idx >= 0 && idx < len(m.items) {
				subset = append(subset, m.items[idx].Forms...)
			}
		}
		return assignPrefixMap(subset, m.typedRaw)
	}
	forms, _ := m.allForms()
	return assignPrefixMap(forms, m.typedRaw)
}

// visibleItemIndices returns the indices of items on screen, in display
// order.
func (m *Model) visibleItemIndices() []int {
	if m.numericBaseline != nil {
		// The baseline can outlive an items rebuild; drop indices that no
		// longer point at anything.
		var out []int
		for _, idx := range m.numericBaseline {
			if idx < 0 || idx >= len(m.items) {
				continue
			}
			if allDigits(m.typedRaw) && !strings.HasPrefix(strconv.Itoa(idx+1), m.typedRaw) {
				continue
			}
			out = append(out, idx)
		}
		return out
	}

	forms, _ := m.allForms()
	visibleForms := make(map[string]bool)
	asg, err := acekey.AssignKeys(forms, m.typedRaw)
	if err == nil {
		for _, a := range asg {
			if a.Index >= 0 && a.Index < len(forms) {
				visibleForms[forms[a.Index]] = true
			}
		}
	} else if m.typed == "" {
		for _, f := range forms {
			visibleForms[f] = true
		}
	}

	var out []int
	for idx, it := range m.items {
		for _, f := range it.Forms {
			if visibleForms[f] {
				out = append(out, idx)
				break
			}
		}
	}
	return out
}

func (m *Model) visibleItems() []ChooseItem {
	indices := m.visibleItemIndices()
	out := make([]ChooseItem, 0, len(indices))
	for _, idx := range indices {
		out = append(out, m.items[idx])
	}
	return out
}

func gutterWidth(total int) int {
	w := len(strconv.Itoa(total))
	if w < 3 {
		w = 3
	}
	return w
}

func formatNum(num, width int) string {
	return fmt.Sprintf("%*d │ ", width, num)
}

// buildLabel decorates every form of an item and joins them. Forms with
// fewer leading markers than the typed buffer are hidden once the user has
// committed to the doubled form.
func (m *Model) buildLabel(it *ChooseItem, assigned map[string]string, tHyph int) string {
	var parts []string
	for _, f := range it.Forms {
		if tHyph >= 2 && leadingHyphenCount(f) < tHyph {
			continue
		}
		parts = append(parts, decorateForm(f, m.typedRaw, assigned[f]))
	}
	return strings.Join(parts, ", ")
}

func (m *Model) flagSuffix(it *ChooseItem) string {
	if it.FlagDef == nil {
		return ""
	}
	fd := it.FlagDef
	var b strings.Builder
	if fd.RequiresValue {
		placeholder := "VALUE"
		if fd.Longhand != "" {
			placeholder = strings.ToUpper(fd.Longhand)
		} else if fd.Shorthand != "" {
			placeholder = strings.ToUpper(fd.Shorthand)
		}
		b.WriteString(styleDesc.Render(" " + placeholder))
	}
	b.WriteString(styleDesc.Render("  "))
	if fd.Usage != "" {
		b.WriteString(styleDesc.Render(fd.Usage))
	}
	topDepth := len(m.seg.Stack) - 1
	if it.Depth < topDepth && it.Depth < len(m.seg.Stack) {
		if origin := m.seg.Stack[it.Depth].Name; origin != "" {
			b.WriteString(styleDesc.Render(" (from " + origin + ")"))
		}
	}
	return b.String()
}

func cmdSuffix(it *ChooseItem) string {
	short := it.Short
	if short == "" && it.CmdDef != nil {
		short = it.CmdDef.Short
	}
	if short == "" {
		return ""
	}
	return styleDesc.Render("  " + short)
}

func (m *Model) renderItemLine(it *ChooseItem, assigned map[string]string, tHyph int, numStr string) string {
	label := m.buildLabel(it, assigned, tHyph)
	if label == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleLineNum.Render(numStr))
	b.WriteString(styleLabel.Render(label))
	if m.showDesc {
		if it.Kind == kindFlag {
			b.WriteString(m.flagSuffix(it))
		}
		if s := cmdSuffix(it); s != "" {
			b.WriteString(s)
		}
	}
	return b.String()
}

// renderListContent renders one page of the list. On the numeric channel the
// gutter shows the baseline numbers the user is matching against; otherwise
// rows are numbered by display position.
func (m *Model) renderListContent(visible []ChooseItem) string {
	assigned := m.assignedMap()
	tHyph := leadingHyphenCount(m.typedRaw)

	if m.numericBaseline != nil {
		return m.renderNumericContent(assigned, tHyph)
	}

	total := len(visible)
	per := m.perPage
	if per == 0 {
		per = total
	}
	if per == 0 {
		return ""
	}
	start := m.page * per
	end := start + per
	if end > total {
		end = total
	}
	gw := gutterWidth(total)

	var b strings.Builder
	for idx := start; idx < end; idx++ {
		line := m.renderItemLine(&visible[idx], assigned, tHyph, formatNum(idx+1, gw))
		if line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) renderNumericContent(assigned map[string]string, tHyph int) string {
	var positions []int
	if allDigits(m.typedRaw) {
		for _, idx := range m.numericBaseline {
			if strings.HasPrefix(strconv.Itoa(idx+1), m.typedRaw) {
				positions = append(positions, idx)
			}
		}
	} else {
		positions = m.numericBaseline
	}
	if len(positions) == 0 {
		return ""
	}

	// gutter width follows the largest baseline number so it does not shrink
	// as digits narrow the set
	maxNum := 0
	for _, idx := range m.numericBaseline {
		if idx+1 > maxNum {
			maxNum = idx + 1
		}
	}
	gw := gutterWidth(maxNum)

	per := m.perPage
	if per == 0 {
		per = len(positions)
	}
	start := m.page * per
	end := start + per
	if end > len(positions) {
		end = len(positions)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		idx := positions[i]
		if idx < 0 || idx >= len(m.items) {
			continue
		}
		line := m.renderItemLine(&m.items[idx], assigned, tHyph, formatNum(idx+1, gw))
		if line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// normalizeAndPad fits lines to exactly per rows of totalWidth columns.
func normalizeAndPad(lines []string, totalWidth, per int) string {
	lineStyle := lipgloss.NewStyle().Width(totalWidth).MaxHeight(1)
	out := make([]string, 0, per)
	for i := 0; i < per; i++ {
		if i < len(lines) {
			out = append(out, lineStyle.Render(lines[i]))
		} else {
			out = append(out, lineStyle.Render(""))
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) totalWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

// renderMainContent renders the middle block: the value-input prompt when
// active, otherwise the item list, always exactly perPage lines.
func (m *Model) renderMainContent() string {
	w := m.totalWidth()

	if m.inValueMode {
		lines := []string{
			lipgloss.NewStyle().Bold(true).Render("Value input: ") + m.pendingValue,
			styleDesc.Render("Press Enter to confirm, Esc to cancel"),
		}
		per := m.perPage
		if per == 0 {
			per = len(lines)
		}
		return normalizeAndPad(lines, w, per)
	}

	visible := m.visibleItems()
	content := m.renderListContent(visible)
	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	}
	per := m.perPage
	if per == 0 {
		per = len(lines)
	}
	return normalizeAndPad(lines, w, per)
}

// renderPreviewBlock renders the boxed command preview as exactly
// previewBlockLines lines.
func (m *Model) renderPreviewBlock() []string {
	boxWidth := defaultWidth
	if m.width >= 2 {
		boxWidth = m.width - 2
	}
	inner := stylePreview.Render("> " + m.seg.Preview())
	block := stylePreviewBox.Width(boxWidth).Render(inner)
	out := strings.Split(block, "\n")
	if len(out) > previewBlockLines {
		out = out[:previewBlockLines]
	}
	for len(out) < previewBlockLines {
		out = append(out, "")
	}
	return out
}

// modeline key/description hints, dropped from the right when space runs out.
var modelinePairs = [][2]string{
	{"␣", "arg"}, {"⏎", "run"}, {"⌫", "undo"}, {"⎋", "quit"},
}

func runeCount(s string) int { return len([]rune(s)) }

// renderModeline builds the footer: channel indicator, mode block, key
// hints, and pagination, fitted to the width.
func (m *Model) renderModeline() string {
	visible := m.visibleItems()
	total := len(visible)
	per := m.perPage
	if per == 0 {
		per = total
	}
	totalPages := 1
	if per > 0 && total > 0 {
		totalPages = (total + per - 1) / per
	}

	w := m.totalWidth()
	innerMax := defaultWidth
	if w > 0 {
		innerMax = w - 3
		if innerMax < 0 {
			innerMax = 0
		}
	}

	inner := styleModeline.Padding(0)
	keyStyle := styleModeline.Foreground(lipgloss.Color("#ee00ee")).Bold(true).Padding(0)
	pagStyle := styleModeline.Faint(true).Padding(0)

	type pair struct {
		rendered string
		plain    int
	}
	pairs := make([]pair, 0, len(modelinePairs))
	for _, p := range modelinePairs {
		key, desc := p[0], p[1]
		pairs = append(pairs, pair{
			rendered: inner.Render(desc) + inner.Render(":") + keyStyle.Render(key),
			plain:    runeCount(desc) + 1 + runeCount(key),
		})
	}

	pagPlain, pagRendered := "", ""
	if totalPages > 1 {
		pagPlain = fmt.Sprintf("Page %d/%d ↑/↓", m.page+1, totalPages)
		pagRendered = pagStyle.Render(fmt.Sprintf("Page %d/%d ", m.page+1, totalPages)) +
			keyStyle.Render("↑") + pagStyle.Render("/") + keyStyle.Render("↓")
	}
	pagWidth := runeCount(pagPlain)

	mode := m.mode()
	modeW := runeCount(mode) + 2
	sepW := 3
	avail := 0
	if innerMax > modeW+sepW {
		avail = innerMax - modeW - sepW
	}

	joined := func(n int) (string, int) {
		if n == 0 {
			return "", 0
		}
		parts := make([]string, 0, n)
		width := 0
		for i := 0; i < n; i++ {
			parts = append(parts, pairs[i].rendered)
			width += pairs[i].plain
		}
		width += 2 * (n - 1)
		return strings.Join(parts, inner.Render("  ")), width
	}

	count := len(pairs)
	left, leftWidth := joined(count)
	for count > 0 && leftWidth+pagWidth > avail {
		count--
		left, leftWidth = joined(count)
	}
	if leftWidth+pagWidth > avail && pagPlain != "" {
		short := fmt.Sprintf("Page %d/%d", m.page+1, totalPages)
		pagWidth = runeCount(short)
		pagRendered = pagStyle.Render(short)
	}

	pad := 0
	if avail > leftWidth+pagWidth+2 {
		pad = avail - leftWidth - pagWidth - 2
	}
	filler := ""
	if pad > 0 {
		filler = styleModeline.Padding(0).Width(pad).Render("")
	}

	modeStyled := styleModeline.
		Background(lipgloss.Color("#656565")).
		Bold(true).
		Render(mode)

	// channel indicator at the far left: '1' for numeric, 'A' for alpha
	indicator := "A"
	if m.numericBaseline != nil {
		indicator = "1"
	}
	indicatorStyled := styleModeline.Faint(true).Render(indicator)

	line := indicatorStyled + modeStyled + inner.Render(" | ") + left + filler + pagRendered + styleModeline.Render(" ")
	line = strings.ReplaceAll(line, "\n", " ")
	return styleModeline.Padding(0).Width(m.totalWidth()).MaxHeight(1).Render(line)
}

// View implements tea.Model: preview box, item list, modeline.
func (m Model) View() string {
	lines := m.renderPreviewBlock()
	lines = append(lines, strings.Split(m.renderMainContent(), "\n")...)
	modeline := m.renderModeline()
	if i := strings.IndexByte(modeline, '\n'); i >= 0 {
		modeline = modeline[:i]
	}
	lines = append(lines, modeline)
	return strings.Join(lines, "\n")
}
