package ui

import (
	"strings"

	"acesh/pkg/acekey"
)

// collectCandidateRunes returns the significant runes of form and their byte
// positions, skipping everything the engine ignores.
func collectCandidateRunes(form string) ([]rune, []int) {
	var runes []rune
	var positions []int
	for i, ch := range form {
		if acekey.IsAceRune(ch) {
			runes = append(runes, ch)
			positions = append(positions, i)
		}
	}
	return runes, positions
}

func leadingHyphenCount(s string) int {
	n := 0
	for _, r := range s {
		if r != '-' {
			break
		}
		n++
	}
	return n
}

func foldEqual(a, b rune) bool {
	return strings.EqualFold(string(a), string(b))
}

// decorateForm styles one form for the list: runes the user has already typed
// toward the assigned key render in the typed style, the next key rune in the
// ace style, everything else plain. The assigned sequence is located inside
// the form left to right so repeated runes resolve to distinct positions.
func decorateForm(form, typed, assignedSeq string) string {
	candidateRunes, candidatePos := collectCandidateRunes(form)

	var assignedPos []int
	if assignedSeq != "" {
		ci := 0
		for _, ar := range strings.ToLower(assignedSeq) {
			found := -1
			// Search from the current candidate index so the key positions the
			// engine chose stay highlighted even after the user typed them.
			for j := ci; j < len(candidateRunes); j++ {
				if foldEqual(candidateRunes[j], ar) {
					found = j
					ci = j + 1
					break
				}
			}
			if found < 0 {
				assignedPos = nil
				break
			}
			assignedPos = append(assignedPos, found)
		}
	}

	typedLen := 0
	if typed != "" && assignedSeq != "" {
		if leadingHyphenCount(typed) >= 2 && leadingHyphenCount(assignedSeq) < leadingHyphenCount(typed) {
			typedLen = 0
		} else {
			unitRunes := 1
			if strings.HasPrefix(form, "--") {
				unitRunes = 2
			}
			tr := []rune(strings.TrimLeft(strings.ToLower(typed), "-"))
			if unitRunes > len(tr) {
				tr = nil
			} else {
				tr = tr[unitRunes:]
			}
			ar := []rune(strings.ToLower(assignedSeq))
			for typedLen < len(tr) && typedLen < len(ar) && tr[typedLen] == ar[typedLen] {
				typedLen++
			}
		}
	}

	ordByCandidate := make(map[int]int, len(assignedPos))
	for ord, idx := range assignedPos {
		ordByCandidate[idx] = ord
	}

	var out strings.Builder
	out.Grow(len(form))
	for byteIdx, ch := range form {
		if !acekey.IsAceRune(ch) {
			out.WriteRune(ch)
			continue
		}
		cidx := -1
		for j, p := range candidatePos {
			if p == byteIdx {
				cidx = j
				break
			}
		}
		if cidx < 0 {
			out.WriteRune(ch)
			continue
		}
		ord, assigned := ordByCandidate[cidx]
		switch {
		case !assigned:
			out.WriteRune(ch)
		case typed == "":
			if ord == 0 {
				out.WriteString(styleAce.Render(string(ch)))
			} else {
				out.WriteRune(ch)
			}
		case ord < typedLen:
			out.WriteString(styleTyped.Render(string(ch)))
		case ord == typedLen:
			out.WriteString(styleAce.Render(string(ch)))
		default:
			out.WriteRune(ch)
		}
	}
	return out.String()
}
