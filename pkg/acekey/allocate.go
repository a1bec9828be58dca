package acekey

import "strings"

// allocate is the plain allocator for the filtered-prefix path: each
// candidate claims its first unused non-marker rune after its own left unit.
// Candidates with nothing left fall back to the typed left unit so they
// never become unselectable.
func allocate(cands []candidate, typedFolded string, total int) []Assignment {
	order := append([]candidate(nil), cands...)
	sortCandidates(order)

	typedUnit := leftmostUnit(typedFolded)
	used := make(map[rune]bool)
	assigned := make([]*Assignment, total)

	for _, c := range order {
		unit := strings.ToLower(c.unit)
		start := len([]rune(unit))
		body := []rune(c.clean)[start:]

		var key string
		for _, r := range body {
			if r != '-' && !used[r] {
				used[r] = true
				key = string(r)
				break
			}
		}
		switch {
		case key != "":
		case unit == "--" && typedFolded == "-":
			key = "-"
		case typedUnit != "":
			// Reusing the typed unit keeps the candidate selectable even
			// when its whole body has been claimed.
			key = typedUnit
		}
		assigned[c.index] = &Assignment{Index: c.index, Key: key}
	}
	return collect(assigned)
}

// matchTable carries the collapsed forms and per-candidate start offsets the
// multi-pass allocator works over. Rebuilt for every allocation round.
type matchTable struct {
	ms     map[int][]rune // candidate index -> collapsed folded form
	orig   map[int][]rune // candidate index -> original-case clean form
	start  map[int]int    // candidate index -> offset of first body rune
	maxLen int
}

func buildMatchTable(order []candidate) matchTable {
	t := matchTable{
		ms:    make(map[int][]rune, len(order)),
		orig:  make(map[int][]rune, len(order)),
		start: make(map[int]int, len(order)),
	}
	for _, c := range order {
		ms := []rune(c.matchString())
		if len(ms) > t.maxLen {
			t.maxLen = len(ms)
		}
		t.ms[c.index] = ms
		t.orig[c.index] = []rune(c.clean)
		t.start[c.index] = len([]rune(strings.ToLower(c.unit)))
	}
	return t
}

// preferOriginalCase picks the original-case rune at pos when it folds to
// the chosen rune, preserving the label's visual casing in the key.
func preferOriginalCase(orig []rune, pos int, ch rune) string {
	if pos < len(orig) {
		or := orig[pos]
		if or != '-' && foldRune(or) == ch {
			return string(or)
		}
	}
	return string(ch)
}

func foldRune(r rune) rune {
	return []rune(strings.ToLower(string(r)))[0]
}

// allocateFiltered assigns one distinguishing rune per candidate in three
// passes: offset frequency, per-candidate contiguous scan, last resort.
func allocateFiltered(cands []candidate, typedFolded string, total int) []Assignment {
	typedUnit := leftmostUnit(typedFolded)

	order := append([]candidate(nil), cands...)
	sortCandidates(order)

	table := buildMatchTable(order)
	assigned := make([]*Assignment, total)
	used := make(map[rune]bool)
	remaining := make(map[int]bool, len(order))
	for _, c := range order {
		remaining[c.index] = true
	}

	offsetPass(order, table, typedUnit, assigned, used, remaining)
	if len(remaining) > 0 {
		contiguousPass(order, table, typedUnit, assigned, used, remaining)
	}
	if len(remaining) > 0 {
		lastResortPass(order, table, typedUnit, assigned, remaining)
	}
	return collect(assigned)
}

// eligible reports whether ch can be claimed: non-marker, unused, and not
// the anchor the user already typed.
func eligible(ch rune, used map[rune]bool, typedUnit string) bool {
	return ch != '-' && !used[ch] && (typedUnit == "" || string(ch) != typedUnit)
}

// offsetPass walks body offsets left to right. At each offset a rune that
// occurs exactly once among the remaining candidates is assigned to its sole
// owner and consumed globally.
func offsetPass(order []candidate, table matchTable, typedUnit string, assigned []*Assignment, used map[rune]bool, remaining map[int]bool) {
	for offset := 0; offset < table.maxLen; offset++ {
		if len(remaining) == 0 {
			return
		}
		freq := make(map[rune]int)
		for idx := range remaining {
			pos := table.start[idx] + offset
			ms := table.ms[idx]
			if pos >= len(ms) {
				continue
			}
			if ch := ms[pos]; eligible(ch, used, typedUnit) {
				freq[ch]++
			}
		}
		for _, c := range order {
			idx := c.index
			if !remaining[idx] {
				continue
			}
			pos := table.start[idx] + offset
			ms := table.ms[idx]
			if pos >= len(ms) {
				continue
			}
			ch := ms[pos]
			if !eligible(ch, used, typedUnit) || freq[ch] != 1 {
				continue
			}
			assigned[idx] = &Assignment{Index: idx, Key: preferOriginalCase(table.orig[idx], pos, ch)}
			used[ch] = true
			delete(remaining, idx)
		}
	}
}

// contiguousPass lets each remaining candidate claim the first eligible rune
// in its own body, left to right.
func contiguousPass(order []candidate, table matchTable, typedUnit string, assigned []*Assignment, used map[rune]bool, remaining map[int]bool) {
	for _, c := range order {
		idx := c.index
		if !remaining[idx] {
			continue
		}
		ms := table.ms[idx]
		for pos := table.start[idx]; pos < len(ms); pos++ {
			ch := ms[pos]
			if !eligible(ch, used, typedUnit) {
				continue
			}
			assigned[idx] = &Assignment{Index: idx, Key: preferOriginalCase(table.orig[idx], pos, ch)}
			used[ch] = true
			delete(remaining, idx)
			break
		}
	}
}

// lastResortPass guarantees an answer for candidates exhausted by the
// earlier passes: the rightmost non-marker rune regardless of collisions,
// or the candidate's own left unit (doubled markers normalized to one).
// Anchor reuse is tolerated here; a candidate must never be unselectable.
func lastResortPass(order []candidate, table matchTable, typedUnit string, assigned []*Assignment, remaining map[int]bool) {
	for _, c := range order {
		idx := c.index
		if !remaining[idx] {
			continue
		}
		ms := table.ms[idx]

		var key string
		if pos := lastNonMarker(ms); pos >= 0 {
			ch := ms[pos]
			if typedUnit == "" || string(ch) != typedUnit {
				key = preferOriginalCase(table.orig[idx], pos, ch)
			} else if alt := lastNonMarkerExcept(ms, typedUnit); alt >= 0 {
				key = string(ms[alt])
			} else {
				key = string(ch)
			}
		}
		if key == "" {
			unit := c.unit
			if unit == "--" {
				unit = "-"
			}
			key = unit
		}
		assigned[idx] = &Assignment{Index: idx, Key: key}
	}
}

func lastNonMarker(ms []rune) int {
	for i := len(ms) - 1; i >= 0; i-- {
		if ms[i] != '-' {
			return i
		}
	}
	return -1
}

func lastNonMarkerExcept(ms []rune, typedUnit string) int {
	for i := len(ms) - 1; i >= 0; i-- {
		if ms[i] != '-' && string(ms[i]) != typedUnit {
			return i
		}
	}
	return -1
}

func collect(assigned []*Assignment) []Assignment {
	out := make([]Assignment, 0, len(assigned))
	for _, a := range assigned {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
