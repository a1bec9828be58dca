package acekey

import "strings"

// exactCasePrecedence selects the single candidate whose original-case clean
// form starts with the original-case typed buffer. Case-exact agreement
// always beats case-folded ambiguity.
func exactCasePrecedence(cands []candidate, typedClean string) (Assignment, bool) {
	if typedClean == "" {
		return Assignment{}, false
	}
	var hit candidate
	n := 0
	for _, c := range cands {
		if strings.HasPrefix(c.clean, typedClean) {
			hit = c
			n++
		}
	}
	if n == 1 {
		return Assignment{Index: hit.index, Key: ""}, true
	}
	return Assignment{}, false
}

// baseFullKeyMatch resolves a typed buffer of the form left-unit+extra by
// replaying the same greedy character-claiming walk the allocator uses, so
// the unique key shown on screen and the unique key that matches never
// diverge. Returns the selected candidate when the walk lands exactly on
// the typed buffer.
func baseFullKeyMatch(cands []candidate, typedUnit, typedClean, typedFolded string) (Assignment, bool) {
	if typedUnit == "" {
		return Assignment{}, false
	}
	unitLen := len([]rune(typedUnit))
	typedRunes := []rune(typedFolded)
	if len(typedRunes) <= unitLen {
		return Assignment{}, false
	}

	// Exactly one extra rune: the candidate that uniquely contains it
	// anywhere past its own unit wins outright.
	if len(typedRunes)-unitLen == 1 {
		extra := typedRunes[unitLen]
		var hit candidate
		n := 0
		for _, c := range cands {
			if !c.unitMatches(typedUnit) {
				continue
			}
			start := len([]rune(c.unit))
			for _, r := range []rune(c.folded)[start:] {
				if r == extra {
					hit = c
					n++
					break
				}
			}
		}
		if n == 1 {
			return Assignment{Index: hit.index, Key: ""}, true
		}
	}

	var base []candidate
	for _, c := range cands {
		if c.unitMatches(typedUnit) {
			base = append(base, c)
		}
	}
	sortCandidates(base)

	// Original-case claim first so case-exact typing wins.
	usedOrig := make(map[rune]bool)
	for _, c := range base {
		start := len([]rune(c.unit))
		claimed := false
		for _, r := range []rune(c.clean)[start:] {
			if usedOrig[r] {
				continue
			}
			usedOrig[r] = true
			if typedUnit+string(r) == typedClean {
				return Assignment{Index: c.index, Key: ""}, true
			}
			claimed = true
			break
		}
		if !claimed && typedUnit == typedClean {
			return Assignment{Index: c.index, Key: ""}, true
		}
	}

	used := make(map[rune]bool)
	for _, c := range base {
		start := len([]rune(c.unit))
		claimed := false
		for _, r := range []rune(c.folded)[start:] {
			if r == '-' || used[r] {
				continue
			}
			used[r] = true
			if typedUnit+string(r) == typedFolded {
				return Assignment{Index: c.index, Key: ""}, true
			}
			claimed = true
			break
		}
		if !claimed && typedUnit == typedFolded {
			return Assignment{Index: c.index, Key: ""}, true
		}
	}

	return Assignment{}, false
}

// baseTypedSelection is the final fallback when prefix filtering left
// nothing: repeat the greedy claim over the left-unit-only pool and accept
// a candidate whose constructed unit+rune key equals the typed buffer.
func baseTypedSelection(cands []candidate, typedFolded, typedUnit string) (Assignment, bool) {
	if typedUnit == "" {
		return Assignment{}, false
	}
	unitLen := len([]rune(typedUnit))
	if len([]rune(typedFolded)) <= unitLen {
		return Assignment{}, false
	}

	var base []candidate
	for _, c := range cands {
		if !c.unitMatches(typedUnit) {
			continue
		}
		if strings.HasPrefix(c.folded, typedUnit) || strings.HasPrefix(c.matchString(), typedUnit) {
			base = append(base, c)
		}
	}
	if len(base) == 0 {
		return Assignment{}, false
	}
	sortCandidates(base)

	used := make(map[rune]bool)
	for _, c := range base {
		for _, r := range []rune(c.folded)[unitLen:] {
			if r == '-' || used[r] {
				continue
			}
			used[r] = true
			if typedUnit+string(r) == typedFolded {
				return Assignment{Index: c.index, Key: ""}, true
			}
			break
		}
	}
	return Assignment{}, false
}
