package acekey

import (
	"sort"
	"strings"
)

// candidate is the per-call view of one label. It is rebuilt from the raw
// label list on every engine invocation and never outlives the call.
type candidate struct {
	index  int    // position in the caller's label list
	clean  string // significant runes only, original case
	folded string // lowercased clean form
	unit   string // leftmost unit: "--", a single rune, or ""
	runes  int    // rune count of clean
}

// buildCandidates normalizes the raw labels into candidates. Labels that
// normalize to empty carry no anchor and are dropped from the pool.
func buildCandidates(labels []string) []candidate {
	cands := make([]candidate, 0, len(labels))
	for i, label := range labels {
		clean := cleanString(label)
		if clean == "" {
			continue
		}
		cands = append(cands, candidate{
			index:  i,
			clean:  clean,
			folded: strings.ToLower(clean),
			unit:   leftmostUnit(clean),
			runes:  len([]rune(clean)),
		})
	}
	return cands
}

// cleanString strips every rune that is not significant to matching.
func cleanString(s string) string {
	var b strings.Builder
	for _, r := range s {
		if IsAceRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// leftmostUnit returns the grouping anchor of a clean string: the doubled
// marker when the string starts with two hyphens, otherwise the first rune.
func leftmostUnit(clean string) string {
	if strings.HasPrefix(clean, "--") {
		return "--"
	}
	for _, r := range clean {
		return string(r)
	}
	return ""
}

// collapseLeading reduces a run of repeated leading unit runes to a single
// one, so "-verbose" and "--verbose" compare equal past the marker. Doubled
// and empty units pass through untouched.
func collapseLeading(folded, unit string) string {
	if unit == "--" || unit == "" {
		return folded
	}
	first := []rune(unit)[0]
	runs := 0
	for _, r := range folded {
		if r != first {
			break
		}
		runs++
	}
	if runs <= 1 {
		return folded
	}
	rest := []rune(folded)[runs:]
	return string(first) + string(rest)
}

// matchString is the collapsed folded form used by the allocator and the
// candidate filter. Doubled-marker candidates keep their full form.
func (c candidate) matchString() string {
	unit := strings.ToLower(c.unit)
	if unit != "--" && unit != "" {
		return collapseLeading(c.folded, unit)
	}
	return c.folded
}

// unitMatches reports whether the candidate anchors on typedUnit. A typed
// single marker also claims doubled-marker candidates.
func (c candidate) unitMatches(typedUnit string) bool {
	unit := strings.ToLower(c.unit)
	if typedUnit == "-" {
		return unit == "-" || unit == "--"
	}
	return unit == typedUnit
}

// sortCandidates orders by ascending significant-rune count, ties broken by
// original input order. Every allocation stage services shorter candidates
// first so they receive the most natural disambiguators.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].runes != cands[j].runes {
			return cands[i].runes < cands[j].runes
		}
		return cands[i].index < cands[j].index
	})
}

// filterCandidates keeps candidates anchored on typedUnit whose folded or
// collapsed form starts with the typed buffer. A buffer of exactly one
// marker includes every marker-anchored candidate regardless of prefix.
func filterCandidates(cands []candidate, typedFolded, typedUnit string) []candidate {
	out := make([]candidate, 0, len(cands))
	if typedFolded == "-" {
		for _, c := range cands {
			unit := strings.ToLower(c.unit)
			if unit == "-" || unit == "--" {
				out = append(out, c)
			}
		}
		return out
	}
	for _, c := range cands {
		if strings.ToLower(c.unit) != typedUnit {
			continue
		}
		if strings.HasPrefix(c.folded, typedFolded) || strings.HasPrefix(c.matchString(), typedFolded) {
			out = append(out, c)
		}
	}
	return out
}

// filterExactMatches narrows to candidates whose whole form equals the typed
// buffer, but only when no other candidate still extends past it. Otherwise
// the full set is kept so extensions stay reachable.
func filterExactMatches(cands []candidate, typedFolded string) []candidate {
	if typedFolded == "" {
		return cands
	}
	var exact []candidate
	for _, c := range cands {
		ms := c.matchString()
		if c.folded == typedFolded || (ms == typedFolded && len([]rune(c.folded)) == len([]rune(ms))) {
			exact = append(exact, c)
		}
	}
	if len(exact) == 0 {
		return cands
	}
	for _, c := range cands {
		if c.folded != typedFolded && strings.HasPrefix(c.folded, typedFolded) {
			return cands
		}
	}
	return exact
}
