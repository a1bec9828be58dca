/*
Package acekey implements the incremental ambiguity-resolution engine behind
acesh: given a list of candidate labels and the buffer the user has typed so
far, it decides which candidates survive and assigns each one a short unique
"ace key", normally a single rune, such that typing that rune selects the
candidate deterministically.

The engine is a pure function. Every call rebuilds its candidate tables from
scratch, so stale state from earlier keystrokes can never leak into a later
round; callers re-supply the full typed buffer on every keystroke. It is safe
to call concurrently and never mutates the label list it is given.

Resolution runs fast paths before the allocator: a base full-key match (the
typed buffer already names a unique key), a whole-label match, and case-exact
prefix precedence. When the buffer is the left unit plus extra runes, the
extra runes are consumed as narrowing tokens against previously shown keys.
Whatever ambiguity remains goes through the multi-pass allocator, which
guarantees every surviving candidate an answer.

Only ACE runes (alphanumerics and the hyphen) are significant; everything
else in a label is ignored for matching and key assignment.
*/
package acekey

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoMatch is returned when the typed buffer is inconsistent with every
// candidate. Callers should leave their own state untouched and surface
// "no candidates" rather than treat it as fatal.
var ErrNoMatch = errors.New("acekey: typed buffer matches no candidate")

// Assignment pairs a candidate (by its index in the caller's label list)
// with its ace key. An empty Key means the typed buffer already selects the
// candidate uniquely with no further input needed.
type Assignment struct {
	Index int
	Key   string
}

// IsAceRune reports whether r participates in matching: alphanumeric runes
// and the hyphen.
func IsAceRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

// IsSingleAceRune reports whether s is exactly one ACE rune.
func IsSingleAceRune(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && IsAceRune(runes[0])
}

// InitialKeys returns the hint keys shown before anything is typed: each
// label's left unit, with doubled markers normalized to a single one so
// long-form flags advertise "-". Labels that normalize to empty are skipped.
// Results are ordered by label index.
func InitialKeys(labels []string) []Assignment {
	out := make([]Assignment, 0, len(labels))
	for i, label := range labels {
		clean := cleanString(label)
		if clean == "" {
			continue
		}
		unit := leftmostUnit(clean)
		if unit == "--" {
			unit = "-"
		}
		out = append(out, Assignment{Index: i, Key: unit})
	}
	return out
}

// AssignKeys resolves the typed buffer against the labels. It returns one
// assignment per surviving candidate, ordered by label index; a single
// assignment with an empty Key means that candidate is the unique answer.
// ErrNoMatch is returned when nothing is consistent with the buffer.
func AssignKeys(labels []string, typed string) ([]Assignment, error) {
	cands := buildCandidates(labels)
	typedClean := cleanString(typed)
	typedFolded := strings.ToLower(typedClean)
	typedUnit := leftmostUnit(typedFolded)

	if typedFolded == "" {
		return InitialKeys(labels), nil
	}

	unitLen := len([]rune(typedUnit))
	typedLen := len([]rune(typedFolded))
	hasTokens := typedUnit != "" && strings.HasPrefix(typedFolded, typedUnit) && typedLen > unitLen

	// When the buffer carries narrowing tokens the iterative path below must
	// run first; resolving here would preempt a chain mid-selection.
	if !hasTokens {
		if a, ok := baseFullKeyMatch(cands, typedUnit, typedClean, typedFolded); ok {
			return []Assignment{a}, nil
		}
	}

	// Whole-label match, unless the buffer is a left unit shared by several
	// candidates; then the round is still ambiguous.
	for _, c := range cands {
		if c.clean != typedClean {
			continue
		}
		if typedFolded == typedUnit && countUnit(cands, typedUnit) > 1 {
			break
		}
		return []Assignment{{Index: c.index, Key: ""}}, nil
	}

	if a, ok := exactCasePrecedence(cands, typedClean); ok {
		return []Assignment{a}, nil
	}

	var filtered []candidate
	usedNarrowing := false
	if hasTokens {
		var base []candidate
		for _, c := range cands {
			if c.unitMatches(typedUnit) {
				base = append(base, c)
			}
		}
		if len(base) > 0 {
			tokens := []rune(typedFolded)[unitLen:]
			snapshot := allocateFiltered(base, typedUnit, len(labels))
			res := narrowByTokens(base, tokens, snapshot, typedUnit, len(labels))
			if res.selected != nil {
				return []Assignment{*res.selected}, nil
			}
			if res.consumed {
				filtered = res.narrowed
				usedNarrowing = true
			}
		}
	}
	if !usedNarrowing {
		filtered = filterCandidates(cands, typedFolded, typedUnit)
	}

	if len(filtered) == 0 {
		if a, ok := baseTypedSelection(cands, typedFolded, typedUnit); ok {
			return []Assignment{a}, nil
		}
		return nil, ErrNoMatch
	}

	if a, ok := exactCasePrecedence(filtered, typedClean); ok {
		return []Assignment{a}, nil
	}

	// Buffer is exactly the shared left unit: allocate over the whole group.
	if typedFolded == typedUnit && len(filtered) > 1 {
		return allocateFiltered(filtered, typedFolded, len(labels)), nil
	}

	filtered = filterExactMatches(filtered, typedFolded)
	if len(filtered) == 1 {
		return []Assignment{{Index: filtered[0].index, Key: ""}}, nil
	}

	if usedNarrowing {
		return allocateFiltered(filtered, typedUnit, len(labels)), nil
	}
	return allocate(filtered, typedFolded, len(labels)), nil
}

func countUnit(cands []candidate, unit string) int {
	n := 0
	for _, c := range cands {
		if strings.ToLower(c.unit) == unit {
			n++
		}
	}
	return n
}
