package acekey

import "strings"

// narrowResult reports how token narrowing ended: a unique selection, a
// narrowed-but-ambiguous subset, or no token consumed at all.
type narrowResult struct {
	selected *Assignment
	narrowed []candidate
	consumed bool
}

// narrowByTokens treats each rune typed past the left unit as a selection of
// a previously shown disambiguator rather than a literal substring. The
// first token is matched against the snapshot allocation over the full base
// set (what was on screen before the token was typed) and every later
// token against a fresh allocation over the progressively narrowed set.
func narrowByTokens(base []candidate, tokens []rune, snapshot []Assignment, typedUnit string, total int) narrowResult {
	res := narrowResult{narrowed: base}

	for i, token := range tokens {
		if len(res.narrowed) <= 1 {
			break
		}
		var assigns []Assignment
		if i == 0 {
			assigns = snapshot
		} else {
			assigns = allocateFiltered(res.narrowed, typedUnit, total)
		}

		tok := string(token)
		matching := make(map[int]bool)
		for _, a := range assigns {
			if strings.ToLower(a.Key) == tok {
				matching[a.Index] = true
			}
		}

		if len(matching) == 0 {
			// Token names no shown key in this round; abandon narrowing and
			// let the standard filter path decide.
			break
		}
		res.consumed = true

		if len(matching) == 1 {
			for idx := range matching {
				res.selected = &Assignment{Index: idx, Key: ""}
			}
			return res
		}

		kept := res.narrowed[:0:0]
		for _, c := range res.narrowed {
			if matching[c.index] {
				kept = append(kept, c)
			}
		}
		res.narrowed = kept
	}
	return res
}
