package ui

import "testing"

func TestCollectCandidateRunes(t *testing.T) {
	runes, pos := collectCandidateRunes("--long")
	if string(runes) != "--long" {
		t.Errorf("runes = %q", string(runes))
	}
	if len(pos) != 6 || pos[0] != 0 || pos[5] != 5 {
		t.Errorf("positions = %v", pos)
	}

	runes, pos = collectCandidateRunes("a b.c")
	if string(runes) != "abc" {
		t.Errorf("runes = %q", string(runes))
	}
	if len(pos) != 3 || pos[1] != 2 || pos[2] != 4 {
		t.Errorf("positions = %v", pos)
	}
}

func TestLeadingHyphenCount(t *testing.T) {
	cases := map[string]int{"": 0, "abc": 0, "-s": 1, "--long": 2, "---": 3}
	for in, want := range cases {
		if got := leadingHyphenCount(in); got != want {
			t.Errorf("leadingHyphenCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestDecorateFormPreservesText(t *testing.T) {
	cases := []struct{ form, typed, seq string }{
		{"serve", "", "s"},
		{"serve", "s", "r"},
		{"--message", "-", "m"},
		{"--message", "-m", ""},
		{"wc", "w", "w"},
		{"banana", "b", "n"}, // repeated runes resolve left to right
		{"cmd", "", ""},
		{"--long, -s", "", "-"},
	}
	for _, c := range cases {
		got := stripANSI(decorateForm(c.form, c.typed, c.seq))
		if got != c.form {
			t.Errorf("decorateForm(%q, %q, %q) text = %q", c.form, c.typed, c.seq, got)
		}
	}
}

func TestDecorateFormUnlocatableSequenceStaysPlain(t *testing.T) {
	// assigned sequence not present in the form must not panic or drop runes
	got := stripANSI(decorateForm("serve", "s", "zz"))
	if got != "serve" {
		t.Errorf("got %q", got)
	}
}

func TestFoldEqual(t *testing.T) {
	if !foldEqual('A', 'a') || !foldEqual('z', 'Z') {
		t.Error("case folding must match")
	}
	if foldEqual('a', 'b') {
		t.Error("distinct runes must not match")
	}
}
