package catalog

import (
	"testing"

	"acesh/pkg/cmdline"
)

func TestAddAndGetCaseInsensitive(t *testing.T) {
	c := New()
	c.Add(Entry{Name: "Git", Short: "the stupid content tracker"})

	e, ok := c.Get("git")
	if !ok {
		t.Fatal("expected case-insensitive lookup to hit")
	}
	if e.Name != "Git" {
		t.Errorf("entry name = %q, want original casing preserved", e.Name)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// replacing does not duplicate
	c.Add(Entry{Name: "git", Short: "updated"})
	if c.Len() != 1 {
		t.Errorf("Len() after replace = %d, want 1", c.Len())
	}
	if e, _ := c.Get("GIT"); e.Short != "updated" {
		t.Errorf("replace did not take: %+v", e)
	}
}

func TestWithPrefix(t *testing.T) {
	c := FromEntries([]Entry{
		{Name: "lsblk"},
		{Name: "ls"},
		{Name: "lsof"},
		{Name: "grep"},
	})

	var got []string
	c.WithPrefix("ls", func(e Entry) bool {
		got = append(got, e.Name)
		return true
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 ls-prefixed entries, got %v", got)
	}
	for _, name := range got {
		if name == "grep" {
			t.Errorf("non-matching entry visited: %v", got)
		}
	}
}

func TestWithPrefixEarlyStop(t *testing.T) {
	c := FromEntries([]Entry{
		{Name: "chcpu"},
		{Name: "chpasswd"},
		{Name: "chsh"},
	})

	count := 0
	c.WithPrefix("ch", func(e Entry) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("visit after stop: counted %d, want 2", count)
	}
}

func TestEntriesInsertionOrder(t *testing.T) {
	c := FromEntries([]Entry{
		{Name: "zsh"},
		{Name: "awk"},
		{Name: "make"},
	})
	got := c.Entries()
	want := []string{"zsh", "awk", "make"}
	if len(got) != len(want) {
		t.Fatalf("Entries() = %+v, want %d entries", got, len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestSortEntriesLengthThenLex(t *testing.T) {
	entries := []Entry{
		{Name: "grep"},
		{Name: "ls"},
		{Name: "gcc"},
		{Name: "git"},
	}
	SortEntries(entries)
	want := []string{"ls", "gcc", "git", "grep"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("order %+v, want %v", entries, want)
		}
	}
}

func TestFlagForms(t *testing.T) {
	both := cmdline.FlagDef{Longhand: "all", Shorthand: "a"}
	got := FlagForms(both)
	if len(got) != 2 || got[0] != "--all" || got[1] != "-a" {
		t.Errorf("FlagForms(both) = %v", got)
	}

	longOnly := cmdline.FlagDef{Longhand: "no-pager"}
	if got := FlagForms(longOnly); len(got) != 1 || got[0] != "--no-pager" {
		t.Errorf("FlagForms(long) = %v", got)
	}

	shortOnly := cmdline.FlagDef{Shorthand: "v"}
	if got := FlagForms(shortOnly); len(got) != 1 || got[0] != "-v" {
		t.Errorf("FlagForms(short) = %v", got)
	}
}

func TestSubcommandForms(t *testing.T) {
	def := cmdline.CommandDef{Name: "checkout", Aliases: []string{"co", ""}}
	got := SubcommandForms(def)
	if len(got) != 2 || got[0] != "checkout" || got[1] != "co" {
		t.Errorf("SubcommandForms = %v", got)
	}
}
