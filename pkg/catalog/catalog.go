/*
Package catalog is the label source for the shell: a registry of discovered
commands indexed by a Patricia trie for prefix retrieval, plus the
flatteners that turn command metadata into the plain label lists the ace-key
engine consumes.

The engine itself knows nothing about commands or flags; the catalog owns
that mapping so the UI and the IPC server can share it.
*/
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"acesh/pkg/cmdline"
)

// Entry is one discovered top-level command.
type Entry struct {
	Name  string
	Short string
}

// Catalog indexes command entries by folded name.
type Catalog struct {
	trie  *patricia.Trie
	names []string // insertion order
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{trie: patricia.NewTrie()}
}

// FromEntries builds a catalog from discovery output.
func FromEntries(entries []Entry) *Catalog {
	c := New()
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Add inserts or replaces an entry.
func (c *Catalog) Add(e Entry) {
	key := patricia.Prefix(strings.ToLower(e.Name))
	if c.trie.Get(key) == nil {
		c.names = append(c.names, e.Name)
	}
	c.trie.Set(key, e)
}

// Len reports how many commands are registered.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Get looks an entry up by name, case-insensitively.
func (c *Catalog) Get(name string) (Entry, bool) {
	item := c.trie.Get(patricia.Prefix(strings.ToLower(name)))
	if item == nil {
		return Entry{}, false
	}
	return item.(Entry), true
}

// errStopVisit aborts a trie walk early; it never escapes WithPrefix.
var errStopVisit = errors.New("catalog: stop visit")

// WithPrefix visits entries whose folded name starts with prefix, in trie
// order. The walk stops when visit returns false.
func (c *Catalog) WithPrefix(prefix string, visit func(Entry) bool) {
	_ = c.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, item patricia.Item) error {
		if !visit(item.(Entry)) {
			return errStopVisit
		}
		return nil
	})
}

// Entries returns all entries in insertion order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.names))
	for _, name := range c.names {
		if e, ok := c.Get(name); ok {
			out = append(out, e)
		}
	}
	return out
}

// SortEntries orders entries by ascending name length, ties broken
// lexicographically, so the list mirrors the engine's shortest-first
// servicing and short commands surface on the first page.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].Name) != len(entries[j].Name) {
			return len(entries[i].Name) < len(entries[j].Name)
		}
		return entries[i].Name < entries[j].Name
	})
}

// FlagForms flattens a flag definition into the forms the engine matches:
// the doubled-marker longhand first, then the single-marker shorthand.
func FlagForms(f cmdline.FlagDef) []string {
	var forms []string
	if f.Longhand != "" {
		forms = append(forms, "--"+f.Longhand)
	}
	if f.Shorthand != "" {
		forms = append(forms, "-"+f.Shorthand)
	}
	return forms
}

// SubcommandForms flattens a subcommand into its name plus aliases.
func SubcommandForms(d cmdline.CommandDef) []string {
	forms := []string{d.Name}
	for _, a := range d.Aliases {
		if a != "" {
			forms = append(forms, a)
		}
	}
	return forms
}
