package ui

import (
	"fmt"

	"acesh/pkg/catalog"
	"acesh/pkg/cmdline"
)

// BuildFromArgs constructs a model preloaded with a parsed command line, the
// way the interactive screen would look after the user composed it by hand.
// args[0] is the root command; later tokens are matched as flags (consuming a
// value token when the flag takes one), subcommands by name or alias, or
// positionals.
func BuildFromArgs(source Source, entries []catalog.Entry, args []string) (*Model, error) {
	m := NewModel(entries, source)
	if len(args) == 0 {
		return &m, nil
	}

	def, err := source.Export(args[0])
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", args[0], err)
	}
	m.applyLoadedCommand(def)

	for i := 1; i < len(args); i++ {
		tok := args[i]

		if len(tok) > 0 && tok[0] == '-' {
			if fd, form, ok := matchFlagForm(m.current, tok); ok {
				value := ""
				if fd.RequiresValue && i+1 < len(args) && (args[i+1] == "" || args[i+1][0] != '-') {
					value = args[i+1]
					i++
				}
				m.seg.AddFlag(form, value)
				continue
			}
			m.seg.AddPositional(tok)
			continue
		}

		if sub, ok := m.current.FindSubcommand(tok); ok {
			m.seg.PushSubcommand(sub.Name)
			m.current = sub
			m.buildItemsFromCommand(sub)
			continue
		}
		m.seg.AddPositional(tok)
	}
	return &m, nil
}

// RunArgs resolves args non-interactively and returns the command line the
// interactive preview would show for them.
func RunArgs(source Source, entries []catalog.Entry, args []string) (string, error) {
	m, err := BuildFromArgs(source, entries, args)
	if err != nil {
		return "", err
	}
	return m.Preview(), nil
}

func matchFlagForm(def *cmdline.CommandDef, tok string) (*cmdline.FlagDef, string, bool) {
	if def == nil {
		return nil, "", false
	}
	for i := range def.Flags {
		f := &def.Flags[i]
		for _, form := range catalog.FlagForms(*f) {
			if form == tok {
				return f, form, true
			}
		}
	}
	return nil, "", false
}
