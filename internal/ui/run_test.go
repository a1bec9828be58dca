package ui

import (
	"testing"

	"acesh/pkg/cmdline"
)

func gitSource() *stubSource {
	commit := cmdline.CommandDef{
		Name:    "commit",
		Aliases: []string{"ci"},
		Flags: []cmdline.FlagDef{
			{Longhand: "message", Shorthand: "m", RequiresValue: true},
		},
	}
	def := &cmdline.CommandDef{
		Name: "git",
		Flags: []cmdline.FlagDef{
			{Longhand: "verbose", Shorthand: "v"},
		},
		Subcommands: []cmdline.CommandDef{commit},
	}
	return &stubSource{defs: map[string]*cmdline.CommandDef{"git": def}}
}

func TestRunArgsComposesPreview(t *testing.T) {
	src := gitSource()
	got, err := RunArgs(src, nil, []string{"git", "--verbose", "commit", "-m", "fix", "main.go"})
	if err != nil {
		t.Fatal(err)
	}
	want := "git --verbose commit -m fix main.go"
	if got != want {
		t.Errorf("preview = %q, want %q", got, want)
	}
}

func TestRunArgsResolvesAliases(t *testing.T) {
	src := gitSource()
	got, err := RunArgs(src, nil, []string{"git", "ci"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "git commit" {
		t.Errorf("preview = %q", got)
	}
}

func TestRunArgsUnknownTokensBecomePositionals(t *testing.T) {
	src := gitSource()
	got, err := RunArgs(src, nil, []string{"git", "--unknown", "path/to/file"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "git --unknown path/to/file" {
		t.Errorf("preview = %q", got)
	}
}

func TestRunArgsUnknownRootFails(t *testing.T) {
	src := gitSource()
	if _, err := RunArgs(src, nil, []string{"nope"}); err == nil {
		t.Fatal("expected error for unexported root")
	}
}

func TestRunArgsEmptyArgs(t *testing.T) {
	src := gitSource()
	got, err := RunArgs(src, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("preview = %q, want empty", got)
	}
}
