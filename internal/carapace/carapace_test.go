package carapace

import (
	"encoding/json"
	"testing"
)

const gitFixture = `{
	"Name": "git",
	"Short": "the stupid content tracker",
	"LocalFlags": [
		{"Longhand": "version", "Shorthand": "v", "Usage": "print version", "Type": "bool"},
		{"Longhand": "git-dir", "Usage": "set the path to the repository", "Type": "string"}
	],
	"Commands": [
		{
			"Name": "checkout",
			"Short": "switch branches",
			"Aliases": ["co"],
			"LocalFlags": [
				{"Shorthand": "b", "Usage": "create a new branch", "Type": "string"}
			]
		},
		{"Name": "status", "Short": "show the working tree status"}
	]
}`

func TestMapCommand(t *testing.T) {
	var raw exportCommand
	if err := json.Unmarshal([]byte(gitFixture), &raw); err != nil {
		t.Fatalf("fixture decode: %v", err)
	}
	def := mapCommand(raw)

	if def.Name != "git" || def.Short != "the stupid content tracker" {
		t.Errorf("root fields wrong: %+v", def)
	}
	if len(def.Flags) != 2 {
		t.Fatalf("expected 2 flags, got %+v", def.Flags)
	}
	if def.Flags[0].RequiresValue {
		t.Error("bool flag must not require a value")
	}
	if !def.Flags[1].RequiresValue {
		t.Error("string flag must require a value")
	}
	if def.Flags[1].Longhand != "git-dir" || def.Flags[1].Shorthand != "" {
		t.Errorf("long-only flag wrong: %+v", def.Flags[1])
	}

	if len(def.Subcommands) != 2 {
		t.Fatalf("expected 2 subcommands, got %+v", def.Subcommands)
	}
	co, ok := def.FindSubcommand("co")
	if !ok || co.Name != "checkout" {
		t.Fatalf("alias lookup: %+v %v", co, ok)
	}
	if len(co.Flags) != 1 || co.Flags[0].Shorthand != "b" || !co.Flags[0].RequiresValue {
		t.Errorf("nested flag wrong: %+v", co.Flags)
	}
}

func TestMapCommandMissingType(t *testing.T) {
	var raw exportCommand
	if err := json.Unmarshal([]byte(`{"Name":"x","LocalFlags":[{"Longhand":"quiet"}]}`), &raw); err != nil {
		t.Fatal(err)
	}
	def := mapCommand(raw)
	if def.Flags[0].RequiresValue {
		t.Error("flag without Type must default to bool semantics")
	}
}

func TestNewClientDefaultBinary(t *testing.T) {
	if c := NewClient(""); c.binary != DefaultBinary {
		t.Errorf("binary = %q, want %q", c.binary, DefaultBinary)
	}
	if c := NewClient("/opt/carapace"); c.binary != "/opt/carapace" {
		t.Errorf("binary = %q", c.binary)
	}
}

func TestExportRejectsEmptyName(t *testing.T) {
	if _, err := NewClient("").Export("  "); err == nil {
		t.Error("expected error for empty command name")
	}
}
