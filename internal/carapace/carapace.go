/*
Package carapace shells out to the carapace binary to discover the commands
the user can compose and their full flag/subcommand metadata.

Two calls cover the lifecycle: List at startup to learn which completers are
both registered and actually installed on PATH, and Export on demand when a
command is first selected, decoding carapace's JSON spec into cmdline
definitions. Export output is stable per binary version, so callers are
expected to cache it.
*/
package carapace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"acesh/pkg/catalog"
	"acesh/pkg/cmdline"
)

// DefaultBinary is used when no binary is configured.
const DefaultBinary = "carapace"

// Client runs carapace subcommands.
type Client struct {
	binary string
}

// NewClient returns a client for the given binary, falling back to
// DefaultBinary when empty.
func NewClient(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{binary: binary}
}

// Available reports whether the carapace binary can be found on PATH.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

func (c *Client) run(args ...string) ([]byte, error) {
	cmd := exec.Command(c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %s: %w", c.binary, strings.Join(args, " "), msg, err)
		}
		return nil, fmt.Errorf("%s %s: %w", c.binary, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// List returns the names of completers that are registered with carapace and
// resolvable on PATH, in carapace's output order.
func (c *Client) List() ([]string, error) {
	entries, err := c.ListEntries()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// ListEntries is List with the one-line description carapace prints after
// each name. Completers whose binary is not installed are dropped.
func (c *Client) ListEntries() ([]catalog.Entry, error) {
	out, err := c.run("--list")
	if err != nil {
		return nil, err
	}
	var entries []catalog.Entry
	skipped := 0
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		name := fields[0]
		if _, err := exec.LookPath(name); err != nil {
			skipped++
			continue
		}
		short := strings.TrimSpace(strings.TrimPrefix(line, name))
		entries = append(entries, catalog.Entry{Name: name, Short: short})
	}
	log.Debugf("carapace list: %d completers usable, %d not on PATH", len(entries), skipped)
	return entries, nil
}

// exportFlag and exportCommand mirror the JSON layout of `carapace <cmd>
// export`. Field names match the payload; unknown fields are ignored.
type exportFlag struct {
	Longhand  string `json:"Longhand"`
	Shorthand string `json:"Shorthand"`
	Usage     string `json:"Usage"`
	Type      string `json:"Type"`
}

type exportCommand struct {
	Name       string          `json:"Name"`
	Short      string          `json:"Short"`
	Aliases    []string        `json:"Aliases"`
	LocalFlags []exportFlag    `json:"LocalFlags"`
	Commands   []exportCommand `json:"Commands"`
}

// Export fetches and decodes the full command spec for name.
func (c *Client) Export(name string) (*cmdline.CommandDef, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("carapace export: empty command name")
	}
	out, err := c.run(name, "export")
	if err != nil {
		return nil, err
	}
	var raw exportCommand
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("carapace export %s: decode: %w", name, err)
	}
	def := mapCommand(raw)
	return &def, nil
}

func mapCommand(raw exportCommand) cmdline.CommandDef {
	def := cmdline.CommandDef{
		Name:    raw.Name,
		Short:   raw.Short,
		Aliases: raw.Aliases,
	}
	for _, f := range raw.LocalFlags {
		def.Flags = append(def.Flags, cmdline.FlagDef{
			Longhand:      f.Longhand,
			Shorthand:     f.Shorthand,
			Usage:         f.Usage,
			RequiresValue: f.Type != "" && f.Type != "bool",
		})
	}
	for _, sub := range raw.Commands {
		def.Subcommands = append(def.Subcommands, mapCommand(sub))
	}
	return def
}
