/*
Package main implements the acesh interactive completion shell.

acesh composes a command line one keystroke at a time. It discovers command
metadata through carapace, shows the current command's flags and subcommands
in a full-screen list, and resolves every keystroke through a stateless
ace-key engine so each list entry is reachable by a short highlighted key.
Pressing Enter executes the composed line through $SHELL.

# Usage

Run the interactive screen:

	acesh

Compose non-interactively and print the resulting command line:

	acesh git commit -m "fix"

Start the MessagePack IPC server for editor integration:

	acesh -serve

Drive the engine REPL against a fixed label set:

	acesh -c -labels "serve,setup,status"

Emit the shell hook that wires acesh into tab completion:

	acesh -hook bash > ~/.acesh_hook.sh
	source ~/.acesh_hook.sh

# Configuration

Runtime configuration lives in a TOML file, created with defaults when
missing:

	[ui]
	reserved_lines = 4
	show_descriptions = true
	page_rows = 10

	[engine]
	max_labels = 1024
	max_typed = 64

	[carapace]
	binary = "carapace"
	root = ""

The file is resolved from -config, then ~/.config/acesh/, then the directory
of the executable.

# IPC Protocol

Server mode speaks MessagePack over stdin/stdout. An assignment request
carries the candidate labels and the typed buffer:

	{"id": "r1", "op": "assign", "ls": ["serve", "setup"], "t": "s"}

and the response pairs each surviving candidate with its ace key:

	{"id": "r1", "a": [{"i": 0, "k": "r"}, {"i": 1, "k": "t"}], "c": 2, "t": 120}

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-q  Quiet mode, errors only
	-config string
	    Path to the TOML config file
	-serve
	    Run the MessagePack IPC server instead of the TUI
	-c  Run the engine REPL -- useful for testing and debugging
	-labels string
	    Comma-separated label set for the REPL, or for -serve without carapace
	-cmd string
	    Start the interactive screen at this root command
	-bin string
	    Carapace binary to use for discovery
	-hook string
	    Print the completion hook for a shell (bash, zsh, fish, nushell;
	    "auto" detects from $SHELL)
	-exe string
	    Executable string to embed in the hook
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"acesh/internal/carapace"
	"acesh/internal/cli"
	"acesh/internal/logger"
	"acesh/internal/shellhook"
	"acesh/internal/ui"
	"acesh/pkg/catalog"
	"acesh/pkg/config"
	"acesh/pkg/server"
)

const (
	Version = "0.3.0-beta"
	AppName = "acesh"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags to the mode implementations in the other packages; it
// carries no completion logic itself.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	quietMode := flag.Bool("q", false, "Quiet mode, errors only")
	configPath := flag.String("config", "", "Path to the TOML config file")
	serveMode := flag.Bool("serve", false, "Run the MessagePack IPC server")
	replMode := flag.Bool("c", false, "Run the engine REPL -- useful for testing and debugging")
	fixedLabels := flag.String("labels", "", "Comma-separated label set for the REPL, or for -serve without carapace")
	cmdRoot := flag.String("cmd", "", "Start the interactive screen at this root command")
	binOverride := flag.String("bin", "", "Carapace binary to use for discovery")
	hookShell := flag.String("hook", "", "Print the completion hook for a shell ('auto' detects from $SHELL)")
	hookExec := flag.String("exe", "", "Executable string to embed in the hook")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *hookShell != "" {
		shell := *hookShell
		if shell == "auto" {
			shell = shellhook.DetectShell()
		}
		execCmd := *hookExec
		if execCmd == "" {
			execCmd = filepath.Base(os.Args[0])
		}
		fmt.Print(shellhook.Script(shell, execCmd))
		return
	}

	logger.SetupGlobal(*debugMode, *quietMode)

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activePath)

	labels := splitLabels(*fixedLabels)

	if *replMode {
		if len(labels) == 0 {
			log.Fatal("REPL mode needs -labels, e.g. -labels \"serve,setup,status\"")
		}
		handler := cli.NewInputHandler(labels, cfg.Engine.MaxTyped)
		if err := handler.Start(); err != nil {
			log.Fatalf("REPL error: %v", err)
		}
		return
	}

	// A fixed label set serves the engine without carapace installed.
	if *serveMode && len(labels) > 0 {
		log.Debug("spawning IPC over fixed labels")
		fixed := make([]catalog.Entry, 0, len(labels))
		for _, l := range labels {
			fixed = append(fixed, catalog.Entry{Name: l})
		}
		srv := server.NewServer(catalog.FromEntries(fixed), cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	binary := cfg.Carapace.Binary
	if *binOverride != "" {
		binary = *binOverride
	}
	client := carapace.NewClient(binary)
	if !client.Available() {
		log.Fatalf("carapace binary %q not found in PATH", binary)
	}

	entries, err := client.ListEntries()
	if err != nil {
		log.Fatalf("carapace --list failed: %v", err)
	}
	log.Debugf("Discovered %d commands", len(entries))

	if *serveMode {
		log.Debug("spawning IPC")
		srv := server.NewServer(catalog.FromEntries(entries), cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	args := flag.Args()
	if *cmdRoot == "" && len(args) == 0 && cfg.Carapace.Root != "" {
		*cmdRoot = cfg.Carapace.Root
	}
	if *cmdRoot == "" && len(args) > 0 {
		preview, err := ui.RunArgs(client, entries, args)
		if err != nil {
			log.Error(err)
			os.Exit(2)
		}
		if preview != "" {
			fmt.Println(preview)
		}
		return
	}

	var model ui.Model
	if *cmdRoot != "" {
		preloaded, err := ui.BuildFromArgs(client, entries, append([]string{*cmdRoot}, args...))
		if err != nil {
			log.Fatalf("Failed to load %s: %v", *cmdRoot, err)
		}
		model = *preloaded
	} else {
		model = ui.NewModel(entries, client)
	}
	model.Configure(cfg.UI.PageRows, cfg.UI.ReservedLines, cfg.UI.ShowDescriptions)

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		log.Fatalf("program error: %v", err)
	}

	if m, ok := final.(ui.Model); ok && m.ExitPreview != "" {
		runInShell(m.ExitPreview)
	}
}

// runInShell executes the composed line through $SHELL with inherited stdio
// and propagates its exit code.
func runInShell(line string) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell, "-c", line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "failed to execute command: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func splitLabels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Printf("[ %s ] interactive command completion shell", AppName)
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
}
