// Package cli is the debug REPL: it feeds typed buffers through the ace-key
// engine against a fixed label set and prints the resulting assignments.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"acesh/pkg/acekey"
)

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ee00ee")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c8c8c8"))
	hitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00eeee")).Bold(true)
)

// InputHandler drives one REPL session over a fixed label set. Every line
// read from stdin is treated as the full typed buffer for that round, so the
// session mirrors the stateless per-keystroke contract of the engine.
type InputHandler struct {
	labels       []string
	maxTyped     int
	requestCount int
}

// NewInputHandler returns a handler over labels. maxTyped bounds the accepted
// buffer length; zero means no bound.
func NewInputHandler(labels []string, maxTyped int) *InputHandler {
	return &InputHandler{
		labels:   labels,
		maxTyped: maxTyped,
	}
}

// Start begins the interface loop.
// It prints the label set once, then continuously prompts for a buffer,
// reads a line from stdin, and passes the trimmed input to handleInput().
// Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("acesh engine REPL")
	log.Printf("labels: %s", strings.Join(h.labels, ", "))
	log.Print("type a buffer and press Enter to see key assignments (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		typed, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		typed = strings.TrimSpace(typed)
		h.handleInput(typed)
	}
}

// handleInput resolves a single buffer against the label set and prints one
// line per surviving candidate: index, decorated key, label.
func (h *InputHandler) handleInput(typed string) {
	h.requestCount++

	if h.maxTyped > 0 && len(typed) > h.maxTyped {
		log.Errorf("Buffer too long: %s", typed)
		return
	}

	start := time.Now()
	assignments, err := acekey.AssignKeys(h.labels, typed)
	elapsed := time.Since(start)

	log.Debugf("Took [ %v ] for buffer '%s'", elapsed, typed)

	if err != nil {
		log.Warnf("No candidates for buffer '%s'", typed)
		return
	}

	if len(assignments) == 1 && assignments[0].Key == "" {
		idx := assignments[0].Index
		log.Printf("Unique selection: %s", hitStyle.Render(h.labels[idx]))
		return
	}

	log.Printf("%d candidates for buffer '%s':", len(assignments), typed)
	for _, a := range assignments {
		key := a.Key
		if key == "" {
			key = "·"
		}
		line := fmt.Sprintf("%2d. %-4s %s", a.Index+1, keyStyle.Render(key), labelStyle.Render(h.labels[a.Index]))
		log.Print(line)
	}
}
