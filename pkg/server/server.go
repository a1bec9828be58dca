package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"acesh/pkg/acekey"
	"acesh/pkg/catalog"
	"acesh/pkg/config"
)

// Server handles the IPC for ace-key resolution
type Server struct {
	catalog *catalog.Catalog
	cfg     *config.Config
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
}

// NewServer creates a resolution server using stdin/stdout for IPC
func NewServer(cat *catalog.Catalog, cfg *config.Config) *Server {
	return NewServerWithIO(cat, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over explicit streams, mainly for tests
func NewServerWithIO(cat *catalog.Catalog, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		catalog: cat,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches on the op field
func (s *Server) handleRequest(req Request) {
	switch req.Op {
	case "assign":
		s.handleAssign(req)
	case "commands":
		s.handleCommands(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(AssignError{ID: id, Error: message, Code: code})
}

// handleAssign resolves one typed buffer against the request's labels. It
// validates the request against the configured limits, runs the engine, and
// answers with one key per surviving candidate.
func (s *Server) handleAssign(req Request) {
	if len(req.Labels) == 0 {
		s.sendError(req.ID, "Missing 'ls' parameter", 400)
		log.Debug("Label list is empty in request")
		return
	}
	if max := s.cfg.Engine.MaxLabels; max > 0 && len(req.Labels) > max {
		s.sendError(req.ID, fmt.Sprintf("Label count exceeds maximum of %d", max), 400)
		log.Debugf("Label count %d over limit", len(req.Labels))
		return
	}
	if max := s.cfg.Engine.MaxTyped; max > 0 && len(req.Typed) > max {
		s.sendError(req.ID, fmt.Sprintf("Typed buffer exceeds maximum length of %d", max), 400)
		log.Debug("Typed buffer is too long in request")
		return
	}

	start := time.Now()
	assigns, err := acekey.AssignKeys(req.Labels, req.Typed)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, acekey.ErrNoMatch) {
			s.sendError(req.ID, "no candidate matches", 404)
			return
		}
		s.sendError(req.ID, err.Error(), 500)
		return
	}

	pairs := make([]AssignmentPair, len(assigns))
	for i, a := range assigns {
		pairs[i] = AssignmentPair{Index: a.Index, Key: a.Key}
	}
	s.send(AssignResponse{
		ID:          req.ID,
		Assignments: pairs,
		Count:       len(pairs),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleCommands lists the completers in the running catalog
func (s *Server) handleCommands(req Request) {
	start := time.Now()
	var names []string
	if s.catalog != nil {
		for _, e := range s.catalog.Entries() {
			names = append(names, e.Name)
		}
	}
	s.send(CommandsResponse{
		ID:        req.ID,
		Names:     names,
		Count:     len(names),
		TimeTaken: time.Since(start).Microseconds(),
	})
}
