package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"acesh/pkg/catalog"
	"acesh/pkg/config"
)

// runRequests feeds encoded requests to a server over in-memory buffers and
// returns a decoder positioned after the ready signal.
func runRequests(t *testing.T, cat *catalog.Catalog, cfg *config.Config, reqs ...Request) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	srv := NewServerWithIO(cat, cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decode ready signal: %v", err)
	}
	if ready.Status != "ready" {
		t.Fatalf("ready status = %q", ready.Status)
	}
	return dec
}

func TestAssignRoundTrip(t *testing.T) {
	dec := runRequests(t, nil, nil, Request{
		ID:     "req_001",
		Op:     "assign",
		Labels: []string{"chcpu", "chpasswd", "chsh"},
		Typed:  "c",
	})

	var resp AssignResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "req_001" {
		t.Errorf("response ID = %q", resp.ID)
	}
	if resp.Count != 3 || len(resp.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %+v", resp)
	}
	seen := make(map[string]bool)
	for _, a := range resp.Assignments {
		if a.Key == "" || seen[a.Key] {
			t.Errorf("bad key set: %+v", resp.Assignments)
		}
		seen[a.Key] = true
	}
}

func TestAssignNoMatch(t *testing.T) {
	dec := runRequests(t, nil, nil, Request{
		ID:     "req_002",
		Op:     "assign",
		Labels: []string{"alpha", "beta"},
		Typed:  "z",
	})

	var errResp AssignError
	if err := dec.Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.ID != "req_002" || errResp.Code != 404 {
		t.Errorf("unexpected error response: %+v", errResp)
	}
}

func TestAssignValidation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.MaxLabels = 2
	cfg.Engine.MaxTyped = 4

	dec := runRequests(t, nil, cfg,
		Request{ID: "a", Op: "assign"},
		Request{ID: "b", Op: "assign", Labels: []string{"x", "y", "z"}},
		Request{ID: "c", Op: "assign", Labels: []string{"x"}, Typed: strings.Repeat("x", 5)},
	)

	for _, want := range []string{"a", "b", "c"} {
		var errResp AssignError
		if err := dec.Decode(&errResp); err != nil {
			t.Fatalf("decode %s: %v", want, err)
		}
		if errResp.ID != want || errResp.Code != 400 {
			t.Errorf("expected 400 for %s, got %+v", want, errResp)
		}
	}
}

func TestCommandsOp(t *testing.T) {
	cat := catalog.FromEntries([]catalog.Entry{
		{Name: "git"},
		{Name: "ls"},
	})
	dec := runRequests(t, cat, nil, Request{ID: "cmd_001", Op: "commands"})

	var resp CommandsResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || resp.Names[0] != "git" || resp.Names[1] != "ls" {
		t.Errorf("unexpected listing: %+v", resp)
	}
}

func TestUnknownOpAndHealth(t *testing.T) {
	dec := runRequests(t, nil, nil,
		Request{ID: "h", Op: "health"},
		Request{ID: "x", Op: "bogus"},
	)

	var ok StatusResponse
	if err := dec.Decode(&ok); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if ok.Status != "ok" || ok.ID != "h" {
		t.Errorf("health response: %+v", ok)
	}

	var errResp AssignError
	if err := dec.Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != 400 || !strings.Contains(errResp.Error, "bogus") {
		t.Errorf("unknown op response: %+v", errResp)
	}
}
