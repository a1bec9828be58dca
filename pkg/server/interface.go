/*
Package server implements msgpack IPC for ace-key resolution services.

The server package provides a minimal interface for resolving typed buffers
against candidate labels using msgpack serialization over stdin/stdout, so
editors and other frontends can reuse the engine without linking Go.

The protocol uses binary msgpack encoding and supports assignment requests,
completer listing, and health checks. Messages are processed synchronously
with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message
contains an ID field, an op field, and other fields based on the operation.

Assignment requests use mainly this structure:

	{"id": "req_001", "op": "assign", "ls": ["chcpu", "chpasswd", "chsh"], "t": "c"}

The server responds with one key per surviving candidate:

	{"id": "req_001", "a": [{"i": 0, "k": "u"}, {"i": 1, "k": "p"}, {"i": 2, "k": "s"}], "c": 3, "t": 145}

A response with a single empty key means the buffer already selects that
candidate uniquely. A buffer no candidate is consistent with yields an error
message instead:

	{"id": "req_001", "e": "no candidate matches", "c": 404}

Completer listing returns the names known to the running catalog:

	{"id": "cmd_001", "op": "commands"}

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing
latency in per-keystroke round trips where it matters most.
*/
package server

// Request is the envelope every client message decodes into. Op selects the
// handler: "assign", "commands" or "health".
type Request struct {
	ID     string   `msgpack:"id"`
	Op     string   `msgpack:"op"`
	Labels []string `msgpack:"ls,omitempty"`
	Typed  string   `msgpack:"t,omitempty"`
}

// AssignmentPair - one candidate index with its ace key
type AssignmentPair struct {
	Index int    `msgpack:"i"`
	Key   string `msgpack:"k"`
}

// AssignResponse - assignment response
type AssignResponse struct {
	ID          string           `msgpack:"id"`
	Assignments []AssignmentPair `msgpack:"a"`
	Count       int              `msgpack:"c"`
	TimeTaken   int64            `msgpack:"t"`
}

// CommandsResponse - completer listing response
type CommandsResponse struct {
	ID        string   `msgpack:"id"`
	Names     []string `msgpack:"ns"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse - ready signal and health checks
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// AssignError holds basic error information for failed requests
type AssignError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
