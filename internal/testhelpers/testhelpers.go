// Package testhelpers provides an in-process fake of the Odoo JSON-RPC
// endpoint so client and service tests run against real HTTP plumbing.
package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// OdooCall is one decoded remote-procedure invocation.
type OdooCall struct {
	Service string
	Model   string
	Method  string
	Args    []any
	Kwargs  map[string]any
}

// OdooHandler produces the result payload for one call. A returned error is
// sent back in the JSON-RPC error envelope with the message nested under
// data.message, matching the real server.
type OdooHandler func(call OdooCall) (any, error)

// OdooServer is a fake JSON-RPC endpoint that records every call it serves.
type OdooServer struct {
	*httptest.Server

	mu    sync.Mutex
	calls []OdooCall
}

// Calls returns a copy of all calls served so far.
func (s *OdooServer) Calls() []OdooCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OdooCall(nil), s.calls...)
}

// CallCount returns how many calls matched the given model and method.
func (s *OdooServer) CallCount(model, method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Model == model && c.Method == method {
			n++
		}
	}
	return n
}

// NewOdooServer starts a fake endpoint dispatching to handle. The server is
// closed when the test completes.
func NewOdooServer(t *testing.T, handle OdooHandler) *OdooServer {
	t.Helper()

	s := &OdooServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params struct {
				Service string `json:"service"`
				Method  string `json:"method"`
				Args    []any  `json:"args"`
			} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("fake odoo: bad request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		call := OdooCall{Service: req.Params.Service, Method: req.Params.Method}
		if req.Params.Service == "object" && req.Params.Method == "execute_kw" && len(req.Params.Args) >= 6 {
			call.Model, _ = req.Params.Args[3].(string)
			call.Method, _ = req.Params.Args[4].(string)
			call.Args, _ = req.Params.Args[5].([]any)
			if len(req.Params.Args) >= 7 {
				call.Kwargs, _ = req.Params.Args[6].(map[string]any)
			}
		} else {
			call.Args = req.Params.Args
		}

		s.mu.Lock()
		s.calls = append(s.calls, call)
		s.mu.Unlock()

		result, err := handle(call)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"error": map[string]any{
					"message": "Odoo Server Error",
					"data":    map[string]any{"message": err.Error()},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"result":  result,
		})
	}))
	t.Cleanup(s.Close)
	return s
}
