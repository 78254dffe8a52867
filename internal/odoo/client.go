// Package odoo implements a minimal JSON-RPC 2.0 client for the Odoo
// external API. All object-model access goes through ExecuteKw; the
// higher-level operations in ops.go are thin wrappers over it.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client performs authenticated calls against a single Odoo instance.
type Client struct {
	endpoint string // full JSON-RPC URL, e.g. https://tenant.odoo.com/jsonrpc
	db       string
	uid      int64
	apiKey   string
	http     *http.Client
}

// New creates a Client for the given instance. endpoint must be the full
// /jsonrpc URL.
func New(endpoint, db string, uid int64, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		db:       db,
		uid:      uid,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

// call sends one JSON-RPC envelope and returns the raw result field.
func (c *Client) call(ctx context.Context, service, method string, args []any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      uuid.NewString(),
	})
	if err != nil {
		return nil, &TransportError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &TransportError{Op: "decode response", Err: err}
	}
	if envelope.Error != nil {
		// The nested data.message usually carries the useful detail.
		msg := envelope.Error.Data.Message
		if msg == "" {
			msg = envelope.Error.Message
		}
		if msg == "" {
			msg = "unknown remote error"
		}
		return nil, &RPCError{Message: msg}
	}
	return envelope.Result, nil
}

// ExecuteKw invokes model.method with positional args and optional kwargs
// through the object service. The raw result is returned for the caller to
// decode; its shape depends on the method.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	raw, err := c.call(ctx, "object", "execute_kw",
		[]any{c.db, c.uid, c.apiKey, model, method, args, kwargs})
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			rpcErr.Model = model
			rpcErr.Method = method
		}
		return nil, err
	}
	return raw, nil
}

// Authenticate verifies the API key against the common service and returns
// the user id the key belongs to.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	raw, err := c.call(ctx, "common", "authenticate", []any{c.db, nil, c.apiKey, map[string]any{}})
	if err != nil {
		return 0, err
	}
	var uid int64
	if err := json.Unmarshal(raw, &uid); err != nil {
		return 0, &TransportError{Op: "decode uid", Err: fmt.Errorf("authentication failed, check API key: %w", err)}
	}
	if uid == 0 {
		return 0, &RPCError{Message: "authentication failed, check API key"}
	}
	return uid, nil
}
