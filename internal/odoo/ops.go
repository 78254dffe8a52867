package odoo

import (
	"context"
	"encoding/json"
)

// maxRecordLimit bounds every list call to keep remote load and response
// size in check, regardless of what the caller asks for.
const maxRecordLimit = 1000

// SearchOpts holds the keyword arguments for SearchRead.
type SearchOpts struct {
	Fields []string
	Limit  int
	Offset int
	Order  string
}

func capLimit(limit int) int {
	if limit <= 0 || limit > maxRecordLimit {
		return maxRecordLimit
	}
	return limit
}

// SearchRead fetches records matching the domain and decodes them into dest,
// which must be a pointer to a slice of record structs.
func (c *Client) SearchRead(ctx context.Context, model string, dom Domain, opts SearchOpts, dest any) error {
	if dom == nil {
		dom = Domain{}
	}
	kwargs := map[string]any{
		"fields": opts.Fields,
		"limit":  capLimit(opts.Limit),
	}
	if opts.Offset > 0 {
		kwargs["offset"] = opts.Offset
	}
	if opts.Order != "" {
		kwargs["order"] = opts.Order
	}
	raw, err := c.ExecuteKw(ctx, model, "search_read", []any{dom}, kwargs)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &TransportError{Op: "decode " + model + " records", Err: err}
	}
	return nil
}

// SearchCount returns the number of records matching the domain without
// fetching record bodies.
func (c *Client) SearchCount(ctx context.Context, model string, dom Domain) (int, error) {
	if dom == nil {
		dom = Domain{}
	}
	raw, err := c.ExecuteKw(ctx, model, "search_count", []any{dom}, nil)
	if err != nil {
		return 0, err
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &TransportError{Op: "decode count", Err: err}
	}
	return n, nil
}

// Search returns only the ids of records matching the domain.
func (c *Client) Search(ctx context.Context, model string, dom Domain, limit int) ([]int64, error) {
	if dom == nil {
		dom = Domain{}
	}
	raw, err := c.ExecuteKw(ctx, model, "search", []any{dom},
		map[string]any{"limit": capLimit(limit)})
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, &TransportError{Op: "decode ids", Err: err}
	}
	return ids, nil
}

// Create inserts one record and returns its new id.
func (c *Client) Create(ctx context.Context, model string, values Values) (int64, error) {
	raw, err := c.ExecuteKw(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, &TransportError{Op: "decode new id", Err: err}
	}
	return id, nil
}

// Write applies a partial value map to the given records. Fields absent from
// values are left untouched on the remote records.
func (c *Client) Write(ctx context.Context, model string, ids []int64, values Values) error {
	raw, err := c.ExecuteKw(ctx, model, "write", []any{ids, values}, nil)
	if err != nil {
		return err
	}
	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return &TransportError{Op: "decode write result", Err: err}
	}
	if !ok {
		return &RPCError{Model: model, Method: "write", Message: "write returned false"}
	}
	return nil
}
