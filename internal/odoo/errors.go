package odoo

import "fmt"

// RPCError is an error envelope returned by the remote service itself. The
// message prefers the nested data.message detail over the top-level one.
type RPCError struct {
	Model   string
	Method  string
	Message string
}

func (e *RPCError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s.%s failed: %s", e.Model, e.Method, e.Message)
	}
	return e.Message
}

// TransportError is a failure to talk to the remote service at all: network
// errors, request construction, or a malformed response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("odoo: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
