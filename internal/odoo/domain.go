package odoo

import "encoding/json"

// Condition is one (field, operator, value) criterion. It marshals to the
// three-element array form the remote query facility expects. Field names and
// operators are passed through verbatim; the remote schema owns their
// validity.
type Condition struct {
	Field string
	Op    string
	Value any
}

// F builds a Condition.
func F(field, op string, value any) Condition {
	return Condition{Field: field, Op: op, Value: value}
}

// MarshalJSON renders the condition as [field, op, value].
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Field, c.Op, c.Value})
}

// Domain is an ordered list of criteria, conjunctive by default. Prefix
// logical operators ("&", "|", "!") may be interleaved as plain strings to
// group criteria explicitly.
type Domain []any

// And returns a purely conjunctive domain from the given conditions.
func And(conds ...Condition) Domain {
	d := make(Domain, 0, len(conds))
	for _, c := range conds {
		d = append(d, c)
	}
	return d
}
