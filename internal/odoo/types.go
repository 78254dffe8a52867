package odoo

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Odoo serializes unset scalar fields as the JSON literal false rather than
// null. The tolerant scalar types below decode that convention so record
// structs can be unmarshalled directly from search_read results.

// String is a char/text field value; false and null decode to "".
type String string

// UnmarshalJSON accepts a string, number, false, or null.
func (s *String) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "false" || string(b) == "null":
		*s = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = String(v)
		return nil
	default:
		*s = String(strings.TrimSpace(string(b)))
		return nil
	}
}

func (s String) String() string { return string(s) }

// Int is an integer field value; false and null decode to 0.
type Int int64

// UnmarshalJSON accepts a number, false, or null.
func (i *Int) UnmarshalJSON(b []byte) error {
	if string(b) == "false" || string(b) == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		// Selection and related fields occasionally come back quoted.
		var f float64
		if jerr := json.Unmarshal(b, &f); jerr == nil {
			*i = Int(f)
			return nil
		}
		return err
	}
	*i = Int(v)
	return nil
}

// Float is a numeric field value; false and null decode to 0.
type Float float64

// UnmarshalJSON accepts a number, false, or null.
func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "false" || string(b) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Relation is a many-to-one reference. The remote service returns either the
// [id, label] tuple or false when the field is unset; Relation makes the
// absent case explicit instead of relying on truthiness at call sites.
type Relation struct {
	id    int64
	label string
	set   bool
}

// UnmarshalJSON accepts [id, label], false, or null.
func (r *Relation) UnmarshalJSON(b []byte) error {
	if string(b) == "false" || string(b) == "null" {
		*r = Relation{}
		return nil
	}
	var tuple []any
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	if len(tuple) == 0 {
		*r = Relation{}
		return nil
	}
	rel := Relation{set: true}
	if id, ok := tuple[0].(float64); ok {
		rel.id = int64(id)
	}
	if len(tuple) > 1 {
		if label, ok := tuple[1].(string); ok {
			rel.label = label
		}
	}
	*r = rel
	return nil
}

// ID returns the referenced record id and whether the relation is set.
func (r Relation) ID() (int64, bool) { return r.id, r.set }

// Label returns the display label, or "" when absent.
func (r Relation) Label() string { return r.label }

// Values is a partial value map for create and write calls. The write
// contract is additive: fields absent from the map keep their remote value,
// so callers add only fields that actually carry data. SetNonEmpty enforces
// that for optional string inputs so a blank client field never wipes an
// existing remote value.
type Values map[string]any

// Set adds a field unconditionally. Use for explicit clears and non-string
// values.
func (v Values) Set(field string, value any) Values {
	v[field] = value
	return v
}

// SetNonEmpty adds a string field only when it is non-blank after trimming.
func (v Values) SetNonEmpty(field, value string) Values {
	if s := strings.TrimSpace(value); s != "" {
		v[field] = s
	}
	return v
}
