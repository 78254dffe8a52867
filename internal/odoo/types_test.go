package odoo_test

import (
	"encoding/json"
	"testing"

	"github.com/golfph/gateway/internal/odoo"
)

func TestRelationDecoding(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantID    int64
		wantSet   bool
		wantLabel string
	}{
		{"tuple", `[12, "Club Intramuros"]`, 12, true, "Club Intramuros"},
		{"unset false", `false`, 0, false, ""},
		{"null", `null`, 0, false, ""},
		{"id only", `[3]`, 3, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rel odoo.Relation
			if err := json.Unmarshal([]byte(tt.input), &rel); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			id, ok := rel.ID()
			if id != tt.wantID || ok != tt.wantSet {
				t.Errorf("ID() = (%d, %v), want (%d, %v)", id, ok, tt.wantID, tt.wantSet)
			}
			if rel.Label() != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", rel.Label(), tt.wantLabel)
			}
		})
	}
}

func TestTolerantScalars(t *testing.T) {
	var record struct {
		Name   odoo.String `json:"name"`
		Phone  odoo.String `json:"phone"`
		Passes odoo.Int    `json:"passes"`
		Fee    odoo.Float  `json:"fee"`
	}
	input := `{"name": "Juan", "phone": false, "passes": false, "fee": 2500.5}`
	if err := json.Unmarshal([]byte(input), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record.Name != "Juan" {
		t.Errorf("Name = %q, want Juan", record.Name)
	}
	if record.Phone != "" {
		t.Errorf("Phone = %q, want empty for false", record.Phone)
	}
	if record.Passes != 0 {
		t.Errorf("Passes = %d, want 0 for false", record.Passes)
	}
	if record.Fee != 2500.5 {
		t.Errorf("Fee = %v, want 2500.5", record.Fee)
	}
}

func TestConditionMarshalsToTriple(t *testing.T) {
	b, err := json.Marshal(odoo.F("email", "=", "a@b.c"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["email","=","a@b.c"]` {
		t.Errorf("condition = %s, want triple array", b)
	}
}

func TestValuesSetNonEmpty(t *testing.T) {
	values := odoo.Values{}
	values.SetNonEmpty("name", "Juan")
	values.SetNonEmpty("phone", "")
	values.SetNonEmpty("email", "   ")

	if len(values) != 1 {
		t.Fatalf("values = %v, want only the non-empty field", values)
	}
	if values["name"] != "Juan" {
		t.Errorf("name = %v, want Juan", values["name"])
	}
}
