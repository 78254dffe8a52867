package crm_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/golfph/gateway/internal/crm"
	"github.com/golfph/gateway/internal/odoo"
	"github.com/golfph/gateway/internal/testhelpers"
)

func newService(t *testing.T, handle testhelpers.OdooHandler) (*crm.Service, *testhelpers.OdooServer) {
	t.Helper()
	srv := testhelpers.NewOdooServer(t, handle)
	client := odoo.New(srv.URL, "testdb", 2, "test-key")
	return crm.New(client), srv
}

func partnerRow(id int64, email, externalID, status string, passes int) map[string]any {
	ext := any(false)
	if externalID != "" {
		ext = externalID
	}
	return map[string]any{
		"id":    id,
		"name":  "Juan Dela Cruz",
		"email": email,
		"phone": false,
		"x_studio_bd_member_id":                  ext,
		"x_studio_selection_field_33m_1j7j68j38": status,
		"x_studio_remaining_buddy_passes":        passes,
	}
}

func TestFindByEmail(t *testing.T) {
	svc, _ := newService(t, func(call testhelpers.OdooCall) (any, error) {
		return []map[string]any{partnerRow(9, "juan@example.com", "", "active", 3)}, nil
	})

	partner, err := svc.Partners.FindByEmail(context.Background(), "  Juan@Example.com ")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if partner == nil || partner.ID != 9 {
		t.Fatalf("partner = %+v, want id 9", partner)
	}
	if partner.Phone != "" {
		t.Errorf("Phone = %q, want empty for unset field", partner.Phone)
	}
	if partner.RemainingPasses != 3 {
		t.Errorf("RemainingPasses = %d, want 3", partner.RemainingPasses)
	}
}

func TestFindByEmailAbsentIsNilNotError(t *testing.T) {
	svc, _ := newService(t, func(call testhelpers.OdooCall) (any, error) {
		return []map[string]any{}, nil
	})

	partner, err := svc.Partners.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if partner != nil {
		t.Errorf("partner = %+v, want nil for no match", partner)
	}
}

func TestSetExternalIDOnce(t *testing.T) {
	// Stateful fake: the stored external id survives across calls.
	stored := ""
	svc, srv := newService(t, func(call testhelpers.OdooCall) (any, error) {
		switch call.Method {
		case "search_read":
			return []map[string]any{partnerRow(9, "juan@example.com", stored, "active", 3)}, nil
		case "write":
			values := call.Args[1].(map[string]any)
			stored = values["x_studio_bd_member_id"].(string)
			return true, nil
		default:
			return nil, fmt.Errorf("unexpected call %s.%s", call.Model, call.Method)
		}
	})

	ctx := context.Background()

	first, err := svc.Partners.SetExternalIDOnce(ctx, "juan@example.com", "BD-100")
	if err != nil {
		t.Fatalf("first SetExternalIDOnce: %v", err)
	}
	if !first.Updated || first.AlreadySet {
		t.Errorf("first = %+v, want updated", first)
	}
	if stored != "BD-100" {
		t.Errorf("stored = %q, want BD-100", stored)
	}

	second, err := svc.Partners.SetExternalIDOnce(ctx, "juan@example.com", "BD-100")
	if err != nil {
		t.Fatalf("second SetExternalIDOnce: %v", err)
	}
	if second.Updated || !second.AlreadySet {
		t.Errorf("second = %+v, want already_set", second)
	}

	// A different id on a later call must not change the stored value.
	third, err := svc.Partners.SetExternalIDOnce(ctx, "juan@example.com", "BD-999")
	if err != nil {
		t.Fatalf("third SetExternalIDOnce: %v", err)
	}
	if !third.AlreadySet || third.ExternalID != "BD-100" {
		t.Errorf("third = %+v, want already_set with BD-100", third)
	}
	if stored != "BD-100" {
		t.Errorf("stored = %q after conflicting call, want BD-100", stored)
	}

	if got := srv.CallCount("res.partner", "write"); got != 1 {
		t.Errorf("write calls = %d, want exactly 1", got)
	}
}

func TestSetExternalIDOnceUnknownEmail(t *testing.T) {
	svc, _ := newService(t, func(call testhelpers.OdooCall) (any, error) {
		return []map[string]any{}, nil
	})

	res, err := svc.Partners.SetExternalIDOnce(context.Background(), "nobody@example.com", "BD-1")
	if err != nil {
		t.Fatalf("SetExternalIDOnce: %v", err)
	}
	if res != nil {
		t.Errorf("res = %+v, want nil for unknown email", res)
	}
}

func TestDeductPasses(t *testing.T) {
	tests := []struct {
		name          string
		current       int
		deduction     int
		wantRemaining int
		wantWrites    int
	}{
		{"normal deduction", 5, 2, 3, 1},
		{"clamped at zero", 1, 3, 0, 1},
		{"zero deduction skips write", 5, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var written any
			svc, srv := newService(t, func(call testhelpers.OdooCall) (any, error) {
				written = call.Args[1].(map[string]any)["x_studio_remaining_buddy_passes"]
				return true, nil
			})

			partner := &crm.Partner{ID: 9, RemainingPasses: tt.current}
			remaining, err := svc.Partners.DeductPasses(context.Background(), partner, tt.deduction)
			if err != nil {
				t.Fatalf("DeductPasses: %v", err)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", remaining, tt.wantRemaining)
			}
			if got := srv.CallCount("res.partner", "write"); got != tt.wantWrites {
				t.Errorf("write calls = %d, want %d", got, tt.wantWrites)
			}
			if tt.wantWrites == 1 && written.(float64) != float64(tt.wantRemaining) {
				t.Errorf("written value = %v, want %d", written, tt.wantRemaining)
			}
		})
	}
}

func TestSweepNearExpiry(t *testing.T) {
	svc, srv := newService(t, func(call testhelpers.OdooCall) (any, error) {
		switch call.Method {
		case "search":
			return []int64{4, 8}, nil
		case "write":
			values := call.Args[1].(map[string]any)
			if values["x_studio_selection_field_33m_1j7j68j38"] != "nexpire" {
				t.Errorf("write values = %v, want nexpire status", values)
			}
			return true, nil
		default:
			return nil, fmt.Errorf("unexpected call %s.%s", call.Model, call.Method)
		}
	})

	ids, err := svc.Partners.SweepNearExpiry(context.Background(), "2026-08-31")
	if err != nil {
		t.Fatalf("SweepNearExpiry: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v, want 2 entries", ids)
	}
	if got := srv.CallCount("res.partner", "write"); got != 1 {
		t.Errorf("write calls = %d, want 1 bulk write", got)
	}
}

func TestSweepNearExpiryNothingToDo(t *testing.T) {
	svc, srv := newService(t, func(call testhelpers.OdooCall) (any, error) {
		return []int64{}, nil
	})

	ids, err := svc.Partners.SweepNearExpiry(context.Background(), "2026-08-31")
	if err != nil {
		t.Fatalf("SweepNearExpiry: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
	if got := srv.CallCount("res.partner", "write"); got != 0 {
		t.Errorf("write calls = %d, want 0 when nothing matched", got)
	}
}
