package crm_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/golfph/gateway/internal/crm"
	"github.com/golfph/gateway/internal/testhelpers"
)

func teeRow(id int64, ref string) map[string]any {
	return map[string]any{
		"id":            id,
		"x_name":        ref,
		"x_studio_date": "2026-09-01",
		"x_studio_time": "07:30",
		"x_studio_selection_field_8jm_1j7dq7a1s": "confirmed",
		"x_studio_golf_course":                   []any{3, "Club Intramuros"},
		"x_studio_buddy_pass_deduction":          2,
		"x_studio_sequence":                      5,
	}
}

func TestListForMemberUsesSameDomainForCountAndPage(t *testing.T) {
	var domains []string
	svc, _ := newService(t, func(call testhelpers.OdooCall) (any, error) {
		switch call.Method {
		case "search_count":
			domains = append(domains, fmt.Sprint(call.Args[0]))
			return 1, nil
		case "search_read":
			domains = append(domains, fmt.Sprint(call.Args[0]))
			return []map[string]any{teeRow(20, "TEE-0020")}, nil
		default:
			return nil, fmt.Errorf("unexpected call %s.%s", call.Model, call.Method)
		}
	})

	items, total, err := svc.TeeTimes.ListForMember(context.Background(), 9, "", 20, 0)
	if err != nil {
		t.Fatalf("ListForMember: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("total = %d, items = %d, want 1 and 1", total, len(items))
	}
	if len(domains) != 2 || domains[0] != domains[1] {
		t.Errorf("count and page domains differ: %v", domains)
	}

	item := items[0]
	if item.Reference != "TEE-0020" || item.Status != "confirmed" {
		t.Errorf("item = %+v, want flattened record", item)
	}
	if item.CourseID == nil || *item.CourseID != 3 || item.CourseName != "Club Intramuros" {
		t.Errorf("course = %v/%q, want 3/Club Intramuros", item.CourseID, item.CourseName)
	}
}

func TestListForMemberSearchWidensDomain(t *testing.T) {
	var teeDomain []any
	svc, _ := newService(t, func(call testhelpers.OdooCall) (any, error) {
		switch {
		case call.Model == "x_golf_course":
			// No course matches the term.
			return []map[string]any{}, nil
		case call.Method == "search_count":
			teeDomain = call.Args[0].([]any)
			return 0, nil
		default:
			return []map[string]any{}, nil
		}
	})

	_, _, err := svc.TeeTimes.ListForMember(context.Background(), 9, "riverside", 20, 0)
	if err != nil {
		t.Fatalf("ListForMember: %v", err)
	}

	if len(teeDomain) != 5 || teeDomain[0] != "&" || teeDomain[2] != "|" {
		t.Fatalf("domain = %v, want &/| grouped search domain", teeDomain)
	}
	// The course in-clause must stay valid when nothing matched.
	courseCond := teeDomain[4].([]any)
	ids := courseCond[2].([]any)
	if len(ids) != 1 || ids[0].(float64) != -1 {
		t.Errorf("course ids = %v, want impossible id placeholder", ids)
	}
}

func TestCreateBooking(t *testing.T) {
	var values map[string]any
	svc, _ := newService(t, func(call testhelpers.OdooCall) (any, error) {
		if call.Model != "x_tee_time_appointment" || call.Method != "create" {
			return nil, fmt.Errorf("unexpected call %s.%s", call.Model, call.Method)
		}
		values = call.Args[0].(map[string]any)
		return 77, nil
	})

	id, err := svc.TeeTimes.Create(context.Background(), crm.Booking{
		PartnerID: 9,
		CourseID:  3,
		Date:      "2026-09-01",
		Time:      "07:30",
		Players:   []string{"Juan", "Pedro"},
		Deduction: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 77 {
		t.Errorf("id = %d, want 77", id)
	}
	if values["x_studio_member"].(float64) != 9 {
		t.Errorf("member = %v, want 9", values["x_studio_member"])
	}
	if values["x_studio_players"] != "Juan, Pedro" {
		t.Errorf("players = %v, want joined list", values["x_studio_players"])
	}
	if values["x_studio_buddy_pass_deduction"].(float64) != 1 {
		t.Errorf("deduction = %v, want 1", values["x_studio_buddy_pass_deduction"])
	}
}
