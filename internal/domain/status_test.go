package domain_test

import (
	"testing"

	"github.com/golfph/gateway/internal/domain"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		input       string
		wantClass   string
		wantBlocked bool
	}{
		{"expired", "expired", true},
		{"EXPIRE", "expired", true},
		{" Cancelled ", "cancelled", true},
		{"new", "new", true},
		{"Pending", "new", true},
		{"", "", false},
		{"unknown-value", "unknown-value", false},
		{"Active", "active", false},
		{"nexpire", "expired", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st := domain.ClassifyStatus(tt.input)
			if st.Class != tt.wantClass {
				t.Errorf("ClassifyStatus(%q).Class = %q, want %q", tt.input, st.Class, tt.wantClass)
			}
			if st.Blocked != tt.wantBlocked {
				t.Errorf("ClassifyStatus(%q).Blocked = %v, want %v", tt.input, st.Blocked, tt.wantBlocked)
			}
			if st.Blocked && st.Reason == "" {
				t.Errorf("ClassifyStatus(%q) blocked without a reason", tt.input)
			}
		})
	}
}

func TestBuddyPassDeduction(t *testing.T) {
	tests := []struct {
		players []string
		want    int
	}{
		{[]string{"A"}, 0},
		{[]string{"A", "B"}, 1},
		{[]string{"A", "B", "C"}, 2},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := domain.BuddyPassDeduction(tt.players); got != tt.want {
			t.Errorf("BuddyPassDeduction(%v) = %d, want %d", tt.players, got, tt.want)
		}
	}
}
