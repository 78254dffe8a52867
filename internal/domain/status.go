// Package domain holds the gateway's pure types and rules: membership status
// classification and the flattened record shapes returned to clients.
package domain

import "strings"

// Membership status classes. Anything the classifier does not recognize
// passes through lowercased and trimmed, and is treated as active for
// blocking purposes.
const (
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
	StatusNew       = "new"
	StatusActive    = "active"
)

// Status is the result of classifying a raw membership status label.
type Status struct {
	Class   string
	Blocked bool
	Reason  string
}

// ClassifyStatus normalizes a raw status label into a small closed set via
// case-insensitive substring and alias matching. It is total: every input
// maps to exactly one outcome.
func ClassifyStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return Status{}
	case strings.Contains(s, "expir"):
		return Status{
			Class:   StatusExpired,
			Blocked: true,
			Reason:  "Your membership has expired. Please renew to continue booking.",
		}
	case strings.Contains(s, "cancel"):
		return Status{
			Class:   StatusCancelled,
			Blocked: true,
			Reason:  "Your membership has been cancelled. Please renew to continue booking.",
		}
	case s == "new" || strings.Contains(s, "pending"):
		return Status{
			Class:   StatusNew,
			Blocked: true,
			Reason:  "Your membership is pending activation.",
		}
	case strings.Contains(s, "activ"):
		return Status{Class: StatusActive}
	default:
		return Status{Class: s}
	}
}

// BuddyPassDeduction derives the pass deduction for a booking: one pass per
// accompanying player, never negative.
func BuddyPassDeduction(players []string) int {
	if len(players) <= 1 {
		return 0
	}
	return len(players) - 1
}
