// Package appointments serves the member tee-time listing route.
package appointments

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golfph/gateway/internal/api"
	"github.com/golfph/gateway/internal/crm"
)

// Handler handles appointment HTTP requests.
type Handler struct {
	crm *crm.Service
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// List handles GET /appointments: one page of the member's appointments with
// the total count for pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	email := strings.TrimSpace(q.Get("member_email"))
	if email == "" {
		api.WriteError(w, api.NewValidationError("member_email is required"))
		return
	}

	limit := defaultPageSize
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = min(parsed, maxPageSize)
		}
	}
	page := 1
	if v := q.Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 1 {
			page = parsed
		}
	}
	search := q.Get("q")

	partner, err := h.crm.Partners.FindByEmail(r.Context(), email)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if partner == nil {
		// No account is an empty result, not an error, for the UI.
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"items": []crm.Appointment{},
			"total": 0,
			"page":  page,
			"limit": limit,
		})
		return
	}

	items, total, err := h.crm.TeeTimes.ListForMember(
		r.Context(), partner.ID, search, limit, (page-1)*limit)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
