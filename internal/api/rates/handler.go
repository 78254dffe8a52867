// Package rates serves the golf-course rate sheet and tee-time booking
// routes.
package rates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golfph/gateway/internal/api"
	"github.com/golfph/gateway/internal/crm"
	"github.com/golfph/gateway/internal/domain"
)

// Handler handles rate-sheet HTTP requests.
type Handler struct {
	crm *crm.Service
}

const defaultListLimit = 200

// List handles GET /rates. With member_email it resolves the member and
// returns their status view; otherwise it returns the rate-sheet parents and
// lines.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if email := strings.TrimSpace(q.Get("member_email")); email != "" {
		h.memberView(w, r, email)
		return
	}

	includeAll := q.Get("all") == "1"
	destination := q.Get("destination")
	limit := defaultListLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	courses, err := h.crm.Rates.Courses(r.Context(), includeAll, limit)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	if len(courses) == 0 {
		note := "No dashboard-visible golf courses. Try ?all=1 to ignore the visibility flag."
		if includeAll {
			note = "No golf course rate records found."
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"parents_count": 0,
			"lines_count":   0,
			"parents":       []crm.Course{},
			"lines":         []crm.RateLine{},
			"note":          note,
		})
		return
	}

	lines, err := h.crm.Rates.Lines(r.Context(), courses, destination, limit)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"parents_count": len(courses),
		"lines_count":   len(lines),
		"parents":       courses,
		"lines":         lines,
	})
}

// memberStatusView is the flattened member payload for the member_email
// variant of GET /rates.
type memberStatusView struct {
	PartnerID       int64  `json:"partner_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Status          string `json:"status"`
	Blocked         bool   `json:"blocked"`
	Message         string `json:"message,omitempty"`
	RemainingPasses int    `json:"remaining_passes"`
}

func (h *Handler) memberView(w http.ResponseWriter, r *http.Request, email string) {
	partner, err := h.crm.Partners.FindByEmail(r.Context(), email)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if partner == nil {
		// Absence is not a failure for this read route.
		api.WriteJSON(w, http.StatusOK, map[string]any{"member": nil})
		return
	}

	st := domain.ClassifyStatus(partner.RawStatus)
	api.WriteJSON(w, http.StatusOK, map[string]any{"member": memberStatusView{
		PartnerID:       partner.ID,
		Name:            partner.Name,
		Email:           partner.Email,
		Status:          st.Class,
		Blocked:         st.Blocked,
		Message:         st.Reason,
		RemainingPasses: partner.RemainingPasses,
	}})
}

// Book handles POST /rates: create a tee-time appointment for an eligible
// member and deduct buddy passes for accompanying players.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GolfCourseID int64    `json:"golf_course_id"`
		GolfCourse   int64    `json:"golf_course"`
		Email        string   `json:"email"`
		BDMemberID   string   `json:"bd_member_id"`
		Date         string   `json:"date"`
		Time         string   `json:"time"`
		Players      []string `json:"players"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, api.NewValidationError("invalid JSON body"))
		return
	}

	courseID := body.GolfCourseID
	if courseID == 0 {
		courseID = body.GolfCourse
	}
	switch {
	case courseID == 0:
		api.WriteError(w, api.NewValidationError("golf_course_id is required"))
		return
	case strings.TrimSpace(body.Email) == "" && strings.TrimSpace(body.BDMemberID) == "":
		api.WriteError(w, api.NewValidationError("email or bd_member_id is required"))
		return
	case strings.TrimSpace(body.Date) == "":
		api.WriteError(w, api.NewValidationError("date is required"))
		return
	case strings.TrimSpace(body.Time) == "":
		api.WriteError(w, api.NewValidationError("time is required"))
		return
	case len(body.Players) == 0:
		api.WriteError(w, api.NewValidationError("players must be a non-empty list"))
		return
	}

	var partner *crm.Partner
	var err error
	if email := strings.TrimSpace(body.Email); email != "" {
		partner, err = h.crm.Partners.FindByEmail(r.Context(), email)
	} else {
		partner, err = h.crm.Partners.FindByExternalID(r.Context(), body.BDMemberID)
	}
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if partner == nil {
		api.WriteError(w, api.NewNotFoundError("member not found"))
		return
	}

	// The eligibility gate must run before any remote write.
	st := domain.ClassifyStatus(partner.RawStatus)
	if st.Blocked {
		api.WriteJSON(w, http.StatusForbidden, map[string]any{
			"blocked": true,
			"error":   st.Reason,
			"status":  st.Class,
		})
		return
	}

	deduction := domain.BuddyPassDeduction(body.Players)
	teeID, err := h.crm.TeeTimes.Create(r.Context(), crm.Booking{
		PartnerID: partner.ID,
		CourseID:  courseID,
		Date:      strings.TrimSpace(body.Date),
		Time:      strings.TrimSpace(body.Time),
		Players:   body.Players,
		Deduction: deduction,
	})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	remaining, err := h.crm.Partners.DeductPasses(r.Context(), partner, deduction)
	if err != nil {
		// Booking exists but the allowance write failed; report it rather
		// than pretend the deduction happened.
		api.WriteError(w, fmt.Errorf("appointment %d created but pass deduction failed: %w", teeID, err))
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"tee_id":               teeID,
		"buddy_pass_deduction": deduction,
		"remaining_passes":     remaining,
	})
}
