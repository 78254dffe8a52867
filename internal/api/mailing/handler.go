// Package mailing serves the mailing-list routes backed by the SendFox API.
package mailing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golfph/gateway/internal/api"
	"github.com/golfph/gateway/internal/sendfox"
)

// Handler handles mailing-list HTTP requests.
type Handler struct {
	client   *sendfox.Client
	migrator *sendfox.Migrator
}

// Add handles POST /mailing-list/add: create or update a contact on the
// given list.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ListID    int64  `json:"list_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, api.NewValidationError("invalid JSON body"))
		return
	}
	if strings.TrimSpace(body.Email) == "" || body.ListID == 0 {
		api.WriteError(w, api.NewValidationError("email and list_id are required"))
		return
	}

	contact, err := h.client.CreateContact(r.Context(), sendfox.ContactInput{
		Email:     strings.TrimSpace(body.Email),
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Lists:     []int64{body.ListID},
	})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"contact_id": contact.ID,
	})
}

// Lists handles GET /mailing-list/lists: return all lists as id/name pairs.
func (h *Handler) Lists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.client.Lists(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if lists == nil {
		lists = []sendfox.List{}
	}
	api.WriteJSON(w, http.StatusOK, lists)
}

// Migrate handles POST /mailing-list/migrate: copy every contact of the
// configured source list into the destination list. Per-contact failures are
// reported in the 200 body; only failing to read the source list is a
// top-level error.
func (h *Handler) Migrate(w http.ResponseWriter, r *http.Request) {
	res, err := h.migrator.Run(r.Context())
	if err != nil && res == nil {
		api.WriteError(w, err)
		return
	}

	if res.Total == 0 {
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"success":         true,
			"message":         "No contacts found in the source list to migrate.",
			"total_processed": 0,
		})
		return
	}

	resp := map[string]any{
		"success": true,
		"message": fmt.Sprintf("Bulk migration complete. %d of %d contacts added to list %d.",
			res.Succeeded, res.Total, h.migrator.DestList),
		"total_processed": res.Total,
	}
	if len(res.Failures) > 0 {
		resp["failures"] = res.Failures
	}
	api.WriteJSON(w, http.StatusOK, resp)
}
