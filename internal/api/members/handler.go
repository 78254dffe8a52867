// Package members serves the member profile routes: signup, the set-once
// external id sync, and the keyed profile upsert.
package members

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golfph/gateway/internal/api"
	"github.com/golfph/gateway/internal/crm"
	"github.com/golfph/gateway/internal/odoo"
)

// Handler handles member HTTP requests.
type Handler struct {
	partners crm.Partners
}

// Signup handles POST /signup: create a customer partner from the directory's
// signup webhook.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, api.NewValidationError("invalid JSON body"))
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = "No name provided"
	}
	values := odoo.Values{"name": name, "customer_rank": 1}
	values.SetNonEmpty("email", body.Email)
	values.SetNonEmpty("phone", body.Phone)

	id, err := h.partners.Create(r.Context(), values)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"partner_id": id,
	})
}

// SyncExternalID handles POST /sync-external-id: attach the directory's
// member id to the partner found by email, never overwriting an existing
// value.
func (h *Handler) SyncExternalID(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email      string `json:"email"`
		ExternalID string `json:"external_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, api.NewValidationError("invalid JSON body"))
		return
	}
	if strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.ExternalID) == "" {
		api.WriteError(w, api.NewValidationError("both email and external_id are required"))
		return
	}

	res, err := h.partners.SetExternalIDOnce(r.Context(), body.Email, body.ExternalID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if res == nil {
		api.WriteError(w, api.NewNotFoundError("member not found for this email"))
		return
	}

	resp := map[string]any{
		"updated":     res.Updated,
		"partner_id":  res.PartnerID,
		"external_id": res.ExternalID,
	}
	if res.AlreadySet {
		resp["already_set"] = true
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// UpsertProfile handles POST /profile-upsert: update the profile found by the
// highest-precedence natural key, or create one when nothing resolves.
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var input crm.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, api.NewValidationError("invalid JSON body"))
		return
	}

	partner, err := h.resolve(r, input)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	values, fields := input.Values()
	if len(values) == 0 {
		api.WriteError(w, api.NewValidationError("no non-empty fields supplied"))
		return
	}

	if partner != nil {
		if err := h.partners.Write(r.Context(), partner.ID, values); err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"updated":    true,
			"partner_id": partner.ID,
			"fields":     fields,
		})
		return
	}

	if strings.TrimSpace(input.Email) == "" {
		api.WriteError(w, api.NewValidationError("email is required to create a new profile"))
		return
	}
	values.Set("customer_rank", 1)
	id, err := h.partners.Create(r.Context(), values)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"created":    true,
		"partner_id": id,
		"fields":     fields,
	})
}

// resolve tries the candidate natural keys in precedence order: external
// membership id, then email, then phone. The first non-empty key that
// resolves wins.
func (h *Handler) resolve(r *http.Request, input crm.ProfileInput) (*crm.Partner, error) {
	type lookup struct {
		key  string
		find func(string) (*crm.Partner, error)
	}
	ctx := r.Context()
	lookups := []lookup{
		{input.ExternalID, func(k string) (*crm.Partner, error) { return h.partners.FindByExternalID(ctx, k) }},
		{input.Email, func(k string) (*crm.Partner, error) { return h.partners.FindByEmail(ctx, k) }},
		{input.Phone, func(k string) (*crm.Partner, error) { return h.partners.FindByPhone(ctx, k) }},
	}
	for _, l := range lookups {
		if strings.TrimSpace(l.key) == "" {
			continue
		}
		partner, err := l.find(l.key)
		if err != nil {
			return nil, err
		}
		if partner != nil {
			return partner, nil
		}
	}
	return nil, nil
}
