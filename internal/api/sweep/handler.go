// Package sweep serves the scheduled near-expiry status sweep, intended to
// be invoked by a time-based trigger.
package sweep

import (
	"context"
	"net/http"
	"time"

	"github.com/golfph/gateway/internal/api"
	"github.com/golfph/gateway/internal/crm"
)

// Authenticator verifies the remote credentials before the sweep writes.
type Authenticator interface {
	Authenticate(ctx context.Context) (int64, error)
}

// Handler handles the expiry sweep requests.
type Handler struct {
	auth     Authenticator
	partners crm.Partners
	now      func() time.Time
	loc      *time.Location
}

// Run handles GET /scheduled-expiry-sweep. The sweep is idempotent per day:
// re-running after all matches are transitioned finds nothing to update.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	today := h.now().In(h.loc).Format("2006-01-02")

	if _, err := h.auth.Authenticate(r.Context()); err != nil {
		api.WriteError(w, err)
		return
	}

	ids, err := h.partners.SweepNearExpiry(r.Context(), today)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"today":   today,
		"updated": len(ids),
		"ids":     ids,
	})
}
