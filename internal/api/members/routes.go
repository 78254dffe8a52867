package members

import (
	"net/http"

	"github.com/golfph/gateway/internal/crm"
)

// RegisterRoutes adds the member profile endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, partners crm.Partners) {
	h := &Handler{partners: partners}

	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /sync-external-id", h.SyncExternalID)
	mux.HandleFunc("POST /profile-upsert", h.UpsertProfile)
}
