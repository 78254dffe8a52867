package appointments

import (
	"net/http"

	"github.com/golfph/gateway/internal/crm"
)

// RegisterRoutes adds the appointment endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, svc *crm.Service) {
	h := &Handler{crm: svc}

	mux.HandleFunc("GET /appointments", h.List)
}
