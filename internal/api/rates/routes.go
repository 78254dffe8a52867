package rates

import (
	"net/http"

	"github.com/golfph/gateway/internal/crm"
)

// RegisterRoutes adds the rate-sheet endpoints to the given mux. OPTIONS
// preflight is answered by the CORS middleware.
func RegisterRoutes(mux *http.ServeMux, svc *crm.Service) {
	h := &Handler{crm: svc}

	mux.HandleFunc("GET /rates", h.List)
	mux.HandleFunc("POST /rates", h.Book)
}
