package sweep

import (
	"net/http"
	"time"

	"github.com/golfph/gateway/internal/crm"
)

// sweepZone is the business time zone "today" is computed in. The Odoo
// dates being compared are stored in this zone.
const sweepZone = "Asia/Manila"

// RegisterRoutes adds the sweep endpoint to the given mux.
func RegisterRoutes(mux *http.ServeMux, auth Authenticator, partners crm.Partners) {
	loc, err := time.LoadLocation(sweepZone)
	if err != nil {
		loc = time.FixedZone("PHT", 8*60*60)
	}
	h := &Handler{auth: auth, partners: partners, now: time.Now, loc: loc}

	mux.HandleFunc("GET /scheduled-expiry-sweep", h.Run)
}
