package mailing

import (
	"net/http"

	"github.com/golfph/gateway/internal/sendfox"
)

// RegisterRoutes adds the mailing-list endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, client *sendfox.Client, migrator *sendfox.Migrator) {
	h := &Handler{client: client, migrator: migrator}

	mux.HandleFunc("POST /mailing-list/add", h.Add)
	mux.HandleFunc("GET /mailing-list/lists", h.Lists)
	mux.HandleFunc("POST /mailing-list/migrate", h.Migrate)
}
