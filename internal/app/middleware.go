package app

import (
	"net/http"

	"github.com/agendum/agendum/internal/config"
	"github.com/agendum/agendum/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate the X-User header into context for downstream services.
	// Requests without the header run as the configured default user.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			username := req.Header.Get("X-User")
			if username == "" {
				username = cfg.Chat.DefaultUser
			}
			log.Debugf("request scoped to user: %s", username)

			ctx := user.WithUser(req.Context(), username)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
