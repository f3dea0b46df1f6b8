package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	eventController *controllers.EventController,
	verifier domain.TokenVerifier,
	users domain.UserRepository,
	db Pinger,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, users, logger)
	optionalAuth := middleware.OptionalAuth(verifier, users, logger)

	// Public browsing; an Authorization header widens visibility for staff and organizers.
	mux.HandleFunc("GET /events", optionalAuth(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", optionalAuth(eventController.GetEvent))

	// Authenticated routes. The literal /events/unapproved pattern takes
	// precedence over /events/{eventID}.
	mux.HandleFunc("GET /events/unapproved", requireAuth(eventController.ListUnapproved))
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))
	mux.HandleFunc("POST /events/approve/{eventID}", requireAuth(eventController.ApproveEvent))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "database unreachable")
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
