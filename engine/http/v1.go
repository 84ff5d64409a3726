package http

import (
	"net/http"

	"github.com/micromdm/nanolib/log"
)

// Mux can register HTTP handlers.
// Ostensibly this supports flow router.
type Mux interface {
	// Handle registers the handler for the given pattern.
	Handle(pattern string, handler http.Handler, methods ...string)
}

// HandleAPIv1 registers the engine API handlers into mux.
// API endpoint paths are prepended with prefix.
// Authentication or any other layered handlers are not present.
// They are assumed to be layered with mux, possibly at the Handle call.
func HandleAPIv1(prefix string, mux Mux, logger log.Logger, applier ProfileApplier) {
	mux.Handle(
		prefix+"/profile/:id/apply",
		ApplyProfileHandler(applier, logger.With("handler", "apply profile")),
		"POST",
	)
}
