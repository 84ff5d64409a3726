package http

import (
	"net/http"

	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"

	"github.com/micromdm/nanolib/log"
)

// Mux can register HTTP handlers.
// Ostensibly this supports flow router.
type Mux interface {
	// Handle registers the handler for the given pattern.
	Handle(pattern string, handler http.Handler, methods ...string)
}

// HandleAPIv1 registers the profile API handlers into mux.
// API endpoint paths are prepended with prefix.
// Authentication or any other layered handlers are not present.
// They are assumed to be layered with mux, possibly at the Handle call.
func HandleAPIv1(prefix string, mux Mux, logger log.Logger, store storage.Storage) {
	mux.Handle(
		prefix+"/profiles",
		GetProfilesHandler(store, logger.With("handler", "get profiles")),
		"GET",
	)
	mux.Handle(
		prefix+"/profiles",
		CreateProfileHandler(store, logger.With("handler", "create profile")),
		"POST",
	)
	mux.Handle(
		prefix+"/profile/:id",
		GetProfileHandler(store, logger.With("handler", "get profile")),
		"GET",
	)
	mux.Handle(
		prefix+"/profile/:id",
		StoreProfileHandler(store, logger.With("handler", "store profile")),
		"PUT",
	)
	mux.Handle(
		prefix+"/profile/:id",
		DeleteProfileHandler(store, logger.With("handler", "delete profile")),
		"DELETE",
	)
}
