// Package http contains HTTP handlers that work with the profile-execution engine.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandeshkamboj/AppManager/engine"
	"github.com/sandeshkamboj/AppManager/http/api"
	"github.com/sandeshkamboj/AppManager/logkeys"
	"github.com/sandeshkamboj/AppManager/profile"

	"github.com/alexedwards/flow"
	"github.com/micromdm/nanolib/log"
	"github.com/micromdm/nanolib/log/ctxlog"
)

var (
	ErrEmptyID   = errors.New("empty ID")
	ErrNoApplier = errors.New("missing profile applier")
)

// ProfileAppliers execute a stored profile with a desired state.
type ProfileApplier interface {
	ApplyProfile(ctx context.Context, profileID string, state profile.State, progress engine.ProgressSink) (bool, error)
}

// ApplyProfileHandler creates a HandlerFunc that applies a profile.
// The desired state is taken from the "state" query parameter; empty
// means the profile's declared state.
func ApplyProfileHandler(applier ProfileApplier, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.Logger(r.Context(), logger)
		id := flow.Param(r.Context(), "id")
		if id == "" {
			logger.Info(logkeys.Message, "id check", logkeys.Error, ErrEmptyID)
			api.JSONError(w, ErrEmptyID, http.StatusBadRequest)
			return
		}
		state := profile.State(r.URL.Query().Get("state"))
		logger = logger.With(
			logkeys.ProfileID, id,
			logkeys.State, state,
		)
		if applier == nil {
			logger.Info(logkeys.Message, "applying profile", logkeys.Error, ErrNoApplier)
			api.JSONError(w, ErrNoApplier, 0)
			return
		}

		logger.Debug(logkeys.Message, "applying profile")
		requiresRestart, err := applier.ApplyProfile(r.Context(), id, state, nil)
		if err != nil {
			logger.Info(logkeys.Message, "applying profile", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}

		jsonResp := &struct {
			RequiresRestart bool `json:"requires_restart"`
		}{RequiresRestart: requiresRestart}
		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(jsonResp); err != nil {
			logger.Info(logkeys.Message, "encoding json response", logkeys.Error, err)
		}
	}
}
