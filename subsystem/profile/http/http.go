// Package http provides HTTP handlers for the Profile subsystem.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sandeshkamboj/AppManager/http/api"
	"github.com/sandeshkamboj/AppManager/logkeys"
	"github.com/sandeshkamboj/AppManager/profile"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"

	"github.com/alexedwards/flow"
	"github.com/micromdm/nanolib/log"
	"github.com/micromdm/nanolib/log/ctxlog"
)

var (
	ErrEmptyID   = errors.New("empty ID")
	ErrEmptyBody = errors.New("empty body")
)

// GetProfilesHandler returns an HTTP handler that lists summaries of all stored profiles.
func GetProfilesHandler(store storage.ReadStorage, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.Logger(r.Context(), logger)
		summaries, err := store.RetrieveProfileSummaries(r.Context())
		if err != nil {
			logger.Info(logkeys.Message, "retrieve profile summaries", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		logger.Debug(logkeys.Message, "retrieve profile summaries", logkeys.GenericCount, len(summaries))
		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(summaries); err != nil {
			logger.Info(logkeys.Message, "encoding json", logkeys.Error, err)
			return
		}
	}
}

// GetProfileHandler returns an HTTP handler that returns a raw profile document by ID.
func GetProfileHandler(store storage.ReadStorage, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.Logger(r.Context(), logger)
		id := flow.Param(r.Context(), "id")
		if id == "" {
			logger.Info(logkeys.Message, "id check", logkeys.Error, ErrEmptyID)
			api.JSONError(w, ErrEmptyID, http.StatusBadRequest)
			return
		}
		logger = logger.With(logkeys.ProfileID, id)
		raw, err := store.RetrieveRawProfile(r.Context(), id)
		if err != nil {
			logger.Info(logkeys.Message, "retrieve profile", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	}
}

// CreateProfileHandler returns an HTTP handler that uploads a new profile
// document. A missing profile_id is derived from the profile name; the
// assigned ID is returned.
func CreateProfileHandler(store storage.Storage, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.Logger(r.Context(), logger)
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Info(logkeys.Message, "reading body", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		if len(raw) < 1 {
			logger.Info(logkeys.Message, "body check", logkeys.Error, ErrEmptyBody)
			api.JSONError(w, ErrEmptyBody, http.StatusBadRequest)
			return
		}
		p, err := profile.Parse(raw)
		if err != nil {
			logger.Info(logkeys.Message, "parsing profile", logkeys.Error, err)
			api.JSONError(w, err, http.StatusBadRequest)
			return
		}
		if p.ID == "" {
			p.ID = profile.IDForName(p.Name)
		}
		logger = logger.With(logkeys.ProfileID, p.ID)
		if err = p.Validate(); err != nil {
			logger.Info(logkeys.Message, "validating profile", logkeys.Error, err)
			api.JSONError(w, err, http.StatusBadRequest)
			return
		}
		if err = store.StoreProfile(r.Context(), p); err != nil {
			logger.Info(logkeys.Message, "store profile", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		logger.Debug(
			logkeys.Message, "store profile",
			logkeys.ProfileName, p.Name,
			logkeys.GenericCount, len(p.Packages),
		)
		jsonResp := &struct {
			ID string `json:"id"`
		}{ID: p.ID}
		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(jsonResp); err != nil {
			logger.Info(logkeys.Message, "encoding json response", logkeys.Error, err)
		}
	}
}

// StoreProfileHandler returns an HTTP handler that uploads a profile document by ID.
// The document's profile_id is replaced by the ID in the request path.
func StoreProfileHandler(store storage.Storage, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.Logger(r.Context(), logger)
		id := flow.Param(r.Context(), "id")
		if id == "" {
			logger.Info(logkeys.Message, "id check", logkeys.Error, ErrEmptyID)
			api.JSONError(w, ErrEmptyID, http.StatusBadRequest)
			return
		}
		logger = logger.With(logkeys.ProfileID, id)
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Info(logkeys.Message, "reading body", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		if len(raw) < 1 {
			logger.Info(logkeys.Message, "body check", logkeys.Error, ErrEmptyBody)
			api.JSONError(w, ErrEmptyBody, http.StatusBadRequest)
			return
		}
		p, err := profile.Parse(raw)
		if err != nil {
			logger.Info(logkeys.Message, "parsing profile", logkeys.Error, err)
			api.JSONError(w, err, http.StatusBadRequest)
			return
		}
		p.ID = id
		if err = p.Validate(); err != nil {
			logger.Info(logkeys.Message, "validating profile", logkeys.Error, err)
			api.JSONError(w, err, http.StatusBadRequest)
			return
		}
		if err = store.StoreProfile(r.Context(), p); err != nil {
			logger.Info(logkeys.Message, "store profile", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		logger.Debug(
			logkeys.Message, "store profile",
			logkeys.ProfileName, p.Name,
			logkeys.GenericCount, len(p.Packages),
		)
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteProfileHandler returns an HTTP handler that deletes a profile by ID.
func DeleteProfileHandler(store storage.Storage, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.Logger(r.Context(), logger)
		id := flow.Param(r.Context(), "id")
		if id == "" {
			logger.Info(logkeys.Message, "id check", logkeys.Error, ErrEmptyID)
			api.JSONError(w, ErrEmptyID, http.StatusBadRequest)
			return
		}
		logger = logger.With(logkeys.ProfileID, id)
		if err := store.DeleteProfile(r.Context(), id); err != nil {
			logger.Info(logkeys.Message, "delete profile", logkeys.Error, err)
			api.JSONError(w, err, 0)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
