// Package storage defines types and methods for a profile storage backend.
package storage

import (
	"context"
	"errors"

	"github.com/sandeshkamboj/AppManager/profile"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoID            = errors.New("no profile ID supplied")
)

type ReadStorage interface {
	// RetrieveProfile returns the stored profile by ID.
	// ErrProfileNotFound is returned for an ID that hasn't been stored.
	RetrieveProfile(ctx context.Context, id string) (*profile.Profile, error)

	// RetrieveRawProfile returns the raw profile document bytes by ID.
	// ErrProfileNotFound is returned for an ID that hasn't been stored.
	RetrieveRawProfile(ctx context.Context, id string) ([]byte, error)

	// RetrieveProfileSummaries returns summaries of all stored profiles.
	// Listing checks for context cancellation between profiles and
	// returns what was collected so far alongside the context error.
	RetrieveProfileSummaries(ctx context.Context) ([]profile.Summary, error)
}

type Storage interface {
	ReadStorage

	// StoreProfile stores a profile document keyed by its ID.
	// The profile must validate.
	StoreProfile(ctx context.Context, p *profile.Profile) error

	// DeleteProfile deletes a profile from storage by ID.
	// ErrProfileNotFound is returned for an ID that hasn't been stored.
	DeleteProfile(ctx context.Context, id string) error
}
