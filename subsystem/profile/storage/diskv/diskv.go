// Package diskv implements a storage backend for the Profile subsystem backed by diskv.
// Profiles live on disk one file per profile, named "<ID>.am.json".
package diskv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sandeshkamboj/AppManager/profile"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"

	"github.com/peterbourgon/diskv/v3"
)

// flatTransform stores all keys in the base directory.
func flatTransform(string) []string { return []string{} }

// Diskv is a profile storage backend that uses an on-disk key-value store.
type Diskv struct {
	dv *diskv.Diskv
}

// New creates a new profile store on disk at path.
func New(path string) *Diskv {
	return &Diskv{
		dv: diskv.New(diskv.Options{
			BasePath:     filepath.Join(path, "profiles"),
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024,
		}),
	}
}

func filename(id string) string {
	return id + profile.Ext
}

// RetrieveRawProfile returns the raw profile document on disk by ID.
func (s *Diskv) RetrieveRawProfile(_ context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, storage.ErrNoID
	}
	if !s.dv.Has(filename(id)) {
		return nil, fmt.Errorf("%w: %s", storage.ErrProfileNotFound, id)
	}
	return s.dv.Read(filename(id))
}

// RetrieveProfile returns the parsed profile on disk by ID.
func (s *Diskv) RetrieveProfile(ctx context.Context, id string) (*profile.Profile, error) {
	raw, err := s.RetrieveRawProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.Parse(raw)
}

// RetrieveProfileSummaries returns summaries of every profile file on disk.
func (s *Diskv) RetrieveProfileSummaries(ctx context.Context) ([]profile.Summary, error) {
	var summaries []profile.Summary
	for k := range s.dv.Keys(ctx.Done()) {
		if err := ctx.Err(); err != nil {
			// interrupted; return what we have so far
			return summaries, err
		}
		if !strings.HasSuffix(k, profile.Ext) {
			continue
		}
		raw, err := s.dv.Read(k)
		if err != nil {
			return summaries, fmt.Errorf("reading %s: %w", k, err)
		}
		p, err := profile.Parse(raw)
		if err != nil {
			return summaries, fmt.Errorf("parsing %s: %w", k, err)
		}
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}

// StoreProfile writes a profile document to disk named by its ID.
func (s *Diskv) StoreProfile(_ context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.dv.Write(filename(p.ID), raw)
}

// DeleteProfile deletes a profile file from disk by ID.
func (s *Diskv) DeleteProfile(_ context.Context, id string) error {
	if id == "" {
		return storage.ErrNoID
	}
	if !s.dv.Has(filename(id)) {
		return fmt.Errorf("%w: %s", storage.ErrProfileNotFound, id)
	}
	return s.dv.Erase(filename(id))
}
