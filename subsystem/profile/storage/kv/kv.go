// Package kv implements a profile storage backend using key-value storage.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeshkamboj/AppManager/profile"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"

	"github.com/micromdm/nanolib/storage/kv"
)

const keyPfxProfile = "profile."

// KV is a profile storage backend using key-value storage.
// Each profile is stored as its raw document bytes under its ID.
type KV struct {
	b kv.KeysPrefixTraversingBucket
}

func New(b kv.KeysPrefixTraversingBucket) *KV {
	return &KV{b: b}
}

// RetrieveRawProfile returns the raw profile document in the key-value store by ID.
func (s *KV) RetrieveRawProfile(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, storage.ErrNoID
	}
	raw, err := s.b.Get(ctx, keyPfxProfile+id)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrProfileNotFound, id, err)
	}
	return raw, err
}

// RetrieveProfile returns the parsed profile in the key-value store by ID.
func (s *KV) RetrieveProfile(ctx context.Context, id string) (*profile.Profile, error) {
	raw, err := s.RetrieveRawProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.Parse(raw)
}

// RetrieveProfileSummaries returns summaries of every profile in the key-value store.
func (s *KV) RetrieveProfileSummaries(ctx context.Context) ([]profile.Summary, error) {
	var summaries []profile.Summary
	for k := range s.b.KeysPrefix(ctx, keyPfxProfile, nil) {
		if err := ctx.Err(); err != nil {
			// interrupted; return what we have so far
			return summaries, err
		}
		raw, err := s.b.Get(ctx, k)
		if err != nil {
			return summaries, fmt.Errorf("getting %s: %w", k, err)
		}
		p, err := profile.Parse(raw)
		if err != nil {
			return summaries, fmt.Errorf("parsing %s: %w", k, err)
		}
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}

// StoreProfile stores a profile in the key-value store by its ID.
func (s *KV) StoreProfile(ctx context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.b.Set(ctx, keyPfxProfile+p.ID, raw)
}

// DeleteProfile deletes a profile from the key-value store by ID.
func (s *KV) DeleteProfile(ctx context.Context, id string) error {
	if id == "" {
		return storage.ErrNoID
	}
	found, err := s.b.Has(ctx, keyPfxProfile+id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", storage.ErrProfileNotFound, id)
	}
	return s.b.Delete(ctx, keyPfxProfile+id)
}
