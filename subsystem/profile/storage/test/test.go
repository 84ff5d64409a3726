// Package test implements a conformance test for profile storage backends.
package test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sandeshkamboj/AppManager/profile"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"
)

func testProfile(id string) *profile.Profile {
	return &profile.Profile{
		ID:       id,
		Name:     "Test " + id,
		State:    profile.StateOn,
		Packages: []string{"com.example.one", "com.example.two"},
		Users:    []int{0, 10},
		Freeze:   true,
	}
}

// TestProfileStorage runs a storage backend through the store contract.
func TestProfileStorage(t *testing.T, newStorage func() (storage.Storage, error)) {
	s, err := newStorage()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	p := testProfile("test")
	if err = s.StoreProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	p2, err := s.RetrieveProfile(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, p2) {
		t.Error("retrieved profile not equal")
	}

	raw, err := s.RetrieveRawProfile(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}
	p3, err := profile.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, p3) {
		t.Error("raw profile does not parse back equal")
	}

	if _, err = s.RetrieveRawProfile(ctx, ""); !errors.Is(err, storage.ErrNoID) {
		t.Fatal("expected ErrNoID")
	}

	// second profile to make sure listing spans profiles
	if err = s.StoreProfile(ctx, testProfile("test2")); err != nil {
		t.Fatal(err)
	}

	summaries, err := s.RetrieveProfileSummaries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := len(summaries), 2; have != want {
		t.Fatalf("summaries: have %d, want %d", have, want)
	}
	found := make(map[string]profile.Summary)
	for _, summary := range summaries {
		found[summary.ID] = summary
	}
	summary, ok := found["test"]
	if !ok {
		t.Fatal("summary for stored profile not found")
	}
	if have, want := summary.Packages, 2; have != want {
		t.Errorf("summary packages: have %d, want %d", have, want)
	}
	if have, want := summary.State, profile.StateOn; have != want {
		t.Errorf("summary state: have %v, want %v", have, want)
	}

	// re-store overwrites by ID
	p.Name = "Renamed"
	if err = s.StoreProfile(ctx, p); err != nil {
		t.Fatal(err)
	}
	p2, err = s.RetrieveProfile(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}
	if have, want := p2.Name, "Renamed"; have != want {
		t.Errorf("name after re-store: have %q, want %q", have, want)
	}

	if err = s.DeleteProfile(ctx, "test"); err != nil {
		t.Fatal(err)
	}

	if _, err = s.RetrieveProfile(ctx, "test"); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatal("expected ErrProfileNotFound")
	}

	if err = s.DeleteProfile(ctx, "test"); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatal("expected ErrProfileNotFound for repeated delete")
	}

	if err = s.DeleteProfile(ctx, "test2"); err != nil {
		t.Fatal(err)
	}
}
