package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandeshkamboj/AppManager/engine"
	"github.com/sandeshkamboj/AppManager/profile"

	"github.com/alexedwards/flow"
	"github.com/micromdm/nanolib/log"
)

type testApplier struct {
	profileID string
	state     profile.State
	restart   bool
	err       error
}

func (a *testApplier) ApplyProfile(_ context.Context, profileID string, state profile.State, _ engine.ProgressSink) (bool, error) {
	a.profileID = profileID
	a.state = state
	return a.restart, a.err
}

func setupServer(t *testing.T, applier ProfileApplier) *httptest.Server {
	t.Helper()
	mux := flow.New()
	HandleAPIv1("/v1", mux, log.NopLogger, applier)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApplyProfileHandler(t *testing.T) {
	applier := &testApplier{restart: true}
	srv := setupServer(t, applier)

	resp, err := srv.Client().Post(srv.URL+"/v1/profile/p1/apply?state=off", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if applier.profileID != "p1" {
		t.Errorf("profile ID: have %q, want p1", applier.profileID)
	}
	if applier.state != profile.StateOff {
		t.Errorf("state: have %q, want off", applier.state)
	}

	var jsonResp struct {
		RequiresRestart bool `json:"requires_restart"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&jsonResp); err != nil {
		t.Fatal(err)
	}
	if !jsonResp.RequiresRestart {
		t.Error("expected requires_restart")
	}
}

func TestApplyProfileHandlerDefaultState(t *testing.T) {
	applier := new(testApplier)
	srv := setupServer(t, applier)

	resp, err := srv.Client().Post(srv.URL+"/v1/profile/p1/apply", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if applier.state != "" {
		t.Errorf("state: have %q, want empty", applier.state)
	}
}

func TestApplyProfileHandlerError(t *testing.T) {
	applier := &testApplier{err: errors.New("agent unavailable")}
	srv := setupServer(t, applier)

	resp, err := srv.Client().Post(srv.URL+"/v1/profile/p1/apply", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var jsonErr struct {
		Err string `json:"error"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&jsonErr); err != nil {
		t.Fatal(err)
	}
	if jsonErr.Err != "agent unavailable" {
		t.Errorf("unexpected error body: %q", jsonErr.Err)
	}
}
