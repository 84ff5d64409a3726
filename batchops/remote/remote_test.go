package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandeshkamboj/AppManager/batchops"
)

func TestExecutor(t *testing.T) {
	var received struct {
		Op       string          `json:"op"`
		Packages []string        `json:"packages"`
		Users    []int           `json:"users"`
		Options  json.RawMessage `json:"options"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != apiUsername || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&batchops.Result{
			Failures:        []batchops.Failure{{Package: "com.example.b", User: 10}},
			RequiresRestart: true,
		})
	}))
	defer srv.Close()

	e, err := New(srv.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}
	defer e.Release()

	result, err := e.Execute(context.Background(), &batchops.Info{
		Op:       batchops.OpFreeze,
		Packages: []string{"com.example.a", "com.example.b"},
		Users:    []int{0, 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	if received.Op != "freeze" {
		t.Errorf("op: have %q, want freeze", received.Op)
	}
	if len(received.Packages) != 2 || len(received.Users) != 2 {
		t.Error("unexpected targets")
	}
	if result.Successful() {
		t.Error("expected partial failure")
	}
	if !result.RequiresRestart {
		t.Error("expected restart flag")
	}
}

func TestExecutorBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e, err := New(srv.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = e.Execute(context.Background(), &batchops.Info{Op: batchops.OpNone}); err == nil {
		t.Error("expected error for non-OK status")
	}
}

func TestNewNoURL(t *testing.T) {
	if _, err := New("", "secret"); err != ErrNoURL {
		t.Errorf("have %v, want ErrNoURL", err)
	}
}
