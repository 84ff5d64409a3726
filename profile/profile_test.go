package profile

import (
	"errors"
	"reflect"
	"testing"
)

const testDoc = `{
	"profile_id": "test_profile",
	"profile_name": "Test Profile",
	"version": 1,
	"state": "on",
	"packages": ["com.example.a", "com.example.b"],
	"users": [0, 10],
	"components": [".TrackerService"],
	"app_ops": [63],
	"freeze": true,
	"backup_data": {"flags": 18, "name": "weekly"}
}`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatal(err)
	}
	if err = p.Validate(); err != nil {
		t.Fatal(err)
	}
	if p.ID != "test_profile" || p.Name != "Test Profile" {
		t.Errorf("unexpected identity: %q %q", p.ID, p.Name)
	}
	if p.State != StateOn {
		t.Errorf("state: have %q, want on", p.State)
	}
	if len(p.Packages) != 2 || len(p.Users) != 2 {
		t.Error("unexpected targets")
	}
	if p.Permissions != nil {
		t.Error("expected absent permissions to stay nil")
	}
	if p.AppOps == nil {
		t.Error("expected present app ops")
	}
	if p.BackupData == nil {
		t.Fatal("expected backup data")
	}
	if !p.BackupData.Flags.Multiple() {
		t.Error("expected multiple backups flag")
	}
	if p.BackupData.Name != "weekly" {
		t.Errorf("backup name: have %q", p.BackupData.Name)
	}

	if _, err = Parse([]byte("not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	if err := (&Profile{Name: "x"}).Validate(); !errors.Is(err, ErrNoID) {
		t.Errorf("have %v, want ErrNoID", err)
	}
	if err := (&Profile{ID: "x"}).Validate(); !errors.Is(err, ErrNoName) {
		t.Errorf("have %v, want ErrNoName", err)
	}
	if err := (&Profile{ID: "x", Name: "x"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSummary(t *testing.T) {
	p, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatal(err)
	}
	s := p.Summary()
	if s.ID != p.ID || s.Name != p.Name || s.State != p.State {
		t.Error("summary identity mismatch")
	}
	if s.Packages != 2 {
		t.Errorf("summary packages: have %d, want 2", s.Packages)
	}
	want := []string{"components", "app_ops", "freeze", "backup_data"}
	if !reflect.DeepEqual(s.Features, want) {
		t.Errorf("features: have %v, want %v", s.Features, want)
	}

	if f := (&Profile{}).Features(); f != nil {
		t.Errorf("expected no features, have %v", f)
	}
}

func TestIDForName(t *testing.T) {
	for _, test := range []struct {
		name string
		want string
	}{
		{"Test Profile", "Test_Profile"},
		{"a/b:c", "a_b_c"},
		{"plain", "plain"},
	} {
		if have := IDForName(test.name); have != test.want {
			t.Errorf("%q: have %q, want %q", test.name, have, test.want)
		}
	}

	// nothing usable left; falls back to a random UUID
	for _, name := range []string{"", ".", "..", "  "} {
		if have := IDForName(name); len(have) != 36 {
			t.Errorf("%q: expected UUID fallback, have %q", name, have)
		}
	}
}

func TestNameFromFilename(t *testing.T) {
	for _, test := range []struct {
		filename string
		want     string
	}{
		{"Test_Profile" + Ext, "Test_Profile"},
		{"imported.json", "imported"},
		{"bare", "bare"},
	} {
		if have := NameFromFilename(test.filename); have != test.want {
			t.Errorf("%q: have %q, want %q", test.filename, have, test.want)
		}
	}
}

func TestBackupFlags(t *testing.T) {
	f := BackupNothing
	if f.Multiple() || f.CustomUsers() {
		t.Error("empty flags should report nothing")
	}
	f = f.With(BackupAPKFiles).With(BackupMultiple)
	if !f.Multiple() {
		t.Error("expected multiple")
	}
	if f.CustomUsers() {
		t.Error("unexpected custom users")
	}
	if !f.With(BackupCustomUsers).CustomUsers() {
		t.Error("expected custom users after With")
	}
}
