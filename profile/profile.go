// Package profile defines the apps profile document: a declarative
// desired state for a set of packages across system users.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Ext is the file extension suffix for stored profile documents.
const Ext = ".am.json"

var (
	ErrNoID   = errors.New("profile has no ID")
	ErrNoName = errors.New("profile has no name")
)

// State is the desired state a profile is applied with.
// Any value other than the two canonical states degrades state-dependent
// features to a no-op; it is never an error.
type State string

const (
	StateOn  State = "on"
	StateOff State = "off"
)

// BackupInfo controls the backup/restore feature of a profile.
type BackupInfo struct {
	Flags BackupFlags `json:"flags"`
	Name  string      `json:"name,omitempty"`
}

// Profile is a declarative desired configuration for a set of packages.
// Optional slice fields are tri-state: a nil slice means the feature is
// absent while a present (possibly empty) slice enables it.
type Profile struct {
	ID      string `json:"profile_id"`
	Name    string `json:"profile_name"`
	Version int    `json:"version,omitempty"`

	State    State    `json:"state,omitempty"`
	Packages []string `json:"packages"`
	Users    []int    `json:"users,omitempty"`

	Components  []string `json:"components,omitempty"`
	AppOps      []int    `json:"app_ops,omitempty"`
	Permissions []string `json:"permissions,omitempty"`

	// ExportRules is reserved in the document schema. Execution skips it.
	ExportRules *int `json:"export_rules,omitempty"`

	Freeze        bool `json:"freeze,omitempty"`
	ForceStop     bool `json:"force_stop,omitempty"`
	ClearCache    bool `json:"clear_cache,omitempty"`
	ClearData     bool `json:"clear_data,omitempty"`
	BlockTrackers bool `json:"block_trackers,omitempty"`
	SaveAPK       bool `json:"save_apk,omitempty"`

	BackupData *BackupInfo `json:"backup_data,omitempty"`
}

// Parse parses a raw profile document.
func Parse(raw []byte) (*Profile, error) {
	p := new(Profile)
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

// Marshal encodes p back to its document form.
func (p *Profile) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Validate checks the minimum document requirements.
// An empty package list is allowed; applying such a profile is a no-op.
func (p *Profile) Validate() error {
	if p == nil || p.ID == "" {
		return ErrNoID
	}
	if p.Name == "" {
		return ErrNoName
	}
	return nil
}

// Summary is lightweight profile metadata for listings.
type Summary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	State    State    `json:"state,omitempty"`
	Packages int      `json:"packages"`
	Features []string `json:"features,omitempty"`
}

// Summary returns listing metadata for p.
func (p *Profile) Summary() Summary {
	return Summary{
		ID:       p.ID,
		Name:     p.Name,
		State:    p.State,
		Packages: len(p.Packages),
		Features: p.Features(),
	}
}

// Features names the features this profile enables, in document order.
func (p *Profile) Features() []string {
	var f []string
	add := func(enabled bool, name string) {
		if enabled {
			f = append(f, name)
		}
	}
	add(p.Components != nil, "components")
	add(p.AppOps != nil, "app_ops")
	add(p.Permissions != nil, "permissions")
	add(p.ExportRules != nil, "export_rules")
	add(p.Freeze, "freeze")
	add(p.ForceStop, "force_stop")
	add(p.ClearCache, "clear_cache")
	add(p.ClearData, "clear_data")
	add(p.BlockTrackers, "block_trackers")
	add(p.SaveAPK, "save_apk")
	add(p.BackupData != nil, "backup_data")
	return f
}
