// Package batchops defines the batched operations a profile compiles into
// and the executor contract that carries them out against the platform.
package batchops

import (
	"context"

	"github.com/sandeshkamboj/AppManager/profile"
)

// Op identifies a concrete batched action an executor understands.
type Op int

const (
	OpNone Op = iota
	OpBlockComponents
	OpUnblockComponents
	OpSetAppOps
	OpGrantPermissions
	OpRevokePermissions
	OpFreeze
	OpUnfreeze
	OpForceStop
	OpClearCache
	OpClearData
	OpBlockTrackers
	OpUnblockTrackers
	OpBackupAPK
	OpBackup
	OpRestoreBackup
)

var opNames = map[Op]string{
	OpNone:              "none",
	OpBlockComponents:   "block_components",
	OpUnblockComponents: "unblock_components",
	OpSetAppOps:         "set_app_ops",
	OpGrantPermissions:  "grant_permissions",
	OpRevokePermissions: "revoke_permissions",
	OpFreeze:            "freeze",
	OpUnfreeze:          "unfreeze",
	OpForceStop:         "force_stop",
	OpClearCache:        "clear_cache",
	OpClearData:         "clear_data",
	OpBlockTrackers:     "block_trackers",
	OpUnblockTrackers:   "unblock_trackers",
	OpBackupAPK:         "backup_apk",
	OpBackup:            "backup",
	OpRestoreBackup:     "restore_backup",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// AppOpMode is the platform app-operation mode.
type AppOpMode int

const (
	ModeAllowed AppOpMode = iota
	ModeIgnored
	ModeErrored
	ModeDefault
)

// Options carries the per-operation parameters of a batched operation.
type Options interface {
	batchOpOptions()
}

// ComponentOptions parameterizes component block/unblock operations.
type ComponentOptions struct {
	Components []string `json:"components"`
}

// AppOpsOptions parameterizes app-op mode changes.
type AppOpsOptions struct {
	AppOps []int     `json:"app_ops"`
	Mode   AppOpMode `json:"mode"`
}

// PermissionOptions parameterizes permission grants/revokes.
type PermissionOptions struct {
	Permissions []string `json:"permissions"`
}

// BackupOptions parameterizes backup and restore operations.
type BackupOptions struct {
	Flags profile.BackupFlags `json:"flags"`
	Names []string            `json:"names,omitempty"`
}

func (*ComponentOptions) batchOpOptions()  {}
func (*AppOpsOptions) batchOpOptions()     {}
func (*PermissionOptions) batchOpOptions() {}
func (*BackupOptions) batchOpOptions()     {}

// Info is one batched operation: an op applied to targets given as
// parallel package/user slices of equal length.
type Info struct {
	Op       Op
	Packages []string
	Users    []int
	Options  Options
}

// Failure identifies one target an operation could not be applied to.
type Failure struct {
	Package string `json:"package"`
	User    int    `json:"user"`
}

// Result is the outcome of one batched operation.
// A Result is never mutated after the executor returns it.
type Result struct {
	Failures        []Failure `json:"failures,omitempty"`
	RequiresRestart bool      `json:"requires_restart,omitempty"`
}

// Successful reports whether every target of the operation succeeded.
func (r *Result) Successful() bool {
	return r != nil && len(r.Failures) == 0
}

// Executor carries out batched operations.
// Implementations must treat OpNone as a successful no-op: an
// unrecognized desired state degrades an operation, it never errors.
type Executor interface {
	Execute(ctx context.Context, info *Info) (*Result, error)

	// Release frees any resources held for the current run of batches.
	Release()
}
