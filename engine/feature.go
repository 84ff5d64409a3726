package engine

import (
	"strconv"

	"github.com/sandeshkamboj/AppManager/batchops"
	"github.com/sandeshkamboj/AppManager/profile"
)

// featureHandler describes one independently toggled profile feature:
// how to detect it on a profile, resolve its operation for a desired
// state, and build its operation options.
type featureHandler struct {
	name    string
	inert   bool
	enabled func(p *profile.Profile) bool
	resolve func(state profile.State) batchops.Op
	options func(p *profile.Profile, state profile.State, actingUser int) batchops.Options
}

// stateOp resolves the canonical states to their operations; any other
// state degrades to OpNone rather than erroring.
func stateOp(on, off batchops.Op) func(profile.State) batchops.Op {
	return func(state profile.State) batchops.Op {
		switch state {
		case profile.StateOn:
			return on
		case profile.StateOff:
			return off
		default:
			return batchops.OpNone
		}
	}
}

// fixedOp resolves to the same operation regardless of state.
func fixedOp(op batchops.Op) func(profile.State) batchops.Op {
	return func(profile.State) batchops.Op { return op }
}

// backupOptions builds backup/restore options. With multiple backups
// enabled and a backup name set, a restore addresses the per-user
// backup name "<user>_<name>" while taking a backup uses the raw name.
// Targets are always enumerated with explicit users, so the
// custom-users flag is always added.
func backupOptions(p *profile.Profile, state profile.State, actingUser int) batchops.Options {
	var names []string
	if b := p.BackupData; b.Flags.Multiple() && b.Name != "" {
		if state == profile.StateOff {
			names = []string{strconv.Itoa(actingUser) + "_" + b.Name}
		} else {
			names = []string{b.Name}
		}
	}
	return &batchops.BackupOptions{
		Flags: p.BackupData.Flags.With(profile.BackupCustomUsers),
		Names: names,
	}
}

// featureHandlers fixes the order profile features execute in.
// Callers rely on side effects happening in this sequence (for example
// unfreezing before clearing data), so the order is a contract.
var featureHandlers = []featureHandler{
	{
		name:    "block/unblock components",
		enabled: func(p *profile.Profile) bool { return p.Components != nil },
		resolve: stateOp(batchops.OpBlockComponents, batchops.OpUnblockComponents),
		options: func(p *profile.Profile, _ profile.State, _ int) batchops.Options {
			return &batchops.ComponentOptions{Components: p.Components}
		},
	},
	{
		name:    "ignore/default app ops",
		enabled: func(p *profile.Profile) bool { return p.AppOps != nil },
		resolve: fixedOp(batchops.OpSetAppOps),
		options: func(p *profile.Profile, state profile.State, _ int) batchops.Options {
			// only "on" ignores; "off" and anything else sets default
			mode := batchops.ModeDefault
			if state == profile.StateOn {
				mode = batchops.ModeIgnored
			}
			return &batchops.AppOpsOptions{AppOps: p.AppOps, Mode: mode}
		},
	},
	{
		name:    "grant/revoke permissions",
		enabled: func(p *profile.Profile) bool { return p.Permissions != nil },
		resolve: stateOp(batchops.OpRevokePermissions, batchops.OpGrantPermissions),
		options: func(p *profile.Profile, _ profile.State, _ int) batchops.Options {
			return &batchops.PermissionOptions{Permissions: p.Permissions}
		},
	},
	{
		// reserved in the document schema; occupies its slot in the
		// order but issues no operation and counts no progress
		name:    "export rules",
		inert:   true,
		enabled: func(p *profile.Profile) bool { return p.ExportRules != nil },
	},
	{
		name:    "freeze/unfreeze",
		enabled: func(p *profile.Profile) bool { return p.Freeze },
		resolve: stateOp(batchops.OpFreeze, batchops.OpUnfreeze),
	},
	{
		name:    "force-stop",
		enabled: func(p *profile.Profile) bool { return p.ForceStop },
		resolve: fixedOp(batchops.OpForceStop),
	},
	{
		name:    "clear cache",
		enabled: func(p *profile.Profile) bool { return p.ClearCache },
		resolve: fixedOp(batchops.OpClearCache),
	},
	{
		name:    "clear data",
		enabled: func(p *profile.Profile) bool { return p.ClearData },
		resolve: fixedOp(batchops.OpClearData),
	},
	{
		name:    "block/unblock trackers",
		enabled: func(p *profile.Profile) bool { return p.BlockTrackers },
		resolve: stateOp(batchops.OpBlockTrackers, batchops.OpUnblockTrackers),
	},
	{
		name:    "backup apk",
		enabled: func(p *profile.Profile) bool { return p.SaveAPK },
		resolve: fixedOp(batchops.OpBackupAPK),
	},
	{
		name:    "backup/restore",
		enabled: func(p *profile.Profile) bool { return p.BackupData != nil },
		resolve: stateOp(batchops.OpBackup, batchops.OpRestoreBackup),
		options: backupOptions,
	},
}

// expandTargets builds the package/user cross product as parallel
// slices, packages outer and users inner. Duplicate packages are kept.
func expandTargets(packages []string, userIDs []int) (pkgs []string, uids []int) {
	pkgs = make([]string, 0, len(packages)*len(userIDs))
	uids = make([]int, 0, len(packages)*len(userIDs))
	for _, pkg := range packages {
		for _, u := range userIDs {
			pkgs = append(pkgs, pkg)
			uids = append(uids, u)
		}
	}
	return pkgs, uids
}

// estimateProgress computes the total progress units of a run before it
// executes: one unit per enabled feature per target pair. Inert
// features never count.
func estimateProgress(p *profile.Profile, targets int) int {
	var ops int
	for _, fh := range featureHandlers {
		if !fh.inert && fh.enabled(p) {
			ops++
		}
	}
	return ops * targets
}
