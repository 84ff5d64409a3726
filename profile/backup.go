package profile

// BackupFlags is the bit set controlling what a backup contains and how
// a restore addresses it.
type BackupFlags int

const BackupNothing BackupFlags = 0

const (
	BackupAPKFiles BackupFlags = 1 << iota
	BackupInternalData
	BackupExternalData
	BackupRules
	// BackupMultiple keeps multiple named backups per package instead of
	// a single unnamed one.
	BackupMultiple
	// BackupCustomUsers scopes a backup to explicitly named users.
	BackupCustomUsers
)

// Multiple reports whether multiple named backups are requested.
func (f BackupFlags) Multiple() bool { return f&BackupMultiple != 0 }

// CustomUsers reports whether per-user backup scoping is requested.
func (f BackupFlags) CustomUsers() bool { return f&BackupCustomUsers != 0 }

// With returns f with o added.
func (f BackupFlags) With(o BackupFlags) BackupFlags { return f | o }
