// Package logkeys defines some static logging keys for consistent structured logging output.
// Mostly exists as a mental aid when drafting log messages.
package logkeys

const (
	Message = "msg"
	Error   = "err"

	ProfileID   = "profile_id"
	ProfileName = "profile_name"

	// an identifier for one engine run of a profile.
	RunID = "run_id"

	// the desired state a profile is applied with ("on" or "off").
	State = "state"

	Feature   = "feature"
	Operation = "op"

	// a context-dependent numerical count/length of something
	GenericCount = "count"
)
