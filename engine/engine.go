// Package engine implements the profile-execution engine: it compiles a
// profile document into an ordered sequence of batched operations and
// drives them through a batch operations executor.
package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandeshkamboj/AppManager/batchops"
	"github.com/sandeshkamboj/AppManager/logkeys"
	"github.com/sandeshkamboj/AppManager/profile"
	"github.com/sandeshkamboj/AppManager/proflog"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"
	"github.com/sandeshkamboj/AppManager/users"
	"github.com/sandeshkamboj/AppManager/utils/uuid"

	"github.com/micromdm/nanolib/log"
	"github.com/micromdm/nanolib/log/ctxlog"
)

// ProgressSinks receive the total expected work of a run before any
// operation executes. Operations are batched by the executor, so
// per-feature increments are not reported at this layer.
type ProgressSink interface {
	SetTotal(total, current int)
}

type nopProgress struct{}

func (nopProgress) SetTotal(int, int) {}

// NopProgress discards progress updates.
var NopProgress ProgressSink = nopProgress{}

// UserRegistry resolves the full set of system users a profile applies
// to when it does not name an explicit subset.
type UserRegistry interface {
	UserIDs(ctx context.Context) ([]int, error)
}

// RunLogOpener opens the append-only execution log for one profile run.
type RunLogOpener func(profileID string) (proflog.Logger, error)

// Engine applies profiles by delegating batched operations to an executor.
type Engine struct {
	store      storage.ReadStorage
	exec       batchops.Executor
	users      UserRegistry
	logger     log.Logger
	ider       uuid.IDer
	openLog    RunLogOpener
	actingUser int
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithUserRegistry sets the registry used to resolve "all users."
func WithUserRegistry(registry UserRegistry) Option {
	return func(e *Engine) {
		e.users = registry
	}
}

// WithRunLogOpener configures per-run execution logs.
// A failed open never blocks a run; it degrades to no logging.
func WithRunLogOpener(open RunLogOpener) Option {
	return func(e *Engine) {
		e.openLog = open
	}
}

// WithActingUser sets the user ID the engine acts as.
// Restores of named multiple-backups are addressed per acting user.
func WithActingUser(id int) Option {
	return func(e *Engine) {
		e.actingUser = id
	}
}

// New creates a new profile-execution engine with default configurations.
func New(store storage.ReadStorage, exec batchops.Executor, opts ...Option) *Engine {
	engine := &Engine{
		store:   store,
		exec:    exec,
		users:   users.NewStatic(),
		logger:  log.NopLogger,
		ider:    uuid.NewUUID(),
		openLog: func(string) (proflog.Logger, error) { return proflog.Nop(), nil },
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// ApplyProfile loads the profile by ID and executes it with the given
// desired state; an empty state uses the profile's declared state.
//
// Features execute one at a time in a fixed order, each attempted
// exactly once. A feature's failure is logged and never stops the
// features after it. The returned bool reports whether the host
// requires a restart for all applied changes to take effect.
func (e *Engine) ApplyProfile(ctx context.Context, profileID string, state profile.State, progress ProgressSink) (bool, error) {
	logger := ctxlog.Logger(ctx, e.logger).With(
		logkeys.ProfileID, profileID,
		logkeys.RunID, e.ider.ID(),
	)
	if progress == nil {
		progress = NopProgress
	}

	rlog, err := e.openLog(profileID)
	if err != nil {
		logger.Info(logkeys.Message, "opening run log", logkeys.Error, err)
		rlog = proflog.Nop()
	}
	defer func() {
		if err := rlog.Close(); err != nil {
			logger.Info(logkeys.Message, "closing run log", logkeys.Error, err)
		}
	}()

	p, err := e.store.RetrieveProfile(ctx, profileID)
	if err != nil {
		rlog.PrintlnError("", err)
		return false, fmt.Errorf("retrieving profile %s: %w", profileID, err)
	}

	if state == "" {
		state = p.State
	}
	logger = logger.With(logkeys.State, state)

	rlog.Println("====> Started execution with state " + string(state))

	if len(p.Packages) == 0 {
		// nothing to apply; not an error
		logger.Debug(logkeys.Message, "no packages in profile")
		return false, nil
	}

	userIDs := p.Users
	if len(userIDs) == 0 {
		if userIDs, err = e.users.UserIDs(ctx); err != nil {
			rlog.PrintlnError("resolving users", err)
			return false, fmt.Errorf("resolving user IDs: %w", err)
		}
	}

	pkgs, uids := expandTargets(p.Packages, userIDs)
	progress.SetTotal(estimateProgress(p, len(pkgs)), 0)

	defer e.exec.Release()

	var requiresRestart bool
	for _, fh := range featureHandlers {
		flog := logger.With(logkeys.Feature, fh.name)
		if !fh.enabled(p) {
			flog.Debug(logkeys.Message, "skipped")
			continue
		}
		if fh.inert {
			rlog.Println("====> Not implemented " + fh.name + ".")
			continue
		}
		rlog.Println("====> Started " + fh.name + ". State: " + string(state))
		info := &batchops.Info{
			Op:       fh.resolve(state),
			Packages: pkgs,
			Users:    uids,
		}
		if fh.options != nil {
			info.Options = fh.options(p, state, e.actingUser)
		}
		result, err := e.exec.Execute(ctx, info)
		if err != nil {
			rlog.PrintlnError(fh.name, err)
			flog.Info(
				logkeys.Message, "executing batch operation",
				logkeys.Operation, info.Op,
				logkeys.Error, err,
			)
			continue
		}
		requiresRestart = requiresRestart || result.RequiresRestart
		if !result.Successful() {
			rlog.Println(fh.name + ": " + strconv.Itoa(len(result.Failures)) + " failed packages")
			flog.Debug(
				logkeys.Message, "batch operation partially failed",
				logkeys.Operation, info.Op,
				logkeys.GenericCount, len(result.Failures),
			)
		}
	}

	rlog.Println("====> Execution completed.")
	return requiresRestart, nil
}
