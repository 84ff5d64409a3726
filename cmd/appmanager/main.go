// Package main starts an AppManager profile server.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/sandeshkamboj/AppManager/batchops/remote"
	"github.com/sandeshkamboj/AppManager/engine"
	enginehttp "github.com/sandeshkamboj/AppManager/engine/http"
	"github.com/sandeshkamboj/AppManager/logkeys"
	"github.com/sandeshkamboj/AppManager/proflog"
	profhttp "github.com/sandeshkamboj/AppManager/subsystem/profile/http"
	"github.com/sandeshkamboj/AppManager/users"

	"github.com/alexedwards/flow"
	"github.com/micromdm/nanolib/envflag"
	nanohttp "github.com/micromdm/nanolib/http"
	"github.com/micromdm/nanolib/http/trace"
	"github.com/micromdm/nanolib/log/stdlogfmt"
)

// overridden by -ldflags -X
var version = "unknown"

const (
	apiUsername = "appmanager"
	apiRealm    = "appmanager"
)

func main() {
	var (
		flDebug   = flag.Bool("debug", false, "log debug messages")
		flListen  = flag.String("listen", ":9004", "HTTP listen address")
		flVersion = flag.Bool("version", false, "print version and exit")
		flAPIKey  = flag.String("api", "", "API key for API endpoints")
		flExecURL = flag.String("exec-url", "", "URL of device agent batch operation endpoint")
		flExecAPI = flag.String("exec-api", "", "device agent API key")
		flStorage = flag.String("storage", "file", "name of storage backend")
		flDSN     = flag.String("storage-dsn", "", "data source name (e.g. connection string or path)")
		flUsers   = flag.String("users", "0", "comma-separated user IDs profiles apply to by default")
		flActing  = flag.Int("acting-user", 0, "user ID the server acts as")
		flRunLogs = flag.String("run-log-dir", "", "directory for per-profile execution logs")
	)
	envflag.Parse("APPMANAGER_", []string{"version"})

	if *flVersion {
		fmt.Println(version)
		return
	}

	logger := stdlogfmt.New(stdlogfmt.WithDebugFlag(*flDebug))

	if *flExecURL == "" || *flExecAPI == "" {
		logger.Info(logkeys.Error, "exec URL and API required")
		os.Exit(1)
	}

	// configure storage
	storage, err := parseStorage(*flStorage, *flDSN)
	if err != nil {
		logger.Info(logkeys.Message, "parse storage", logkeys.Error, err)
		os.Exit(1)
	}

	// configure the executor, i.e. how batch operations reach the device
	exec, err := remote.New(*flExecURL, *flExecAPI, remote.WithLogger(logger.With("service", "executor")))
	if err != nil {
		logger.Info(logkeys.Message, "creating executor", logkeys.Error, err)
		os.Exit(1)
	}

	userIDs, err := users.ParseList(*flUsers)
	if err != nil {
		logger.Info(logkeys.Message, "parsing user list", logkeys.Error, err)
		os.Exit(1)
	}

	// configure the profile-execution engine
	eOpts := []engine.Option{
		engine.WithLogger(logger.With("service", "engine")),
		engine.WithUserRegistry(users.NewStatic(userIDs...)),
		engine.WithActingUser(*flActing),
	}
	if *flRunLogs != "" {
		dir := *flRunLogs
		eOpts = append(eOpts, engine.WithRunLogOpener(func(profileID string) (proflog.Logger, error) {
			return proflog.NewFile(dir, profileID)
		}))
	}
	e := engine.New(storage.profile, exec, eOpts...)

	mux := flow.New()

	mux.Handle("/version", nanohttp.NewJSONVersionHandler(version))

	if *flAPIKey != "" {
		mux.Group(func(mux *flow.Mux) {
			mux.Use(func(h http.Handler) http.Handler {
				return nanohttp.NewSimpleBasicAuthHandler(h, apiUsername, *flAPIKey, apiRealm)
			})

			profhttp.HandleAPIv1("/v1", mux, logger, storage.profile)
			enginehttp.HandleAPIv1("/v1", mux, logger, e)
		})
	}

	// seed for newTraceID
	rand.Seed(time.Now().UnixNano())

	logger.Info(logkeys.Message, "starting server", "listen", *flListen)
	err = http.ListenAndServe(*flListen, trace.NewTraceLoggingHandler(mux, logger.With("handler", "log"), newTraceID))
	logs := []interface{}{logkeys.Message, "server shutdown"}
	if err != nil {
		logs = append(logs, logkeys.Error, err)
	}
	logger.Info(logs...)
}

// newTraceID generates a new HTTP trace ID for context logging.
// Currently this just makes a random string. This would be better
// served by e.g. https://github.com/oklog/ulid or something like
// https://opentelemetry.io/ someday.
func newTraceID(_ *http.Request) string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
