// Package remote implements a batch operation executor backed by a remote
// device agent over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sandeshkamboj/AppManager/batchops"
	"github.com/sandeshkamboj/AppManager/logkeys"

	"github.com/micromdm/nanolib/log"
)

// apiUsername is the HTTP Basic authentication username sent to the agent.
const apiUsername = "appmanager"

var ErrNoURL = errors.New("empty agent URL")

// request is the JSON document POSTed to the agent for each batch operation.
type request struct {
	Op       string           `json:"op"`
	Packages []string         `json:"packages"`
	Users    []int            `json:"users,omitempty"`
	Options  batchops.Options `json:"options,omitempty"`
}

// Doer executes HTTP requests.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Executor sends batch operations to a device agent endpoint.
type Executor struct {
	url    string
	apiKey string
	client Doer
	logger log.Logger
}

type Option func(*Executor)

// WithLogger sets a logger for the executor.
func WithLogger(logger log.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithClient sets the HTTP client used for agent requests.
func WithClient(client Doer) Option {
	return func(e *Executor) {
		e.client = client
	}
}

// New creates a new remote executor talking to the agent at url.
// The API key is sent using HTTP Basic authentication.
func New(url, apiKey string, opts ...Option) (*Executor, error) {
	if url == "" {
		return nil, ErrNoURL
	}
	e := &Executor{
		url:    url,
		apiKey: apiKey,
		client: http.DefaultClient,
		logger: log.NopLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Execute POSTs info to the agent and decodes the operation result.
// A no-op operation is sent to the agent like any other; the agent is
// expected to report it as successful.
func (e *Executor) Execute(ctx context.Context, info *batchops.Info) (*batchops.Result, error) {
	if info == nil {
		return nil, errors.New("invalid info")
	}
	body, err := json.Marshal(&request{
		Op:       info.Op.String(),
		Packages: info.Packages,
		Users:    info.Users,
		Options:  info.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(apiUsername, e.apiKey)
	e.logger.Debug(
		logkeys.Message, "sending operation",
		logkeys.Operation, info.Op,
		logkeys.GenericCount, len(info.Packages),
	)
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}
	result := new(batchops.Result)
	if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return result, nil
}

// Release closes idle connections to the agent.
func (e *Executor) Release() {
	if client, ok := e.client.(*http.Client); ok {
		client.CloseIdleConnections()
	}
}
