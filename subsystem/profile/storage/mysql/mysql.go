// Package mysql implements a MySQL storage backend for the Profile subsystem.
package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/sandeshkamboj/AppManager/profile"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"
)

// Schema contains the MySQL schema for the profile storage.
//
//go:embed schema.sql
var Schema string

// MySQLStorage implements a storage.Storage using MySQL.
type MySQLStorage struct {
	db *sql.DB
}

type config struct {
	driver string
	dsn    string
	db     *sql.DB
}

// Option allows configuring a MySQLStorage.
type Option func(*config)

// WithDSN sets the storage MySQL data source name.
func WithDSN(dsn string) Option {
	return func(c *config) {
		c.dsn = dsn
	}
}

// WithDriver sets a custom MySQL driver for the storage.
// Default driver is "mysql" but is ignored if WithDB is used.
func WithDriver(driver string) Option {
	return func(c *config) {
		c.driver = driver
	}
}

// WithDB sets a custom MySQL *sql.DB to the storage.
// If set, driver passed via WithDriver is ignored.
func WithDB(db *sql.DB) Option {
	return func(c *config) {
		c.db = db
	}
}

// New creates and returns a new MySQLStorage.
func New(opts ...Option) (*MySQLStorage, error) {
	cfg := &config{driver: "mysql"}
	for _, opt := range opts {
		opt(cfg)
	}
	var err error
	if cfg.db == nil {
		cfg.db, err = sql.Open(cfg.driver, cfg.dsn)
		if err != nil {
			return nil, err
		}
	}
	if err = cfg.db.Ping(); err != nil {
		return nil, err
	}
	return &MySQLStorage{db: cfg.db}, nil
}

// RetrieveRawProfile returns the raw profile document by ID from MySQL.
func (s *MySQLStorage) RetrieveRawProfile(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, storage.ErrNoID
	}
	var raw []byte
	err := s.db.QueryRowContext(
		ctx,
		`SELECT document FROM profiles WHERE id = ?;`,
		id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrProfileNotFound, id)
	}
	return raw, err
}

// RetrieveProfile returns the parsed profile by ID from MySQL.
func (s *MySQLStorage) RetrieveProfile(ctx context.Context, id string) (*profile.Profile, error) {
	raw, err := s.RetrieveRawProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.Parse(raw)
}

// RetrieveProfileSummaries returns summaries of every profile stored in MySQL.
func (s *MySQLStorage) RetrieveProfileSummaries(ctx context.Context) ([]profile.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, document FROM profiles;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var summaries []profile.Summary
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err = rows.Scan(&id, &raw); err != nil {
			return summaries, err
		}
		p, err := profile.Parse(raw)
		if err != nil {
			return summaries, fmt.Errorf("parsing %s: %w", id, err)
		}
		summaries = append(summaries, p.Summary())
	}
	return summaries, rows.Err()
}

// StoreProfile stores a profile document in MySQL keyed by its ID.
func (s *MySQLStorage) StoreProfile(ctx context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.db.ExecContext(
		ctx, `
INSERT INTO profiles
	(id, name, document)
VALUES
	(?, ?, ?) as new
ON DUPLICATE KEY UPDATE
	name = new.name,
	document = new.document;`,
		p.ID,
		p.Name,
		raw,
	)
	return err
}

// DeleteProfile deletes a profile from MySQL by ID.
func (s *MySQLStorage) DeleteProfile(ctx context.Context, id string) error {
	if id == "" {
		return storage.ErrNoID
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	ct, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if ct < 1 {
		return fmt.Errorf("%w: %s", storage.ErrProfileNotFound, id)
	}
	return nil
}
