// Package remote is the client for the canonical record store, a Postgres
// database reached over the network. It is authoritative whenever reachable;
// every read and write is mirrored into the local cache by the record stores.
package remote

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/migration"
	"github.com/daybook-app/daybook/migrations"
)

type Client struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Client {
	c := &Client{
		connStr: connStr,
	}
	c.ensureSearchPath()
	return c
}

func (c *Client) ensureSearchPath() {
	// Scope all tables to the app schema in the connection string
	if strings.HasPrefix(c.connStr, "postgres://") || strings.HasPrefix(c.connStr, "postgresql://") {
		u, err := url.Parse(c.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			c.connStr = u.String()
		}
	} else {
		if !hasDSNParam(c.connStr, "search_path") {
			c.connStr = strings.TrimSpace(c.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasDSNParam reports whether a DSN-style connection string contains the given
// parameter key (case-insensitive).
func hasDSNParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that a connection string is a valid PostgreSQL
// URI or DSN and that it carries no embedded password. Credentials belong in
// the environment, .pgpass, or the OS keyring.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if HasEmbeddedCredentials(connStr) {
		return false, ErrEmbeddedCredentials
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether a URI or DSN connection string
// carries an inline password.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, isSet := u.User.Password(); isSet {
				return true
			}
		}
		return false
	}

	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return true
		}
	}
	return false
}

// Init opens the connection, creates the app schema and applies migrations.
func (c *Client) Init() error {
	db, err := sql.Open("postgres", c.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	c.db = db

	if err := c.runMigrations(); err != nil {
		return err
	}

	return nil
}

// Open connects without running migrations and validates the schema version.
func (c *Client) Open() error {
	if c.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", c.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.db = db

	return c.validateSchemaVersion()
}

func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Client) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(c.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (c *Client) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(c.db, subFS)
	return runner.ValidateVersion()
}
