// Package postgres provides connection-per-request access to the shared
// properties database. Every invocation opens a fresh connection, runs the
// caller's operation, and closes the connection on all exit paths.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/core/domain"
)

const connectTimeout = 5 * time.Second

// Config captures the connection settings read from the environment.
// The password is resolved separately through the credential source.
type Config struct {
	Host     string
	Port     string
	Name     string
	Username string
	SSLMode  string
}

// CredentialSource supplies the database password. Implemented by
// secrets.Resolver.
type CredentialSource interface {
	Password(ctx context.Context) (string, error)
}

// Gateway opens one backend connection per invocation. No pooling: the
// handle is capped at a single connection and closed before returning.
type Gateway struct {
	cfg   Config
	creds CredentialSource
	log   zerolog.Logger

	// open is swapped out in tests to avoid a real Postgres dial.
	open func(dsn string) (*sql.DB, error)
}

func NewGateway(cfg Config, creds CredentialSource, log zerolog.Logger) *Gateway {
	return &Gateway{
		cfg:   cfg,
		creds: creds,
		log:   log,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("postgres", dsn)
		},
	}
}

// connect validates config, resolves the credential, and dials the backend.
// Every failure on this path classifies as ErrConnectionUnavailable.
func (g *Gateway) connect(ctx context.Context) (*sql.DB, error) {
	if g.cfg.Host == "" || g.cfg.Name == "" || g.cfg.Username == "" {
		return nil, fmt.Errorf("%w: DB_HOST, DB_NAME and DB_USERNAME must be set", domain.ErrConnectionUnavailable)
	}

	password, err := g.creds.Password(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err)
	}

	port := g.cfg.Port
	if port == "" {
		port = "5432"
	}
	sslMode := g.cfg.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s connect_timeout=5",
		g.cfg.Host, port, g.cfg.Name, g.cfg.Username, password, sslMode,
	)

	db, err := g.open(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		g.log.Error().Err(err).Str("host", g.cfg.Host).Msg("error connecting to db")
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err)
	}

	return db, nil
}

// WithConn runs op against a fresh connection and guarantees the connection
// is closed when op returns. Errors raised by op classify as ErrQueryFailed
// unless already classified.
func (g *Gateway) WithConn(ctx context.Context, op func(db *sql.DB) error) error {
	db, err := g.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := op(db); err != nil {
		return classifyQueryError(err)
	}
	return nil
}

// WithTx runs op inside a transaction on a fresh connection. On success the
// transaction commits before the connection is released; on any error it
// rolls back and the original error is re-surfaced.
func (g *Gateway) WithTx(ctx context.Context, op func(tx *sql.Tx) error) error {
	db, err := g.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	if err := op(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			g.log.Error().Err(rbErr).Msg("rollback failed")
		}
		return classifyQueryError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	return nil
}

func classifyQueryError(err error) error {
	if errors.Is(err, domain.ErrQueryFailed) || errors.Is(err, domain.ErrNoData) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
}
