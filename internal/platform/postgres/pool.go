package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/we-edu/enrollment-api/internal/config"
	"github.com/we-edu/enrollment-api/internal/platform/logger"
)

// Pool wraps a pgxpool.Pool with the acquisition timeout and transactional
// helper the rest of the application relies on. Pool capacity is the only
// throttling resource: requests beyond capacity queue for a connection up
// to AcquireTimeout and then fail with ErrAcquireTimeout.
type Pool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// NewPool establishes a connection pool from the database configuration.
// Session initialization (timezone, application_name, and optionally a
// global statement_timeout) runs once per physical connection, not per
// lease.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	pc, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.AcquireTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Pool{pool: pool, acquireTimeout: cfg.AcquireTimeout}, nil
}

// buildPoolConfig translates the application configuration into a pgxpool
// configuration, including the per-physical-connection session setup hook.
func buildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime

	stmts := sessionStatements(cfg)
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for _, stmt := range stmts {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("session setup %q: %w", stmt, err)
			}
		}
		return nil
	}

	return pc, nil
}

// sessionStatements builds the SET statements applied to every new physical
// connection. SET does not accept bind parameters, so values are quoted as
// literals.
func sessionStatements(cfg config.DatabaseConfig) []string {
	var stmts []string
	if cfg.ApplicationName != "" {
		stmts = append(stmts, "SET application_name = "+quoteLiteral(cfg.ApplicationName))
	}
	if cfg.Timezone != "" {
		stmts = append(stmts, "SET TIME ZONE "+quoteLiteral(cfg.Timezone))
	}
	if cfg.StatementTimeout > 0 {
		stmts = append(stmts, fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()))
	}
	return stmts
}

// quoteLiteral quotes s as a Postgres string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Acquire checks out a connection, waiting at most the configured acquire
// timeout. The caller must Release the returned connection on every exit
// path.
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		if acquireCtx.Err() != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %v", ErrAcquireTimeout, err)
		}
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// WithTransaction acquires a connection, runs fn inside a transaction, and
// commits when fn returns nil. On any error the transaction is rolled back
// best-effort: a rollback failure is logged but never masks the original
// error. The connection is released on all paths.
func (p *Pool) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// rollback rolls the transaction back and logs (but discards) any failure
// so the triggering error propagates unchanged.
func rollback(ctx context.Context, tx pgx.Tx) {
	// Rollback must still be attempted when the request context is already
	// canceled, otherwise the aborted transaction pins the connection.
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && err != pgx.ErrTxClosed {
		logger.FromContext(ctx).Error("failed to roll back transaction", "error", err)
	}
}

// Close shuts the pool down, waiting for checked-out connections to be
// released.
func (p *Pool) Close() {
	p.pool.Close()
}
