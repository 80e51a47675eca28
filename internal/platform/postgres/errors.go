package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to procedure invocation.
const (
	// queryCanceledCode is raised when a statement_timeout fires.
	queryCanceledCode = "57014"

	// undefinedFunctionCode is raised when the named procedure does not
	// exist or its signature does not match the supplied arguments.
	undefinedFunctionCode = "42883"

	// invalidCursorNameCode is raised when fetching from or closing a
	// cursor the server does not know.
	invalidCursorNameCode = "34000"
)

// Sentinel errors returned by the pool and procedure helpers.
var (
	// ErrAcquireTimeout indicates no pooled connection became available
	// within the configured acquisition timeout.
	ErrAcquireTimeout = errors.New("connection pool acquire timeout")

	// ErrStatementTimeout indicates the database canceled the call because
	// the statement timeout elapsed.
	ErrStatementTimeout = errors.New("statement timeout exceeded")

	// ErrProcedureNotFound indicates the procedure name or argument
	// signature does not match anything in the database.
	ErrProcedureNotFound = errors.New("procedure not found")

	// ErrInvalidProcedureName is returned before touching the database
	// when the procedure name is not a plain (optionally schema-qualified)
	// identifier.
	ErrInvalidProcedureName = errors.New("invalid procedure name")

	// ErrCursorClosed indicates a fetch or close on a cursor the server no
	// longer holds, typically after an error aborted the transaction.
	ErrCursorClosed = errors.New("cursor closed or unknown")
)

// MapError maps a pgx error to one of the package sentinels while
// preserving the original error for debugging. Errors without a specific
// mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case queryCanceledCode:
			return fmt.Errorf("%w: %w", ErrStatementTimeout, err)
		case undefinedFunctionCode:
			return fmt.Errorf("%w: %w", ErrProcedureNotFound, err)
		case invalidCursorNameCode:
			return fmt.Errorf("%w: %w", ErrCursorClosed, err)
		}
	}

	return err
}
