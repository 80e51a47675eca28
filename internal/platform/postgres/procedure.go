package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CallOptions adjusts how a procedure invocation runs.
type CallOptions struct {
	// StatementTimeout, when positive, is applied with SET LOCAL inside the
	// call's transaction so it covers the whole invocation (CALL, FETCH,
	// CLOSE) and resets automatically at commit or rollback.
	StatementTimeout time.Duration

	// Tx, when set, runs the invocation on a caller-managed transaction.
	// The helper then issues no BEGIN/COMMIT/ROLLBACK of its own (nesting
	// is never attempted) and releases nothing it did not acquire.
	Tx pgx.Tx
}

var (
	// Procedure names are restricted to optionally schema-qualified plain
	// identifiers; the name is interpolated into the CALL statement and
	// must never be attacker-controlled.
	procNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

	cursorSanitizeRegex = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// CallProcedureReturningRows invokes a stored procedure that returns its
// result set through a trailing INOUT refcursor parameter. The generated
// cursor name is appended as the final positional argument after params;
// callers supply only the procedure's own arguments.
//
// The whole lifecycle (optional SET LOCAL statement_timeout, CALL,
// FETCH ALL, CLOSE) happens inside one transaction. On success all decoded
// rows are returned and the transaction commits exactly once; on any
// failure the transaction is rolled back and the original error is
// returned. Rows are maps keyed by the column names the procedure's query
// produced, in result-set order.
func CallProcedureReturningRows(
	ctx context.Context,
	pool *Pool,
	procName string,
	params []any,
	opts CallOptions,
) ([]map[string]any, error) {
	if err := validateProcName(procName); err != nil {
		return nil, err
	}

	var rows []map[string]any
	run := func(tx pgx.Tx) error {
		if err := applyLocalTimeout(ctx, tx, opts); err != nil {
			return err
		}

		cursor := newCursorName()
		args := make([]any, 0, len(params)+1)
		args = append(args, params...)
		args = append(args, cursor)

		if _, err := tx.Exec(ctx, buildCallSQL(procName, len(args)), args...); err != nil {
			return fmt.Errorf("call %s: %w", procName, MapError(err))
		}

		res, err := tx.Query(ctx, "FETCH ALL FROM "+cursor)
		if err != nil {
			return fmt.Errorf("fetch from cursor %s: %w", cursor, MapError(err))
		}
		rows, err = pgx.CollectRows(res, pgx.RowToMap)
		if err != nil {
			return fmt.Errorf("decode cursor rows: %w", MapError(err))
		}

		// The cursor must be closed before its owning transaction commits.
		if _, err := tx.Exec(ctx, "CLOSE "+cursor); err != nil {
			return fmt.Errorf("close cursor %s: %w", cursor, MapError(err))
		}
		return nil
	}

	if opts.Tx != nil {
		if err := run(opts.Tx); err != nil {
			return nil, err
		}
		return rows, nil
	}

	if err := pool.WithTransaction(ctx, run); err != nil {
		return nil, err
	}
	return rows, nil
}

// CallProcedureNoCursor invokes a side-effecting stored procedure that
// returns no result set. Same transactional envelope and timeout handling
// as CallProcedureReturningRows, without the cursor argument.
func CallProcedureNoCursor(
	ctx context.Context,
	pool *Pool,
	procName string,
	params []any,
	opts CallOptions,
) error {
	if err := validateProcName(procName); err != nil {
		return err
	}

	run := func(tx pgx.Tx) error {
		if err := applyLocalTimeout(ctx, tx, opts); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, buildCallSQL(procName, len(params)), params...); err != nil {
			return fmt.Errorf("call %s: %w", procName, MapError(err))
		}
		return nil
	}

	if opts.Tx != nil {
		return run(opts.Tx)
	}
	return pool.WithTransaction(ctx, run)
}

// CallProcedureReturningRows on the pool receiver exists so services can
// depend on a narrow interface instead of the concrete pool.
func (p *Pool) CallProcedureReturningRows(
	ctx context.Context,
	procName string,
	params []any,
	opts CallOptions,
) ([]map[string]any, error) {
	return CallProcedureReturningRows(ctx, p, procName, params, opts)
}

// CallProcedureNoCursor mirrors the package-level function on the pool.
func (p *Pool) CallProcedureNoCursor(
	ctx context.Context,
	procName string,
	params []any,
	opts CallOptions,
) error {
	return CallProcedureNoCursor(ctx, p, procName, params, opts)
}

func applyLocalTimeout(ctx context.Context, tx pgx.Tx, opts CallOptions) error {
	if opts.StatementTimeout <= 0 {
		return nil
	}
	stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", opts.StatementTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("set local statement_timeout: %w", MapError(err))
	}
	return nil
}

func validateProcName(procName string) error {
	if !procNameRegex.MatchString(procName) {
		return fmt.Errorf("%w: %q", ErrInvalidProcedureName, procName)
	}
	return nil
}

// buildCallSQL renders "CALL name($1,...,$n)" for n positional arguments.
func buildCallSQL(procName string, argCount int) string {
	placeholders := make([]string, argCount)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("CALL %s(%s)", procName, strings.Join(placeholders, ","))
}

// newCursorName produces a cursor name unique across concurrent
// invocations with high probability. Cursor names are session-scoped, but
// pooled connections are shared across overlapping calls, so collisions
// must be impossible in practice. The result matches [A-Za-z0-9_]+.
func newCursorName() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name := fmt.Sprintf("cur_%d_%s", time.Now().UnixNano(), suffix)
	return cursorSanitizeRegex.ReplaceAllString(name, "_")
}
