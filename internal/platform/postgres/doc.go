// Package postgres owns the database connection pool and the transactional
// stored-procedure invocation helpers.
//
// The pool applies fixed session settings once per physical connection and
// exposes WithTransaction for the scoped-acquisition pattern: acquire,
// begin, run, commit-or-rollback, release, on every exit path.
//
// Procedures that return rows do so through a trailing INOUT refcursor
// parameter. CallProcedureReturningRows owns the cursor's whole lifecycle
// (open, fetch-all, close) inside a single transaction and hands back the
// decoded rows.
package postgres
