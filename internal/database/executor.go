package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Store executes SQL against the relational store in the three modes the
// repositories need. Queries carry @Name markers bound positionally to args
// (see Bind).
//
// Errors are the store's own errors wrapped with %w; this layer does not
// classify or translate them.
type Store interface {
	// ExecuteQuery returns the full tabular result.
	ExecuteQuery(ctx context.Context, query string, args ...any) (*Table, error)

	// ExecuteScalar returns the first column of the first row, or nil when
	// there is no row or the value is NULL.
	ExecuteScalar(ctx context.Context, query string, args ...any) (any, error)

	// ExecuteNonQuery returns the number of affected rows.
	ExecuteNonQuery(ctx context.Context, query string, args ...any) (int64, error)

	// InTx runs fn against a Store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise;
	// fn's error is returned unchanged.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

// Querier is the part of *pgxpool.Pool the Executor uses. pgx.Tx and
// *pgx.Conn satisfy it too.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Beginner starts transactions. *pgxpool.Pool and pgx.Tx (as a savepoint)
// implement it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ErrTxUnsupported is returned by InTx when the Querier cannot begin a
// transaction.
var ErrTxUnsupported = errors.New("store querier cannot begin transactions")

var (
	_ Store    = (*Executor)(nil)
	_ Querier  = (*pgxpool.Pool)(nil)
	_ Beginner = (*pgxpool.Pool)(nil)
)

// Executor is the Store backed by a pgx Querier.
//
// Against a pool each call borrows one connection and returns it when the
// call ends, error or not. There is no retry and no timeout beyond ctx.
type Executor struct {
	q             Querier
	log           *zerolog.Logger
	slowThreshold time.Duration
}

// NewExecutor returns an Executor over q. Calls slower than slowThreshold
// are logged at warn level; zero disables the check.
func NewExecutor(q Querier, logger *zerolog.Logger, slowThreshold time.Duration) *Executor {
	return &Executor{
		q:             q,
		log:           logger,
		slowThreshold: slowThreshold,
	}
}

// ExecuteQuery runs query and collects every row.
func (e *Executor) ExecuteQuery(ctx context.Context, query string, args ...any) (*Table, error) {
	bound, err := Bind(query, args)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := e.q.Query(ctx, bound.SQL, bound.Args...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	table := NewTable(columnNames(rows.FieldDescriptions())...)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		table.AddRow(values...)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}

	e.observe("query", bound, start, int64(table.Len()))
	return table, nil
}

// ExecuteScalar runs query and returns the first column of the first row.
func (e *Executor) ExecuteScalar(ctx context.Context, query string, args ...any) (any, error) {
	bound, err := Bind(query, args)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := e.q.Query(ctx, bound.SQL, bound.Args...)
	if err != nil {
		return nil, fmt.Errorf("execute scalar: %w", err)
	}
	defer rows.Close()

	var value any
	var found int64
	if rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read scalar: %w", err)
		}
		if len(values) > 0 {
			value = values[0]
		}
		found = 1
	}

	// Close drains the remaining rows so late errors surface in Err.
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("execute scalar: %w", err)
	}

	e.observe("scalar", bound, start, found)
	return value, nil
}

// ExecuteNonQuery runs a statement and reports the affected row count.
func (e *Executor) ExecuteNonQuery(ctx context.Context, query string, args ...any) (int64, error) {
	bound, err := Bind(query, args)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	tag, err := e.q.Exec(ctx, bound.SQL, bound.Args...)
	if err != nil {
		return 0, fmt.Errorf("execute non-query: %w", err)
	}

	e.observe("non_query", bound, start, tag.RowsAffected())
	return tag.RowsAffected(), nil
}

// InTx runs fn on one connection inside a transaction.
func (e *Executor) InTx(ctx context.Context, fn func(tx Store) error) error {
	b, ok := e.q.(Beginner)
	if !ok {
		return ErrTxUnsupported
	}

	return pgx.BeginFunc(ctx, b, func(tx pgx.Tx) error {
		return fn(&Executor{q: tx, log: e.log, slowThreshold: e.slowThreshold})
	})
}

func (e *Executor) observe(mode string, bound BoundQuery, start time.Time, rows int64) {
	if e.log == nil {
		return
	}

	elapsed := time.Since(start)

	event := e.log.Debug()
	if e.slowThreshold > 0 && elapsed > e.slowThreshold {
		event = e.log.Warn().Bool("slow", true)
	}

	event.
		Str("mode", mode).
		Strs("markers", bound.Markers).
		Int64("rows", rows).
		Dur("duration", elapsed).
		Msg("statement executed")
}

func columnNames(fields []pgconn.FieldDescription) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
