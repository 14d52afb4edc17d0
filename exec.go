package xpgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Query executes a row-returning statement (SELECT, or anything with a
// RETURNING clause) with positional $1, $2, ... parameters and returns its
// Result. A statement that returns no rows fails with a mismatched-status
// error; use Exec for commands.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (*Result, error) {
	return c.execute(ctx, sql, StatusTuplesOK, args...)
}

// Exec executes a command that returns no rows (INSERT, UPDATE, DDL, ...)
// with positional $1, $2, ... parameters and returns its Result. A statement
// that returns rows fails with a mismatched-status error; use Query for
// those.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (*Result, error) {
	return c.execute(ctx, sql, StatusCommandOK, args...)
}

// execute is the single statement path: it sends the statement, materializes
// the result and classifies the outcome against the expected status.
//
// Failure classes, in order: closed connection (usage error, unshaped),
// connection-level failure (no result; shaped), statement failure (driver
// diagnostics; shaped), mismatched result status (shaped).
func (c *Conn) execute(ctx context.Context, sql string, want Status, args ...any) (*Result, error) {
	if c.raw == nil {
		return nil, ErrConnClosed
	}

	rows, err := c.raw.Query(ctx, sql, args...)
	if err != nil {
		return nil, shapeWith(c.shaper, statusError(err))
	}

	res, err := collectResult(rows)
	if err != nil {
		return nil, shapeWith(c.shaper, statusError(err))
	}

	if res.status != want {
		return nil, shapeWith(c.shaper, &StatusError{
			Message: fmt.Sprintf("unexpected result status %s (want %s)", res.status, want),
			Status:  res.status,
		})
	}
	return res, nil
}

// collectResult drains the driver cursor into a Result. The cursor is always
// closed, and a close/iteration error is reported in place of a partial
// result.
func collectResult(rows pgx.Rows) (*Result, error) {
	defer rows.Close()

	descs := rows.FieldDescriptions()
	fields := make([]string, len(descs))
	for i, fd := range descs {
		fields[i] = fd.Name
	}

	var data [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// CommandTag is valid only once the cursor is fully drained and closed.
	rows.Close()

	status := StatusCommandOK
	if len(fields) > 0 {
		status = StatusTuplesOK
	}
	return &Result{
		status: status,
		fields: fields,
		rows:   data,
		tag:    rows.CommandTag(),
	}, nil
}
