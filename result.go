package xpgsql

import (
	"slices"

	"github.com/jackc/pgx/v5/pgconn"
)

// Result is an immutable snapshot of one statement execution: status, field
// names, row values and the command tag. It is fully materialized; the
// driver cursor is closed before a Result is returned.
type Result struct {
	status Status
	fields []string
	rows   [][]any
	tag    pgconn.CommandTag
}

// Status returns the execution status: StatusTuplesOK for row-returning
// statements, StatusCommandOK for commands.
func (r *Result) Status() Status { return r.status }

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.rows) }

// Fields returns the column names, in field-index order.
func (r *Result) Fields() []string { return slices.Clone(r.fields) }

// Value returns the cell value at the given zero-based row and column.
func (r *Result) Value(row, col int) any { return r.rows[row][col] }

// RowsAffected returns the number of rows the statement affected.
func (r *Result) RowsAffected() int64 { return r.tag.RowsAffected() }

// CommandTag returns the driver's command tag.
func (r *Result) CommandTag() pgconn.CommandTag { return r.tag }

// record decodes one row into a Record, writing cells in field-index order
// so that for duplicate column names the later index wins.
func (r *Result) record(row int) Record {
	rec := make(Record, len(r.fields))
	for i, name := range r.fields {
		rec[name] = r.rows[row][i]
	}
	return rec
}
