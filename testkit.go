package xpgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotMocked is returned when a TestDriver method is called without a
// corresponding Func field set.
var ErrNotMocked = errors.New("xpgsql.TestDriver: method not mocked — set the corresponding Func field")

// TestDriver is a mock Driver implementation for unit tests.
//
// EscapeString defaults to doubling single quotes, matching the server's
// behavior under standard_conforming_strings; Ping and Close default to
// success.
type TestDriver struct {
	QueryFunc        func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	EscapeStringFunc func(s string) (string, error)
	PingFunc         func(ctx context.Context) error
	CloseFunc        func(ctx context.Context) error
}

var _ Driver = (*TestDriver)(nil)

func (d *TestDriver) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if d.QueryFunc != nil {
		return d.QueryFunc(ctx, sql, args...)
	}
	return &ErrRows{ErrValue: ErrNotMocked}, ErrNotMocked
}

func (d *TestDriver) EscapeString(s string) (string, error) {
	if d.EscapeStringFunc != nil {
		return d.EscapeStringFunc(s)
	}
	return strings.ReplaceAll(s, "'", "''"), nil
}

func (d *TestDriver) Ping(ctx context.Context) error {
	if d.PingFunc != nil {
		return d.PingFunc(ctx)
	}
	return nil
}

func (d *TestDriver) Close(ctx context.Context) error {
	if d.CloseFunc != nil {
		return d.CloseFunc(ctx)
	}
	return nil
}

// ErrRows implements pgx.Rows and always returns the configured error.
type ErrRows struct {
	// ErrValue is returned by Err(), Scan(), and Values().
	ErrValue error
}

func (r *ErrRows) Close()                                       {}
func (r *ErrRows) Err() error                                   { return r.ErrValue }
func (r *ErrRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *ErrRows) Conn() *pgx.Conn                              { return nil }
func (r *ErrRows) RawValues() [][]byte                          { return nil }
func (r *ErrRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *ErrRows) Next() bool                                   { return false }
func (r *ErrRows) Values() ([]any, error)                       { return nil, r.ErrValue }

func (r *ErrRows) Scan(dest ...any) error {
	if r.ErrValue != nil {
		return r.ErrValue
	}
	return fmt.Errorf("xpgsql.ErrRows: Scan called with nil ErrValue")
}

// NewCommandRows returns a pgx.Rows cursor for a command that returns no
// tuples, carrying the given command tag (for example "INSERT 0 1").
func NewCommandRows(commandTag string) pgx.Rows {
	return &fakeRows{tag: pgconn.NewCommandTag(commandTag), idx: -1}
}

// RowsBuilder builds pgx.Rows backed by in-memory rows.
type RowsBuilder struct {
	columns []string
	rows    [][]any
	tag     pgconn.CommandTag
}

// NewRows creates a new RowsBuilder with the given column names.
func NewRows(columns ...string) *RowsBuilder {
	return &RowsBuilder{columns: columns}
}

// AddRow appends a row. It panics on arity mismatch.
func (b *RowsBuilder) AddRow(values ...any) *RowsBuilder {
	if len(values) != len(b.columns) {
		panic("xpgsql.RowsBuilder: column count mismatch")
	}
	b.rows = append(b.rows, values)
	return b
}

// Tag sets the command tag reported after the cursor is drained.
func (b *RowsBuilder) Tag(commandTag string) *RowsBuilder {
	b.tag = pgconn.NewCommandTag(commandTag)
	return b
}

// Build returns a pgx.Rows cursor for the builder data.
func (b *RowsBuilder) Build() pgx.Rows {
	return &fakeRows{
		columns: b.columns,
		data:    b.rows,
		tag:     b.tag,
		idx:     -1,
	}
}

type fakeRows struct {
	columns []string
	data    [][]any
	tag     pgconn.CommandTag
	idx     int
	closed  bool
	scanErr error
}

func (r *fakeRows) Close() {
	r.closed = true
}

func (r *fakeRows) Err() error {
	return r.scanErr
}

func (r *fakeRows) CommandTag() pgconn.CommandTag {
	return r.tag
}

func (r *fakeRows) Conn() *pgx.Conn {
	return nil
}

func (r *fakeRows) RawValues() [][]byte {
	return nil
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.columns))
	for i, col := range r.columns {
		fields[i] = pgconn.FieldDescription{Name: col}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}

	r.idx++
	if r.idx >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return pgx.ErrNoRows
	}

	row := r.data[r.idx]
	if len(dest) != len(row) {
		err := fmt.Errorf("xpgsql.fakeRows: scan dest count %d != column count %d", len(dest), len(row))
		r.scanErr = err
		return err
	}

	for i, val := range row {
		d, ok := dest[i].(*any)
		if !ok {
			err := fmt.Errorf("xpgsql.fakeRows: unsupported scan target type %T at column %d", dest[i], i)
			r.scanErr = err
			return err
		}
		*d = val
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.data) {
		return nil, pgx.ErrNoRows
	}
	return r.data[r.idx], nil
}
