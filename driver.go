package xpgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Driver is the contract xpgsql needs from the raw PostgreSQL connection.
//
// It is the surface of a single live session: execute a parameterized
// statement ($1, $2, ... placeholders, bound by the driver), escape a string
// literal, check liveness, release the session. Connection internals (wire
// protocol, authentication, pooling) are the driver's business.
//
// The production implementation wraps *pgx.Conn; tests use TestDriver.
type Driver interface {
	// Query executes a parameterized statement and returns its result rows.
	// Commands that return no rows still succeed, with an empty row set.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// EscapeString escapes s for use inside a single-quoted SQL literal,
	// without the surrounding quotes.
	EscapeString(s string) (string, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the session.
	Close(ctx context.Context) error
}

// pgxDriver is the concrete Driver backed by a single *pgx.Conn.
// It intentionally wraps (does not embed) the connection.
type pgxDriver struct {
	conn *pgx.Conn
}

var _ Driver = (*pgxDriver)(nil)

func (d *pgxDriver) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return d.conn.Query(ctx, sql, args...)
}

func (d *pgxDriver) EscapeString(s string) (string, error) {
	return d.conn.PgConn().EscapeString(s)
}

func (d *pgxDriver) Ping(ctx context.Context) error {
	return d.conn.Ping(ctx)
}

func (d *pgxDriver) Close(ctx context.Context) error {
	return d.conn.Close(ctx)
}
