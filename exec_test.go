package xpgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestConn(d Driver) *Conn {
	return NewConn(d, Config{})
}

func TestQuery_ReturnsTuples(t *testing.T) {
	t.Parallel()

	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return NewRows("id", "name").
				AddRow(int64(1), "ada").
				AddRow(int64(2), "grace").
				Tag("SELECT 2").
				Build(), nil
		},
	}
	c := newTestConn(d)

	res, err := c.Query(context.Background(), "SELECT id, name FROM users")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := res.Status(); got != StatusTuplesOK {
		t.Fatalf("Status()=%v, want %v", got, StatusTuplesOK)
	}
	if got := res.Len(); got != 2 {
		t.Fatalf("Len()=%d, want 2", got)
	}
	if got, want := fmt.Sprint(res.Fields()), fmt.Sprint([]string{"id", "name"}); got != want {
		t.Fatalf("Fields()=%s, want %s", got, want)
	}
	if got := res.Value(1, 1); got != "grace" {
		t.Fatalf("Value(1,1)=%v, want grace", got)
	}
}

func TestExec_ReturnsCommandResult(t *testing.T) {
	t.Parallel()

	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return NewCommandRows("INSERT 0 3"), nil
		},
	}
	c := newTestConn(d)

	res, err := c.Exec(context.Background(), "INSERT INTO users SELECT * FROM staged")
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if got := res.Status(); got != StatusCommandOK {
		t.Fatalf("Status()=%v, want %v", got, StatusCommandOK)
	}
	if got := res.RowsAffected(); got != 3 {
		t.Fatalf("RowsAffected()=%d, want 3", got)
	}
}

func TestExecute_ClosedConnBypassesShaper(t *testing.T) {
	t.Parallel()

	shaperCalls := 0
	c := NewConn(&TestDriver{}, Config{
		ErrorShaper: func(se *StatusError) error {
			shaperCalls++
			return se
		},
	})
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err := c.Query(context.Background(), "SELECT 1")
	if !errors.Is(err, ErrConnClosed) {
		t.Fatalf("error=%v, want ErrConnClosed", err)
	}
	if shaperCalls != 0 {
		t.Fatalf("shaperCalls=%d, want 0", shaperCalls)
	}
}

func TestExecute_TransportFailureIsConnectionLevel(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, cause
		},
	}
	c := newTestConn(d)

	_, err := c.Query(context.Background(), "SELECT 1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error=%v, want *StatusError", err)
	}
	if se.Status != StatusConnectionBad {
		t.Fatalf("Status=%v, want %v", se.Status, StatusConnectionBad)
	}
	if se.SQLState != "" {
		t.Fatalf("SQLState=%q, want empty", se.SQLState)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error does not wrap cause %v", cause)
	}
}

func TestExecute_ServerErrorCarriesFullTuple(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "42P01",
		Message:  `relation "nope" does not exist`,
	}
	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &ErrRows{ErrValue: pgErr}, nil
		},
	}
	c := newTestConn(d)

	_, err := c.Query(context.Background(), "SELECT * FROM nope")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error=%v, want *StatusError", err)
	}
	if se.Status != StatusFatalError {
		t.Fatalf("Status=%v, want %v", se.Status, StatusFatalError)
	}
	if se.SQLState != "42P01" {
		t.Fatalf("SQLState=%q, want 42P01", se.SQLState)
	}
	if se.Message != pgErr.Message {
		t.Fatalf("Message=%q, want %q", se.Message, pgErr.Message)
	}
	var unwrapped *pgconn.PgError
	if !errors.As(err, &unwrapped) {
		t.Fatal("error does not wrap the *pgconn.PgError cause")
	}
}

func TestExec_OnRowReturningStatementFails(t *testing.T) {
	t.Parallel()

	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return NewRows("id").AddRow(int64(1)).Build(), nil
		},
	}
	c := newTestConn(d)

	_, err := c.Exec(context.Background(), "SELECT 1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error=%v, want *StatusError", err)
	}
	if se.Status != StatusTuplesOK {
		t.Fatalf("Status=%v, want %v", se.Status, StatusTuplesOK)
	}
}

func TestQuery_OnCommandStatementFails(t *testing.T) {
	t.Parallel()

	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return NewCommandRows("DELETE 0"), nil
		},
	}
	c := newTestConn(d)

	_, err := c.Query(context.Background(), "DELETE FROM users")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error=%v, want *StatusError", err)
	}
	if se.Status != StatusCommandOK {
		t.Fatalf("Status=%v, want %v", se.Status, StatusCommandOK)
	}
}

func TestExecute_ShaperReplacesErrorValue(t *testing.T) {
	t.Parallel()

	shaped := errors.New("shaped")
	var seen *StatusError
	c := NewConn(&TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &ErrRows{ErrValue: &pgconn.PgError{Code: "23505", Message: "duplicate key"}}, nil
		},
	}, Config{
		ErrorShaper: func(se *StatusError) error {
			seen = se
			return shaped
		},
	})

	_, err := c.Query(context.Background(), "INSERT INTO users DEFAULT VALUES RETURNING id")
	if !errors.Is(err, shaped) {
		t.Fatalf("error=%v, want shaped value", err)
	}
	if seen == nil {
		t.Fatal("shaper was not invoked")
	}
	if seen.SQLState != "23505" || seen.Message != "duplicate key" || seen.Status != StatusFatalError {
		t.Fatalf("shaper received %+v", seen)
	}
}

func TestExecute_PositionalParamsReachDriver(t *testing.T) {
	t.Parallel()

	var gotSQL string
	var gotArgs []any
	d := &TestDriver{
		QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotSQL = sql
			gotArgs = args
			return NewRows("ok").AddRow(true).Build(), nil
		},
	}
	c := newTestConn(d)

	_, err := c.Query(context.Background(), "SELECT $1::int = $2::int AS ok", 1, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if gotSQL != "SELECT $1::int = $2::int AS ok" {
		t.Fatalf("sql=%q passed through modified", gotSQL)
	}
	if len(gotArgs) != 2 || gotArgs[0] != 1 || gotArgs[1] != 2 {
		t.Fatalf("args=%v, want [1 2]", gotArgs)
	}
}
