package xpgsql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConnClosed is returned by every operation except Close once the Conn's
// driver connection has been released. It signals a programming error and is
// never passed through the error shaper.
var ErrConnClosed = errors.New("xpgsql: connection is closed")

// StatusError is the error value produced by a failed connect or statement
// execution. Message is always set; SQLState is set only for statement-level
// failures, where the server reported a result. The wrapped cause (the
// driver's own error, when one exists) is reachable via errors.As/Is.
//
// Message never contains the connection string or statement parameters, so
// it is safe for default production logging; the cause may carry more.
type StatusError struct {
	Message  string
	Status   Status
	SQLState string

	cause error
}

func (e *StatusError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("xpgsql: %s (%s, SQLSTATE %s)", e.Message, e.Status, e.SQLState)
	}
	return fmt.Sprintf("xpgsql: %s (%s)", e.Message, e.Status)
}

func (e *StatusError) Unwrap() error { return e.cause }

// Code returns the numeric status code of the error.
func (e *StatusError) Code() int { return int(e.Status) }

// ErrorShaper transforms a StatusError into the error value surfaced to the
// caller. It runs synchronously on the failing call's stack and must not
// retain or mutate the StatusError after returning. A nil shaper is the
// identity: the StatusError is returned unchanged.
//
// Only connectivity and statement failures are shaped. Usage errors
// (ErrConnClosed, ArrayElementError) and errors returned by Tx/EnsureTx/With
// bodies did not originate from this layer and bypass the shaper.
type ErrorShaper func(*StatusError) error

// statusError classifies a driver error: a server-reported *pgconn.PgError
// becomes a statement error with the full diagnostic tuple, anything else
// (transport, protocol, cancellation) a connection-level error.
func statusError(err error) *StatusError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &StatusError{
			Message:  pgErr.Message,
			Status:   StatusFatalError,
			SQLState: pgErr.Code,
			cause:    err,
		}
	}
	return &StatusError{
		Message: err.Error(),
		Status:  StatusConnectionBad,
		cause:   err,
	}
}

func shapeWith(shaper ErrorShaper, se *StatusError) error {
	if shaper != nil {
		return shaper(se)
	}
	return se
}

// ArrayElementError reports an unsupported element kind passed to
// FormatArray. It signals caller misuse and is never shaped.
type ArrayElementError struct {
	Index int
	Value any
}

func (e *ArrayElementError) Error() string {
	return fmt.Sprintf("xpgsql: invalid array element at index %d: %T", e.Index, e.Value)
}
