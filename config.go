package xpgsql

import (
	"time"

	"go.uber.org/zap"
)

// Config controls the behavior of a Conn.
type Config struct {
	// ConnString is a libpq-style URL or keyword/value DSN. It may be empty,
	// in which case the driver falls back to PG* environment defaults.
	ConnString string

	// ConnectTimeout defaults to 10s. Ignored by NewConn.
	ConnectTimeout time.Duration

	// ErrorShaper transforms connectivity and statement errors before they
	// are returned. Nil means identity: callers receive the *StatusError.
	ErrorShaper ErrorShaper

	// Logger receives best-effort failures that are deliberately not
	// returned: rollback failures inside Tx, auto-close failures in With,
	// and connections reclaimed by the leak finalizer. Defaults to a no-op
	// logger. SQL text and parameter values are never logged.
	Logger *zap.Logger
}
