package xpgsql

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

const defaultCloseTimeout = 5 * time.Second

// Conn owns exactly one live driver connection.
//
// The connection is released exactly once: by Close, by With's auto-close,
// or as a last resort by a finalizer that logs the leak. Never rely on the
// finalizer for timely release; prefer explicit Close or With.
type Conn struct {
	raw    Driver
	inTx   bool
	shaper ErrorShaper
	logger *zap.Logger
}

// NewConn wraps an already-established driver connection. Conn takes
// exclusive ownership: the driver must not be used directly afterwards.
// Only the ErrorShaper and Logger fields of cfg apply.
func NewConn(d Driver, cfg Config) *Conn {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Conn{raw: d, shaper: cfg.ErrorShaper, logger: logger}
	runtime.SetFinalizer(c, finalizeConn)
	return c
}

// finalizeConn is the leak backstop: it runs only if a Conn becomes
// unreachable without Close having been called.
func finalizeConn(c *Conn) {
	if c.raw == nil {
		return
	}
	c.logger.Warn("xpgsql: connection leaked, closing in finalizer")

	ctx, cancel := context.WithTimeout(context.Background(), defaultCloseTimeout)
	defer cancel()
	if err := c.raw.Close(ctx); err != nil {
		c.logger.Warn("xpgsql: finalizer close failed", zap.Error(err))
	}
	c.raw = nil
}

// Close releases the driver connection. It is idempotent: closing an
// already-closed Conn is a no-op. After Close, every other operation fails
// with ErrConnClosed.
func (c *Conn) Close(ctx context.Context) error {
	if c.raw == nil {
		return nil
	}
	err := c.raw.Close(ctx)
	c.raw = nil
	runtime.SetFinalizer(c, nil)
	return err
}

// InTransaction reports whether a Tx (or outermost EnsureTx) scope is
// currently active on this Conn.
func (c *Conn) InTransaction() bool {
	return c.inTx
}

// Ping verifies connectivity.
func (c *Conn) Ping(ctx context.Context) error {
	if c.raw == nil {
		return ErrConnClosed
	}
	if err := c.raw.Ping(ctx); err != nil {
		return shapeWith(c.shaper, statusError(err))
	}
	return nil
}

// HealthStatus is the response type for health check endpoints.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheck verifies database connectivity and returns a status suitable
// for health check API endpoints.
func HealthCheck(ctx context.Context, c *Conn) (*HealthStatus, error) {
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}
	return &HealthStatus{Status: "ok", Database: "postgres"}, nil
}
