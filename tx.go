package xpgsql

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultRollbackTimeout = 5 * time.Second

// TxFunc is caller-supplied logic run inside a transaction or connection
// scope. Errors it returns are passed back verbatim, never shaped.
type TxFunc func(ctx context.Context, c *Conn) error

// TxValueFunc is the value-carrying form of TxFunc, for bodies that produce
// a result. The value is passed through verbatim on success, a nil or zero
// value included; use the error-only forms when there is nothing to return.
type TxValueFunc[T any] func(ctx context.Context, c *Conn) (T, error)

// With invokes fn on the Conn. If autoClose is true, the Conn is closed
// after fn returns on every exit path, including an error or a panic;
// subsequent operations fail with ErrConnClosed. A close failure never
// replaces fn's outcome: it is logged and discarded.
func (c *Conn) With(ctx context.Context, autoClose bool, fn TxFunc) error {
	_, err := WithValue(ctx, c, autoClose, voidBody(fn))
	return err
}

// Tx runs fn inside a transaction: BEGIN TRANSACTION, fn, then COMMIT if fn
// succeeded or ROLLBACK if it failed. A begin failure is returned
// immediately; a commit failure replaces fn's result; a rollback failure is
// logged and discarded in favor of fn's error. The Conn's transaction flag
// is restored to its prior value on every exit path. If fn panics, the
// transaction is rolled back and the panic is re-raised.
func (c *Conn) Tx(ctx context.Context, fn TxFunc) error {
	_, err := TxValue(ctx, c, voidBody(fn))
	return err
}

// EnsureTx runs fn inside the current transaction if one is active on the
// Conn, or inside a new one otherwise. Nested EnsureTx calls are
// transparent: only the outermost scope issues BEGIN/COMMIT/ROLLBACK, so a
// failure in a nested body rolls back at the outermost boundary.
func (c *Conn) EnsureTx(ctx context.Context, fn TxFunc) error {
	_, err := EnsureTxValue(ctx, c, voidBody(fn))
	return err
}

// WithValue is With for bodies that produce a value. On success the body's
// value is returned verbatim.
func WithValue[T any](ctx context.Context, c *Conn, autoClose bool, fn TxValueFunc[T]) (T, error) {
	if autoClose {
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), defaultCloseTimeout)
			defer cancel()
			if err := c.Close(closeCtx); err != nil {
				c.logger.Warn("xpgsql: auto-close failed", zap.Error(err))
			}
		}()
	}
	return fn(ctx, c)
}

// TxValue is Tx for bodies that produce a value. On commit success the
// body's value is returned verbatim; on any failure the zero value is
// returned with the error.
func TxValue[T any](ctx context.Context, c *Conn, fn TxValueFunc[T]) (T, error) {
	var zero T

	if _, err := c.Exec(ctx, "BEGIN TRANSACTION"); err != nil {
		return zero, err
	}

	prev := c.inTx
	c.inTx = true
	defer func() { c.inTx = prev }()

	defer func() {
		if p := recover(); p != nil {
			c.rollback()
			panic(p)
		}
	}()

	v, err := fn(ctx, c)
	if err != nil {
		c.rollback()
		return zero, err
	}

	if _, err := c.Exec(ctx, "COMMIT"); err != nil {
		return zero, err
	}
	return v, nil
}

// EnsureTxValue is EnsureTx for bodies that produce a value.
func EnsureTxValue[T any](ctx context.Context, c *Conn, fn TxValueFunc[T]) (T, error) {
	if c.inTx {
		return WithValue(ctx, c, false, fn)
	}
	return TxValue(ctx, c, fn)
}

// rollback attempts ROLLBACK on a fresh context so that a canceled caller
// context cannot prevent it. Its failure is logged, never returned: the
// original error must not be masked.
func (c *Conn) rollback() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRollbackTimeout)
	defer cancel()
	if _, err := c.Exec(ctx, "ROLLBACK"); err != nil {
		c.logger.Warn("xpgsql: rollback failed", zap.Error(err))
	}
}

func voidBody(fn TxFunc) TxValueFunc[struct{}] {
	return func(ctx context.Context, c *Conn) (struct{}, error) {
		return struct{}{}, fn(ctx, c)
	}
}
