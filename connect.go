package xpgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Option configures Connect for advanced use cases.
type Option func(*connectOptions)

type connectOptions struct {
	connConfigModifier func(*pgx.ConnConfig)
}

// connectConfig is a package-private seam used by tests to force
// deterministic connect failures without network dependencies.
var connectConfig = pgx.ConnectConfig

// WithConnConfig allows low-level pgx configuration.
//
// The modifier runs after standard xpgsql configuration is applied.
func WithConnConfig(fn func(*pgx.ConnConfig)) Option {
	return func(o *connectOptions) {
		o.connConfigModifier = fn
	}
}

// Connect opens a single PostgreSQL connection and returns the Conn that
// owns it. An empty Config.ConnString relies on the driver's PG* environment
// defaults. On failure the returned error carries the driver's message and
// the connection status, passed through cfg.ErrorShaper when one is set.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Conn, error) {
	pgxCfg, err := pgx.ParseConfig(cfg.ConnString)
	if err != nil {
		// SECURITY: parse errors from upstream may contain DSN content.
		// Keep the outer error message sanitized.
		return nil, shapeWith(cfg.ErrorShaper, &StatusError{
			Message: "invalid connection string (expected URL or DSN form)",
			Status:  StatusConnectionBad,
			cause:   err,
		})
	}

	if cfg.ConnectTimeout > 0 {
		pgxCfg.ConnectTimeout = cfg.ConnectTimeout
	} else {
		pgxCfg.ConnectTimeout = 10 * time.Second
	}

	var o connectOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if o.connConfigModifier != nil {
		o.connConfigModifier(pgxCfg)
	}

	raw, err := connectConfig(ctx, pgxCfg)
	if err != nil {
		// SECURITY: cause may include credentials; keep outer message safe.
		return nil, shapeWith(cfg.ErrorShaper, &StatusError{
			Message: "connect failed (host=" + pgxCfg.Host + ")",
			Status:  StatusConnectionBad,
			cause:   err,
		})
	}

	return NewConn(&pgxDriver{conn: raw}, cfg), nil
}
