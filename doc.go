// Package xpgsql is a small convenience layer over a single PostgreSQL
// connection using pgx v5.
//
// It turns the low-level result-object API (status codes, field and row
// indices, manual escaping) into row-oriented operations (Get, Select,
// Model, Models), adds nesting-aware transaction scoping (Tx, EnsureTx,
// With) and per-connection error shaping.
//
// Invariants:
//
//   - I1: a Conn owns exactly one driver connection; it is released exactly once.
//   - I2: after Close, every operation except Close fails with ErrConnClosed.
//   - I3: only the outermost transaction scope issues BEGIN/COMMIT/ROLLBACK.
//   - I4: rollback and auto-close failures never mask the primary error.
//   - I5: usage errors and body errors never pass through the error shaper.
//   - I6: error messages on the connect path are safe to log by default.
//
// A Conn is synchronous and blocking, and is not safe for concurrent use:
// one logical operation (including an entire Tx body) must run to completion
// before another begins on the same Conn. Cancellation and timeouts are the
// driver's business; pass a context to every call.
package xpgsql
