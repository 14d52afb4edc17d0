package xpgsql

import "context"

// Record is one decoded row, keyed by column name. When a statement returns
// duplicate column names, the value of the later field index wins.
type Record map[string]any

// Model decodes the first row of res into a Record. It returns nil when the
// result has no rows.
func Model(res *Result) Record {
	if res.Len() == 0 {
		return nil
	}
	return res.record(0)
}

// Models decodes every row of res into a Record, in row order. It returns an
// empty, non-nil slice when the result has no rows, so callers can iterate
// without a nil check.
func Models(res *Result) []Record {
	out := make([]Record, res.Len())
	for i := range out {
		out[i] = res.record(i)
	}
	return out
}

// ModelAs decodes the first row of res and passes it through build,
// supporting derived model construction. The second return is false when the
// result has no rows.
func ModelAs[T any](res *Result, build func(Record) T) (T, bool) {
	if res.Len() == 0 {
		var zero T
		return zero, false
	}
	return build(res.record(0)), true
}

// ModelsAs decodes every row of res through build, in row order. It returns
// an empty, non-nil slice when the result has no rows.
func ModelsAs[T any](res *Result, build func(Record) T) []T {
	out := make([]T, res.Len())
	for i := range out {
		out[i] = build(res.record(i))
	}
	return out
}

// Get runs a row-returning statement and decodes its first row. It returns
// nil with no error when the statement matched no rows; a Query failure is
// propagated as-is (already shaped).
func (c *Conn) Get(ctx context.Context, sql string, args ...any) (Record, error) {
	res, err := c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return Model(res), nil
}

// Select runs a row-returning statement and decodes all of its rows. The
// slice is empty, never nil, when the statement matched no rows.
func (c *Conn) Select(ctx context.Context, sql string, args ...any) ([]Record, error) {
	res, err := c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return Models(res), nil
}

// GetAs is Get with a construction hook: the decoded Record is passed
// through build. The second return is false when the statement matched no
// rows.
func GetAs[T any](ctx context.Context, c *Conn, build func(Record) T, sql string, args ...any) (T, bool, error) {
	res, err := c.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := ModelAs(res, build)
	return v, ok, nil
}

// SelectAs is Select with a construction hook applied to every row.
func SelectAs[T any](ctx context.Context, c *Conn, build func(Record) T, sql string, args ...any) ([]T, error) {
	res, err := c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return ModelsAs(res, build), nil
}
