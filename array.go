package xpgsql

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatArray renders values as a SQL-safe comma-separated list of literals,
// without surrounding parentheses, for embedding inside the caller's own
// IN (...) or ANY(...) syntax. Strings are escaped through the driver and
// single-quoted; integers render in decimal; floats render in fixed-point
// notation, with no fractional part when the value is integral. An empty
// input yields "".
//
// Any other element kind is caller misuse: FormatArray fails with an
// *ArrayElementError naming the offending index, unshaped.
func (c *Conn) FormatArray(values []any) (string, error) {
	if c.raw == nil {
		return "", ErrConnClosed
	}

	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		switch v := v.(type) {
		case string:
			esc, err := c.raw.EscapeString(v)
			if err != nil {
				return "", fmt.Errorf("xpgsql: escape string at index %d: %w", i, err)
			}
			b.WriteByte('\'')
			b.WriteString(esc)
			b.WriteByte('\'')
		case int:
			b.WriteString(strconv.FormatInt(int64(v), 10))
		case int8:
			b.WriteString(strconv.FormatInt(int64(v), 10))
		case int16:
			b.WriteString(strconv.FormatInt(int64(v), 10))
		case int32:
			b.WriteString(strconv.FormatInt(int64(v), 10))
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		case uint:
			b.WriteString(strconv.FormatUint(uint64(v), 10))
		case uint8:
			b.WriteString(strconv.FormatUint(uint64(v), 10))
		case uint16:
			b.WriteString(strconv.FormatUint(uint64(v), 10))
		case uint32:
			b.WriteString(strconv.FormatUint(uint64(v), 10))
		case uint64:
			b.WriteString(strconv.FormatUint(v, 10))
		case float32:
			b.WriteString(formatFloatLiteral(float64(v), 32))
		case float64:
			b.WriteString(formatFloatLiteral(v, 64))
		default:
			return "", &ArrayElementError{Index: i, Value: v}
		}
	}
	return b.String(), nil
}

func formatFloatLiteral(f float64, bitSize int) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
