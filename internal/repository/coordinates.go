package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseCoordinate converts a raw column value into a coordinate. SQLite
// columns are dynamically typed, so a REAL column may hold text.
func parseCoordinate(v interface{}) (*float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = x
	case int64:
		f = float64(x)
	case []byte:
		return parseCoordinate(string(x))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", x, err)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("invalid coordinate type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid coordinate %v", f)
	}
	return &f, nil
}
