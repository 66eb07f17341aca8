package formatting

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var byteUnits = map[string]int{
	"B":  0,
	"KB": 1,
	"MB": 2,
	"GB": 3,
	"TB": 4,
}

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// ParseBytes converts a size string such as "50MB" to a byte count using
// base-1024 units up to TB. Unit matching is case-insensitive; a bare number
// means bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		return int64(value), nil
	}

	exp, ok := byteUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
