package dumpsys

import (
	"strconv"
	"strings"
)

// ParseClockDuration converts a colon-separated clock string to
// milliseconds. Three fields are hours:minutes:seconds, two fields are
// minutes:seconds. Any other field count, or a field that is not a
// non-negative integer, yields zero — a malformed duration must not abort
// parsing of the whole report.
func ParseClockDuration(s string) int64 {
	parts := strings.Split(s, ":")
	fields := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		fields[i] = n
	}

	switch len(fields) {
	case 3:
		return (fields[0]*3600 + fields[1]*60 + fields[2]) * 1000
	case 2:
		return (fields[0]*60 + fields[1]) * 1000
	default:
		return 0
	}
}
