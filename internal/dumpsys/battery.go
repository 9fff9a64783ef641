package dumpsys

import "strings"

const screenOnPrefix = "Screen on:"

// ParseScreenOnTime extracts the "Screen on:" value from a
// `dumpsys battery` report. ok is false when the report has no such line.
func ParseScreenOnTime(raw string) (value string, ok bool) {
	for _, line := range strings.Split(raw, "\n") {
		if idx := strings.Index(line, screenOnPrefix); idx >= 0 {
			return strings.TrimSpace(line[idx+len(screenOnPrefix):]), true
		}
	}
	return "", false
}
