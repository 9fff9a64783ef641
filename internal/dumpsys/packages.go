package dumpsys

import "strings"

// ParsePackageList extracts package names from `pm list packages` output,
// which prints one "package:<name>" line per installed package.
func ParsePackageList(raw string) []string {
	var packages []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "package:") {
			packages = append(packages, strings.TrimPrefix(line, "package:"))
		}
	}
	return packages
}
