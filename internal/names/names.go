// Package names holds the single canonical rule for splitting person and
// team name fields. Input data arrives both as one name per array slot and
// as comma-joined lists jammed into a single slot; everything downstream
// (aggregation, print sheets, history views) must use this split and never
// re-split on its own.
package names

import "strings"

// Split flattens a list of possibly comma-packed name entries into
// individual trimmed names, dropping empties.
func Split(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			name := strings.TrimSpace(part)
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// Resolve returns the people named on a record: the flattened workerNames
// list, falling back to splitting the team name when no workers are named.
func Resolve(workerNames []string, teamName string) []string {
	if people := Split(workerNames); len(people) > 0 {
		return people
	}
	return Split([]string{teamName})
}

// DisplayName strips a parenthesized suffix, e.g. "Nguyen Van A (To 2)"
// renders as "Nguyen Van A".
func DisplayName(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}
