// ABOUTME: Shared helper for partial UPDATE statements
// ABOUTME: Builds SET clauses from the non-nil fields of an update struct
package db

import (
	"sort"
	"strings"
	"time"
)

// buildSets assembles a deterministic SET clause and argument list from the
// non-nil entries of fields. Returns an empty clause when nothing is set.
func buildSets(fields map[string]any) (string, []any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sets []string
	var args []any
	for _, k := range keys {
		switch v := fields[k].(type) {
		case *string:
			if v != nil {
				sets = append(sets, k+" = ?")
				args = append(args, *v)
			}
		case *int:
			if v != nil {
				sets = append(sets, k+" = ?")
				args = append(args, *v)
			}
		case *int64:
			if v != nil {
				sets = append(sets, k+" = ?")
				args = append(args, *v)
			}
		case *float64:
			if v != nil {
				sets = append(sets, k+" = ?")
				args = append(args, *v)
			}
		case *time.Time:
			if v != nil {
				sets = append(sets, k+" = ?")
				args = append(args, *v)
			}
		}
	}

	return strings.Join(sets, ", "), args
}
