// ABOUTME: Shared CLI helpers
// ABOUTME: Handles date flag parsing and id arguments
package cli

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// parseDateFlag parses a --date style flag. Empty means unset.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return &t, nil
}

// idArg parses the trailing positional id argument.
func idArg(args []string, what string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s id is required", what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, args[0])
	}
	return id, nil
}

// setFlags reports which flags were supplied, for partial updates.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// optString returns a pointer to the flag value when the flag was set.
func optString(set map[string]bool, name, value string) *string {
	if !set[name] {
		return nil
	}
	return &value
}

// todayUTC returns the current UTC calendar day.
func todayUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}
