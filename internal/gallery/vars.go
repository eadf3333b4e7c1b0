package gallery

import (
	"strings"
	"time"
)

// ExpandVars performs placeholder substitutions for config-provided text
// fields such as the gallery title.
//
// Supported variables:
// - {.Query} => the search query
// - {.CurrentDate} => formatted as YYYY-MM-DD (UTC)
func ExpandVars(s, query string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	out := strings.ReplaceAll(s, "{.Query}", query)
	out = strings.ReplaceAll(out, "{.CurrentDate}", now.UTC().Format("2006-01-02"))
	return out
}

// Slugify lowers a query into a filename-safe slug: runs of non-alphanumeric
// characters collapse into single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
