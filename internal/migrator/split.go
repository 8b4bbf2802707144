package migrator

import "strings"

// SplitStatements splits raw script text into executable statements on the
// `;` delimiter. Statements are trimmed of surrounding whitespace and
// empty ones are dropped. This is a textual split, not a SQL parser: it
// does not understand semicolons inside string literals, comments, or
// procedural blocks, so scripts must be authored without embedding them.
func SplitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
