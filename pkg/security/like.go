package security

import "strings"

// LikeEscapeChar is the escape character used by EscapeLike
const LikeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	"%", `\%`,
	"_", `\_`,
)

// EscapeLike escapes LIKE wildcards so query matches literally.
// Use together with `ESCAPE '\'` in the statement.
func EscapeLike(query string) string {
	if query == "" {
		return ""
	}
	return likeEscaper.Replace(query)
}

// ContainsPattern returns a LIKE pattern matching any value that contains query.
func ContainsPattern(query string) string {
	return "%" + EscapeLike(query) + "%"
}
