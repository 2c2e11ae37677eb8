package migrationfs

import (
	"regexp"
	"strings"
)

var disallowedChars = regexp.MustCompile(`[^a-z0-9_]+`)
var repeatedUnderscores = regexp.MustCompile(`_+`)

// SanitizeDescription converts a free-text migration description into a
// filename-safe fragment: lowercase, any character outside [a-z0-9_]
// becomes _, consecutive underscores collapse to one, and leading/trailing
// underscores are trimmed.
func SanitizeDescription(description string) string {
	s := strings.ToLower(description)
	s = disallowedChars.ReplaceAllString(s, "_")
	s = repeatedUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
