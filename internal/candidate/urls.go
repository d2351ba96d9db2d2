package candidate

import (
	"regexp"
	"strings"
)

// The extraction service sometimes resolves relative profile links against the
// dev server, producing e.g. http://localhost:3000/github.com/user.
var localhostPrefix = regexp.MustCompile(`(?i)^https?://localhost:\d+/`)

// NormalizeProfileURL cleans a LinkedIn, GitHub or portfolio link. An explicit
// http or https scheme is kept; a missing one becomes https. Blank input
// returns "".
func NormalizeProfileURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}

	u = localhostPrefix.ReplaceAllString(u, "")

	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return u
	}
	return "https://" + u
}
