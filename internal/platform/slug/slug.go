package slug

import (
	"net/url"
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// FromProblemURL extracts the problem slug from a URL such as
// https://leetcode.com/problems/two-sum/description/?envType=study-plan.
// A bare slug is returned unchanged.
func FromProblemURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}
	if _, rest, ok := strings.Cut(path, "/problems/"); ok {
		path = rest
	}
	path = strings.Trim(path, "/")
	if first, _, ok := strings.Cut(path, "/"); ok {
		path = first
	}
	return path
}
