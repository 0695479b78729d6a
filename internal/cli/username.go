package cli

import (
	"fmt"
	"net/url"
	"strings"
)

// UsernameFromURL returns the last non-empty path segment of a profile URL.
// "https://www.reddit.com/user/alice/", "u/alice" and "alice" all give
// "alice".
func UsernameFromURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if u, err := url.Parse(s); err == nil {
		if u.Host != "" && strings.Trim(u.Path, "/") == "" {
			return "", fmt.Errorf("no username in profile URL %q", raw)
		}
		if u.Path != "" {
			s = u.Path
		}
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "", fmt.Errorf("no username in profile URL %q", raw)
	}
	return s, nil
}
