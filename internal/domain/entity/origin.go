package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// Origin is a normalized origin identifier: scheme://host[:port], lowercased.
// Equality is exact string match after normalization, and Origin is the sole
// lookup key for permission decisions.
type Origin string

// ParseOrigin normalizes a raw URI into an Origin.
// The scheme and host are required; path, query and fragment are dropped.
// Default ports are stripped so "https://example.com:443/x" and
// "https://example.com" compare equal.
func ParseOrigin(raw string) (Origin, error) {
	if raw == "" {
		return "", fmt.Errorf("empty origin")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid origin %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("origin %q must have scheme and host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		// IPv6 literal: Hostname strips the brackets, the authority form
		// needs them back.
		host = "[" + host + "]"
	}
	port := u.Port()
	if port == defaultPort(scheme) {
		port = ""
	}

	if port != "" {
		return Origin(fmt.Sprintf("%s://%s:%s", scheme, host, port)), nil
	}
	return Origin(fmt.Sprintf("%s://%s", scheme, host)), nil
}

func defaultPort(scheme string) string {
	switch scheme {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	default:
		return ""
	}
}

// Scheme returns the origin's scheme component.
func (o Origin) Scheme() string {
	s := string(o)
	if i := strings.Index(s, "://"); i >= 0 {
		return s[:i]
	}
	return ""
}

// Host returns the origin's host component without the port, and without
// brackets for IPv6 literals.
func (o Origin) Host() string {
	s := string(o)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if strings.HasPrefix(s, "[") {
		if i := strings.Index(s, "]"); i >= 0 {
			return s[1:i]
		}
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[:i]
	}
	return s
}

func (o Origin) String() string {
	return string(o)
}

// ParseOrigins normalizes a list of raw entries, skipping malformed ones.
// A single corrupt persisted entry must not abort loading the rest.
func ParseOrigins(raw []string) ([]Origin, []string) {
	origins := make([]Origin, 0, len(raw))
	var skipped []string
	for _, entry := range raw {
		o, err := ParseOrigin(entry)
		if err != nil {
			skipped = append(skipped, entry)
			continue
		}
		origins = append(origins, o)
	}
	return origins, skipped
}
