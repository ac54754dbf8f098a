package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigin_Valid(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Origin
	}{
		{
			name:     "https with path",
			raw:      "https://example.com/some/path?q=1",
			expected: "https://example.com",
		},
		{
			name:     "https with explicit default port",
			raw:      "https://example.com:443/",
			expected: "https://example.com",
		},
		{
			name:     "https with custom port",
			raw:      "https://example.com:8443",
			expected: "https://example.com:8443",
		},
		{
			name:     "http with default port",
			raw:      "http://example.com:80/index.html",
			expected: "http://example.com",
		},
		{
			name:     "uppercase host is normalized",
			raw:      "HTTPS://Example.COM/Path",
			expected: "https://example.com",
		},
		{
			name:     "extension scheme",
			raw:      "webkit-extension://abcdef123456/bg.html",
			expected: "webkit-extension://abcdef123456",
		},
		{
			name:     "ipv6 literal keeps brackets",
			raw:      "https://[::1]:8080/path",
			expected: "https://[::1]:8080",
		},
		{
			name:     "ipv6 literal with default port",
			raw:      "https://[2001:db8::1]:443",
			expected: "https://[2001:db8::1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, err := ParseOrigin(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, origin)
		})
	}
}

func TestParseOrigin_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "no scheme", raw: "example.com"},
		{name: "no host", raw: "https://"},
		{name: "garbage", raw: "::::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrigin(tt.raw)
			require.Error(t, err)
		})
	}
}

func TestOriginComponents(t *testing.T) {
	o := Origin("https://example.com:8443")
	assert.Equal(t, "https", o.Scheme())
	assert.Equal(t, "example.com", o.Host())

	o = Origin("https://example.com")
	assert.Equal(t, "example.com", o.Host())

	o = Origin("https://[::1]:8080")
	assert.Equal(t, "::1", o.Host())

	o = Origin("https://[2001:db8::1]")
	assert.Equal(t, "2001:db8::1", o.Host())
}

func TestParseOrigins_SkipsMalformed(t *testing.T) {
	origins, skipped := ParseOrigins([]string{
		"https://a.com",
		"not a url",
		"https://b.com:444",
		"",
	})

	assert.Equal(t, []Origin{"https://a.com", "https://b.com:444"}, origins)
	assert.Equal(t, []string{"not a url", ""}, skipped)
}
