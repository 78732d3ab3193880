package types

import (
	"net/url"
	"strings"
)

// RemoteImagePattern describes a remote host the ui is allowed to load images from.
// Pathname supports a trailing "/**" to match everything below a prefix.
type RemoteImagePattern struct {
	Protocol string
	Hostname string
	Port     string
	Pathname string
}

// RemoteImagePatterns lists the object storage locations used for claim and warranty photos
var RemoteImagePatterns = []RemoteImagePattern{
	{Protocol: "https", Hostname: "sgp1.digitaloceanspaces.com", Pathname: "/profilm/**"},
	{Protocol: "https", Hostname: "profilm.sgp1.cdn.digitaloceanspaces.com", Pathname: "/**"},
}

func (p RemoteImagePattern) Matches(u *url.URL) bool {
	if u.Scheme != p.Protocol || u.Hostname() != p.Hostname || u.Port() != p.Port {
		return false
	}

	if prefix, ok := strings.CutSuffix(p.Pathname, "/**"); ok {
		return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
	}
	return u.Path == p.Pathname
}

// IsAllowedImageURL reports whether rawURL may be rendered as an image
func IsAllowedImageURL(rawURL string, patterns []RemoteImagePattern) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	for _, p := range patterns {
		if p.Matches(u) {
			return true
		}
	}
	return false
}
