// Package endpoint builds the backend URLs used by the ui client.
package endpoint

import "strings"

const (
	// DefaultAPIRoot is used when no api root is configured
	DefaultAPIRoot = "http://localhost:8080"

	// APIVersionPath is appended to the api root to form the versioned api base
	APIVersionPath = "/api/v1"
)

// Resolver derives the backend base url from the api root it was created with.
// Nothing is cached: every call recomputes the url from the configured root.
type Resolver struct {
	apiRoot string
}

func NewResolver(apiRoot string) *Resolver {
	return &Resolver{apiRoot: apiRoot}
}

// Root returns the configured api root (scheme, host and port) or DefaultAPIRoot when none was configured.
func (r *Resolver) Root() string {
	if r == nil || r.apiRoot == "" {
		return DefaultAPIRoot
	}
	return r.apiRoot
}

// Base returns the versioned api base, e.g http://localhost:8080/api/v1
//
// The root is not validated - a malformed root produces a malformed url and surfaces as a transport error.
func (r *Resolver) Base() string {
	return r.Root() + APIVersionPath
}

// URL joins the api base and a resource path, e.g URL("/claims/7")
func (r *Resolver) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.Base() + path
}
