package auth

import (
	"net/http"
	"strings"
)

// Policy determines the required role by request.
type Policy struct {
	ExemptPaths map[string]struct{}
}

// NewDefaultPolicy builds a policy with the given exempt paths.
func NewDefaultPolicy(exemptPaths []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set}
}

// IsExempt returns true when a request should skip auth.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	_, ok := p.ExemptPaths[r.URL.Path]
	return ok
}

// RequiredRole resolves the required role for the request. Statement
// exports carry billing data out of the service, so they need admin.
func (p Policy) RequiredRole(r *http.Request) (Role, bool) {
	if r == nil {
		return "", false
	}
	path := r.URL.Path
	if !strings.HasPrefix(path, "/api/") {
		return "", false
	}
	if strings.Contains(path, "/export.") {
		return RoleAdmin, true
	}
	return RoleViewer, true
}
