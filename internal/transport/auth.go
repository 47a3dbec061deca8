package transport

import "net/http"

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication, used by the Firecrawl
// scraping API.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
}

// ServiceKeyAuth implements Supabase service-role authentication, which
// expects the key both as an apikey header and as a bearer token.
type ServiceKeyAuth struct {
	Key string
}

// Apply implements the Authenticator interface for ServiceKeyAuth.
func (a *ServiceKeyAuth) Apply(req *http.Request) {
	if a.Key == "" {
		return
	}
	req.Header.Set("apikey", a.Key)
	req.Header.Set("Authorization", "Bearer "+a.Key)
}
