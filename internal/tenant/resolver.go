package tenant

import (
	"fmt"
	"net"
	"strings"
)

// Resolver derives the active tenant from the request host. The first
// hostname label is the tenant slug whenever the host has a subdomain
// (chavez.localhost:4000, chavez.vetlink.pe); bare hosts fall back to
// the configured default slug.
type Resolver struct {
	DefaultSlug string
}

func NewResolver(defaultSlug string) *Resolver {
	return &Resolver{DefaultSlug: defaultSlug}
}

func (r *Resolver) Slug(host string) string {
	hostname := stripPort(host)

	parts := strings.Split(hostname, ".")

	// Subdomain over a local host: chavez.localhost, chavez.127.0.0.1.
	if len(parts) >= 2 && (parts[1] == "localhost" || parts[1] == "127") {
		return parts[0]
	}

	// A bare IP address carries no tenant subdomain even though its
	// dotted labels look like one.
	if net.ParseIP(hostname) != nil {
		return r.DefaultSlug
	}

	// Production subdomain: chavez.vetlink.pe.
	if len(parts) > 2 {
		return parts[0]
	}

	return r.DefaultSlug
}

// BaseURL builds the tenant-scoped API base for a given host, the
// counterpart of the storefront's URL builder: in local development
// the slug rides as a sub-hostname on the backend port.
func (r *Resolver) BaseURL(host string) string {
	hostname := stripPort(host)

	if hostname == "localhost" || hostname == "127.0.0.1" {
		return fmt.Sprintf("http://%s.localhost:4000/api", r.Slug(host))
	}

	return fmt.Sprintf("http://%s:4000/api", hostname)
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
