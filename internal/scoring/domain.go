package scoring

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RegistrableDomain returns the eTLD+1 for a host ("ir.example.co.uk" ->
// "example.co.uk"). Falls back to the www-stripped host when the public
// suffix list cannot resolve it (IPs, single-label hosts).
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	if host == "" {
		return ""
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}

// SameSite reports whether two hosts share a registrable domain; subdomain
// variation and a www. prefix are ignored.
func SameSite(host, baseHost string) bool {
	if host == "" || baseHost == "" {
		return false
	}
	return RegistrableDomain(host) == RegistrableDomain(baseHost)
}

// hostOf extracts the lowercased host of a URL, empty on parse failure.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}
