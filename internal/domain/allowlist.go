// Package domain validates a panel address against the TLD allow-list of a
// target playback client. Acceptance is a pure function of the address; it
// never depends on whether the panel answered.
package domain

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultSuffixes are the TLDs the target playback client accepts.
var DefaultSuffixes = []string{"ca", "io", "cc", "me", "in", "top", "space"}

// Allowlist holds accepted host suffixes, stored without a leading dot.
type Allowlist struct {
	suffixes []string
}

// NewAllowlist builds an allow-list from suffixes ("io" or ".io" both work).
// nil or empty falls back to DefaultSuffixes.
func NewAllowlist(suffixes []string) *Allowlist {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
		if s != "" {
			out = append(out, s)
		}
	}
	return &Allowlist{suffixes: out}
}

// Accepts reports whether the host of base ends in an accepted suffix,
// case-insensitively. Bare IP addresses have no TLD and are never accepted.
func (a *Allowlist) Accepts(base string) bool {
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || net.ParseIP(host) != nil {
		return false
	}
	// publicsuffix resolves multi-label suffixes (co.uk); the plain
	// HasSuffix check covers suffixes the PSL does not know about.
	ps, _ := publicsuffix.PublicSuffix(host)
	for _, s := range a.suffixes {
		if ps == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
