// Package httpclient owns the outbound HTTP setup shared by every probe:
// one tuned transport, a per-panel concurrency cap, content decoding, and
// the browser User-Agent some panels insist on.
package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"
)

const (
	DefaultTimeout         = 15 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second
	MaxIdleConnsPerHost    = 8
)

// BrowserUA mimics a desktop browser. Several Xtream panels answer 403 or an
// HTML challenge page to unknown agents.
const BrowserUA = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

var defaultClient *http.Client

func init() {
	defaultClient = &http.Client{
		Timeout:   DefaultTimeout,
		Transport: wrap(newTransport(false)),
	}
}

func newTransport(insecure bool) *http.Transport {
	t := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: MaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return t
}

// Default returns the shared tuned client used by the prober.
func Default() *http.Client {
	return defaultClient
}

// WithTimeout returns a client with the given overall timeout on the same
// transport as Default.
func WithTimeout(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: defaultClient.Transport,
	}
}

// Insecure returns a client that skips TLS verification. Legacy panels serve
// expired or self-signed certificates; callers opt in via configuration.
func Insecure(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: wrap(newTransport(true)),
	}
}
