package httpclient

import (
	"net/url"
	"sync"
)

// HostSemaphore caps concurrent requests per panel host across the whole
// process. The outer and inner probe pools multiply (several servers, three
// catalog actions each), and without a per-host cap two credential sets on
// the same panel would hammer it with six requests at once.
//
// Usage:
//
//	release := httpclient.PanelSem.Acquire(base)
//	defer release()
type HostSemaphore struct {
	mu    sync.Mutex
	sems  map[string]chan struct{}
	limit int
}

// PanelSem is the shared per-panel limiter. Cap: 4 concurrent requests per
// host, enough for the inner pool plus the classifier's category call.
var PanelSem = NewHostSemaphore(4)

func NewHostSemaphore(concurrency int) *HostSemaphore {
	if concurrency < 1 {
		concurrency = 1
	}
	return &HostSemaphore{
		sems:  make(map[string]chan struct{}),
		limit: concurrency,
	}
}

// Acquire blocks until a slot is free for host and returns a release func.
// host may be a full URL; it is normalised to scheme+host.
func (h *HostSemaphore) Acquire(host string) func() {
	sem := h.semFor(host)
	sem <- struct{}{}
	return func() { <-sem }
}

func (h *HostSemaphore) semFor(host string) chan struct{} {
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Scheme + "://" + u.Host
	}
	h.mu.Lock()
	s, ok := h.sems[host]
	if !ok {
		s = make(chan struct{}, h.limit)
		h.sems[host] = s
	}
	h.mu.Unlock()
	return s
}
