// Package series resolves the latest episode of a series into a short
// "SxxEyy" tag for search results.
package series

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/xtreamprobe/xtream-probe/internal/xtream"
)

// InfoUnavailable is recorded for a matching series whose detail lookup
// failed or returned nothing usable.
const InfoUnavailable = "no information available"

var tagRe = regexp.MustCompile(`(?i)S\d+E\d+`)

// Resolver fetches series detail and derives a latest-episode tag. Results
// are cached for the lifetime of a run; pasted lists repeat the same panels
// and the detail call is the most expensive one in a probe.
type Resolver struct {
	cache   *gocache.Cache
	timeout time.Duration
}

// NewResolver returns a resolver with the given per-call timeout
// (<= 0 means 10s).
func NewResolver(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		cache:   gocache.New(10*time.Minute, 30*time.Minute),
		timeout: timeout,
	}
}

// LatestEpisode returns the tag for the newest episode of seriesID on the
// client's panel, or InfoUnavailable. It never returns an error: a missing
// or malformed answer is a valid terminal outcome for one series.
func (r *Resolver) LatestEpisode(ctx context.Context, cl *xtream.Client, seriesID string) string {
	if seriesID == "" {
		return InfoUnavailable
	}
	key := cl.Base + "|" + seriesID
	if v, ok := r.cache.Get(key); ok {
		return v.(string)
	}
	episodes, cerr := cl.SeriesInfo(ctx, seriesID, r.timeout)
	if cerr != nil {
		// Failures are not cached; a later probe may reach the panel.
		return InfoUnavailable
	}
	tag := deriveTag(episodes)
	if tag == "" {
		return InfoUnavailable
	}
	r.cache.SetDefault(key, tag)
	return tag
}

// deriveTag picks the numerically highest season, takes its last episode as
// listed (panel ordering, not re-sorted), and extracts an SxxEyy tag from
// the title. Without a tag in the title it synthesizes one from the season
// number and episode count.
func deriveTag(episodes map[string][]xtream.Episode) string {
	last := -1
	for k := range episodes {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			continue
		}
		if n > last {
			last = n
		}
	}
	if last < 0 {
		return ""
	}
	eps := episodes[strconv.Itoa(last)]
	if len(eps) == 0 {
		return ""
	}
	title := eps[len(eps)-1].Title
	if m := tagRe.FindString(title); m != "" {
		return strings.ToUpper(m)
	}
	return fmt.Sprintf("S%02dE%02d", last, len(eps))
}
