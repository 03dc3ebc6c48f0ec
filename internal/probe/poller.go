package probe

import (
	"context"

	"github.com/xtreamprobe/xtream-probe/internal/textnorm"
	"github.com/xtreamprobe/xtream-probe/internal/xtream"
)

// pollOutcome is what the three catalog actions produced for one probe.
// Each catalog kind writes a disjoint set of fields from its own goroutine;
// the pool join publishes them to the caller.
type pollOutcome struct {
	liveCount   int
	vodCount    int
	seriesCount int

	// All live names, in panel order; the classifier samples from this.
	liveNames []string

	channelMatches []string
	movieMatches   []string
	seriesMatches  map[string]string
}

// pollCatalog fetches the three catalog kinds concurrently under the inner
// pool. Each kind is isolated: its failure leaves its count at 0 and is
// logged, nothing more. When search is non-empty, folded substring matches
// are collected, and matching series get their latest episode resolved.
func (p *Prober) pollCatalog(ctx context.Context, cl *xtream.Client, search string) *pollOutcome {
	out := &pollOutcome{seriesMatches: make(map[string]string)}
	term := textnorm.Fold(search)

	p.inner.Run(ctx,
		func(ctx context.Context) {
			items, cerr := cl.LiveStreams(ctx, p.actionTimeout)
			if cerr != nil {
				p.warnAction(cl, cerr)
				return
			}
			out.liveCount = len(items)
			out.liveNames = make([]string, 0, len(items))
			for _, it := range items {
				out.liveNames = append(out.liveNames, it.Name)
				if term != "" && textnorm.ContainsFold(it.Name, term) {
					out.channelMatches = append(out.channelMatches, it.Name)
				}
			}
		},
		func(ctx context.Context) {
			items, cerr := cl.VODStreams(ctx, p.actionTimeout)
			if cerr != nil {
				p.warnAction(cl, cerr)
				return
			}
			out.vodCount = len(items)
			if term == "" {
				return
			}
			for _, it := range items {
				if textnorm.ContainsFold(it.Name, term) {
					out.movieMatches = append(out.movieMatches, it.Name)
				}
			}
		},
		func(ctx context.Context) {
			items, cerr := cl.SeriesList(ctx, p.actionTimeout)
			if cerr != nil {
				p.warnAction(cl, cerr)
				return
			}
			out.seriesCount = len(items)
			if term == "" {
				return
			}
			for _, it := range items {
				if !textnorm.ContainsFold(it.Name, term) {
					continue
				}
				out.seriesMatches[it.Name] = p.resolver.LatestEpisode(ctx, cl, it.SeriesIDString())
			}
		},
	)
	return out
}

func (p *Prober) warnAction(cl *xtream.Client, cerr *xtream.CallError) {
	p.log.WithField("server", cl.Base).WithField("action", cerr.Action).
		WithField("kind", string(cerr.Kind)).Debug("catalog action failed")
}
