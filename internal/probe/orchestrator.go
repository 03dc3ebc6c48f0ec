package probe

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/xtreamprobe/xtream-probe/internal/extract"
	"github.com/xtreamprobe/xtream-probe/internal/metrics"
	"github.com/xtreamprobe/xtream-probe/internal/pool"
)

// Orchestrator fans extracted credential sets out to server probes under
// the outer pool and collects every record.
type Orchestrator struct {
	prober *Prober
	outer  *pool.Pool
	log    *logrus.Logger
}

// NewOrchestrator wires a prober to an outer pool. outer may be nil
// (width 5); log may be nil.
func NewOrchestrator(prober *Prober, outer *pool.Pool, log *logrus.Logger) *Orchestrator {
	if outer == nil {
		outer = pool.New("servers", 5)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{prober: prober, outer: outer, log: log}
}

// Run extracts credentials from text and probes each concurrently. The
// returned slice has exactly one record per distinct credential set, in
// extraction order; an empty slice means nothing was found, which is not
// an error. Records are never dropped; a dead panel is a login-failed
// record, not an absence.
func (o *Orchestrator) Run(ctx context.Context, text, search string) []Result {
	sets := extract.FromText(text)
	if len(sets) == 0 {
		o.log.Info("no credentials found in input")
		return nil
	}
	o.log.WithField("credentials", len(sets)).WithField("width", o.outer.Width()).
		Info("probing servers")

	results := make([]Result, len(sets))
	tasks := make([]func(context.Context), len(sets))
	for i, cs := range sets {
		i, cs := i, cs
		tasks[i] = func(ctx context.Context) {
			results[i] = o.prober.Probe(ctx, cs, search)
			outcome := "ok"
			if !results[i].Authenticated {
				outcome = "login_failed"
			}
			metrics.ProbesTotal.WithLabelValues(outcome).Inc()
		}
	}
	o.outer.Run(ctx, tasks...)
	return results
}

// SortByAuthenticated orders records success-first, preserving extraction
// order within each class. The report surface renders them as-is.
func SortByAuthenticated(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Authenticated && !results[j].Authenticated
	})
}
