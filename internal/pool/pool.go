// Package pool provides named bounded worker pools. The prober uses two:
// an outer "servers" pool (one slot per credential set being probed) and an
// inner "actions" pool (one slot per catalog call within a probe). Naming
// them keeps the two concurrency budgets distinct configuration values
// instead of scattered constants.
package pool

import (
	"context"
	"sync"
)

// Pool runs tasks with at most width of them in flight.
type Pool struct {
	name  string
	width int
}

// New returns a pool. width < 1 is clamped to 1.
func New(name string, width int) *Pool {
	if width < 1 {
		width = 1
	}
	return &Pool{name: name, width: width}
}

func (p *Pool) Name() string { return p.name }
func (p *Pool) Width() int   { return p.width }

// Run executes all tasks under the pool's width and blocks until every task
// has returned. Tasks that have not yet acquired a slot when ctx is
// cancelled never start; a task already running is not interrupted and
// owns its own timeout.
func (p *Pool) Run(ctx context.Context, tasks ...func(context.Context)) {
	sem := make(chan struct{}, p.width)
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task func(context.Context)) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()
			task(ctx)
		}(task)
	}
	wg.Wait()
}
