package deriver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dfmderiver/dfm/pkg/logging"
	"github.com/dfmderiver/dfm/pkg/manifest"
)

// writePipeline is the concurrent write pipeline described for the
// deriver: fold produces persistence requests, which are deduplicated
// against a shared seen-set and then drained by a bounded-concurrency pool
// of puts. The traversal never blocks on a write completing; it only
// blocks if the pool is already at its concurrency cap.
type writePipeline struct {
	store  *manifest.Store
	ctx    context.Context
	group  *errgroup.Group
	sem    chan struct{}
	mu     sync.Mutex
	seen   map[manifest.ManifestID]bool
	logger *logging.Logger
}

// newWritePipeline creates a write pipeline and the derived context its
// puts should run under; that context is canceled as soon as any put (or
// any other errgroup member) fails, so in-flight traversal work observes
// the failure promptly.
func newWritePipeline(ctx context.Context, store *manifest.Store, concurrency int, logger *logging.Logger) (*writePipeline, context.Context) {
	group, groupCtx := errgroup.WithContext(ctx)
	return &writePipeline{
		store:  store,
		ctx:    groupCtx,
		group:  group,
		sem:    make(chan struct{}, concurrency),
		seen:   make(map[manifest.ManifestID]bool),
		logger: logger,
	}, groupCtx
}

// enqueue submits node for persistence under id, unless id has already been
// enqueued during this derivation. The seen-check and insertion are fused
// under a single lock so that two concurrent folds producing the same
// content-addressed id never both submit a write.
func (p *writePipeline) enqueue(ctx context.Context, id manifest.ManifestID, node *manifest.Node) error {
	p.mu.Lock()
	if p.seen[id] {
		p.mu.Unlock()
		return nil
	}
	p.seen[id] = true
	p.mu.Unlock()

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.group.Go(func() error {
		defer func() { <-p.sem }()
		if err := p.store.Put(p.ctx, id, node); err != nil {
			return err
		}
		return nil
	})
	return nil
}

// wait blocks until every enqueued write has completed, returning the first
// error encountered (if any). It must be called exactly once, after the
// traversal has finished producing writes.
func (p *writePipeline) wait() error {
	return p.group.Wait()
}
