// Package deriver implements the DFM Deriver: given a changeset id, its
// parents' previously-derived manifest roots, and a change tree describing
// what was added, removed, or conflicted between those parents and the
// changeset, it produces a new manifest root id via a bounded-parallel
// unfold/fold traversal backed by a concurrent write pipeline.
package deriver

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dfmderiver/dfm/pkg/changetree"
	"github.com/dfmderiver/dfm/pkg/logging"
	"github.com/dfmderiver/dfm/pkg/manifest"
	"github.com/dfmderiver/dfm/pkg/pathtree"
)

// DefaultFanOut is the default cap on concurrent in-flight unfold/fold
// operations during a single derivation.
const DefaultFanOut = 256

// DefaultWriteConcurrency is the default cap on concurrent in-flight blob
// writes during a single derivation.
const DefaultWriteConcurrency = 1024

// Deriver derives DFM roots from changesets, their parents, and change
// trees. A Deriver is safe for concurrent use by multiple goroutines; each
// call to Derive runs its own independent traversal and write pipeline.
type Deriver struct {
	store            *manifest.Store
	fanOut           int
	writeConcurrency int
	logger           *logging.Logger
}

// Option configures a Deriver constructed by New.
type Option func(*Deriver)

// WithFanOut overrides the default traversal concurrency cap.
func WithFanOut(n int) Option {
	return func(d *Deriver) { d.fanOut = n }
}

// WithWriteConcurrency overrides the default write pipeline concurrency cap.
func WithWriteConcurrency(n int) Option {
	return func(d *Deriver) { d.writeConcurrency = n }
}

// WithLogger attaches a logger to the deriver.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Deriver) { d.logger = logger }
}

// New creates a Deriver backed by store.
func New(store *manifest.Store, options ...Option) *Deriver {
	d := &Deriver{
		store:            store,
		fanOut:           DefaultFanOut,
		writeConcurrency: DefaultWriteConcurrency,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Derive computes the DFM root id for a changeset, given its parents'
// previously-derived roots and the change tree the ChangeTree Builder
// produced for this changeset relative to those parents. It returns only
// once every blob it needed to write is durably persisted.
func (d *Deriver) Derive(
	ctx context.Context,
	csID manifest.ChangesetID,
	parents []manifest.ManifestID,
	changes *pathtree.Tree[changetree.PathChange],
) (manifest.ManifestID, error) {
	pipeline, pipelineCtx := newWritePipeline(ctx, d.store, d.writeConcurrency, d.logger)

	t := &traversal{
		store:    d.store,
		csID:     csID,
		pipeline: pipeline,
		sem:      make(chan struct{}, d.fanOut),
		logger:   d.logger,
	}

	rootID, traversalErr := t.process(pipelineCtx, changes, parents)
	waitErr := pipeline.wait()

	if traversalErr != nil {
		return manifest.ManifestID{}, traversalErr
	}
	if waitErr != nil {
		return manifest.ManifestID{}, waitErr
	}

	if rootID != nil {
		d.logger.Tracef("derived root %s for changeset %s", rootID, csID)
		return *rootID, nil
	}

	// No deletions exist anywhere in this changeset's lineage: emit the
	// documented empty-root exception rather than a sentinel absence id.
	emptyRoot := &manifest.Node{}
	emptyRootID := d.store.ComputeID(emptyRoot)
	if err := d.store.Put(ctx, emptyRootID, emptyRoot); err != nil {
		return manifest.ManifestID{}, err
	}
	d.logger.Tracef("derived empty root %s for changeset %s", emptyRootID, csID)
	return emptyRootID, nil
}

// traversal holds the state shared across one derivation's unfold/fold
// recursion: the manifest store, the changeset being derived, the write
// pipeline writes are submitted to, and the fan-out semaphore bounding
// concurrent in-flight node processing.
type traversal struct {
	store    *manifest.Store
	csID     manifest.ChangesetID
	pipeline *writePipeline
	sem      chan struct{}
	logger   *logging.Logger
}

// childTask describes one child subtree to recurse into: its path element,
// its slice of the change tree, and the manifest ids (if any) its parents
// assign to that path element.
type childTask struct {
	name    pathtree.PathElement
	changes *pathtree.Tree[changetree.PathChange]
	parents []manifest.ManifestID
}

// childResult is what a recursed-into child task yields once its own
// unfold/fold completes: its path element and its resulting manifest id, or
// a nil id if the subtree resolved to empty and was dropped.
type childResult struct {
	name pathtree.PathElement
	id   *manifest.ManifestID
}

// process implements the unfold-then-fold step for a single virtual tree
// node. It acquires a fan-out slot for its entire duration, including
// waiting on its children's results, matching the bounded-traversal
// contract described for this algorithm.
func (t *traversal) process(
	ctx context.Context,
	changes *pathtree.Tree[changetree.PathChange],
	parents []manifest.ManifestID,
) (*manifest.ManifestID, error) {
	select {
	case t.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-t.sem }()

	var localChange changetree.PathChange
	var hasLocalChange bool
	var childNames []pathtree.PathElement
	if changes != nil {
		localChange, hasLocalChange = changes.Value()
		childNames = changes.Children()
	}
	hasDescendantChanges := len(childNames) > 0

	switch {
	case len(parents) <= 1:
		return t.processSingleOrNoParent(ctx, changes, parents, localChange, hasLocalChange, childNames, hasDescendantChanges)
	default:
		return t.processMultiParent(ctx, changes, parents, localChange, hasLocalChange, childNames, hasDescendantChanges)
	}
}

// processSingleOrNoParent handles the 0- and 1-parent cases, which share
// the same shape: at most one base node to copy subentries from, and (when
// a single parent exists) each child's parent set is either empty or a
// single id looked up directly in that parent.
func (t *traversal) processSingleOrNoParent(
	ctx context.Context,
	changes *pathtree.Tree[changetree.PathChange],
	parents []manifest.ManifestID,
	localChange changetree.PathChange,
	hasLocalChange bool,
	childNames []pathtree.PathElement,
	hasDescendantChanges bool,
) (*manifest.ManifestID, error) {
	if !hasLocalChange && !hasDescendantChanges {
		// Reuse: pass the sole parent's id through untouched, or none if
		// there was no parent to begin with.
		if len(parents) == 0 {
			return nil, nil
		}
		return &parents[0], nil
	}

	var base *manifest.Node
	if len(parents) == 1 {
		node, err := t.store.Load(ctx, parents[0])
		if err != nil {
			return nil, err
		}
		base = node
	}

	tasks := make([]childTask, len(childNames))
	for i, name := range childNames {
		var childParents []manifest.ManifestID
		if base != nil {
			if id, ok := base.Lookup(name); ok {
				childParents = []manifest.ManifestID{id}
			}
		}
		tasks[i] = childTask{name: name, changes: changes.Child(name), parents: childParents}
	}

	results, err := t.recurseInto(ctx, tasks)
	if err != nil {
		return nil, err
	}

	class, err := classify(hasLocalChange, localChange, hasDescendantChanges)
	if err != nil {
		return nil, err
	}

	return t.fold(ctx, class, base, results)
}

// processMultiParent handles the ≥2-parent case. When there is neither a
// local change nor any descendant change, and all parents already agree
// exactly (same id), the subtree is reused without loading anything. In
// every other case, all parent nodes are loaded so that their subentries
// can be unioned into the child task set and their is_deleted status
// compared.
func (t *traversal) processMultiParent(
	ctx context.Context,
	changes *pathtree.Tree[changetree.PathChange],
	parents []manifest.ManifestID,
	localChange changetree.PathChange,
	hasLocalChange bool,
	childNames []pathtree.PathElement,
	hasDescendantChanges bool,
) (*manifest.ManifestID, error) {
	if !hasLocalChange && !hasDescendantChanges {
		if allEqual(parents) {
			return &parents[0], nil
		}

		parentNodes, err := t.loadAll(ctx, parents)
		if err != nil {
			return nil, err
		}

		deleted := parentNodes[0].IsDeleted()
		for _, node := range parentNodes[1:] {
			if node.IsDeleted() != deleted {
				return nil, fmt.Errorf("%w: parents disagree on deletion state with no local change", manifest.ErrInconsistentParents)
			}
		}

		class := classificationRemoveIfNowEmpty
		if deleted {
			class = classificationCreateDeleted
		}
		return t.fold(ctx, class, nil, nil)
	}

	parentNodes, err := t.loadAll(ctx, parents)
	if err != nil {
		return nil, err
	}

	names := make(map[pathtree.PathElement]bool, len(childNames))
	for _, name := range childNames {
		names[name] = true
	}
	for _, node := range parentNodes {
		for _, entry := range node.Subentries {
			names[entry.Name] = true
		}
	}
	sortedNames := make([]pathtree.PathElement, 0, len(names))
	for name := range names {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	tasks := make([]childTask, len(sortedNames))
	for i, name := range sortedNames {
		var childParents []manifest.ManifestID
		for _, node := range parentNodes {
			if id, ok := node.Lookup(name); ok {
				childParents = append(childParents, id)
			}
		}
		var childChanges *pathtree.Tree[changetree.PathChange]
		if changes != nil {
			childChanges = changes.Child(name)
		}
		tasks[i] = childTask{name: name, changes: childChanges, parents: childParents}
	}

	results, err := t.recurseInto(ctx, tasks)
	if err != nil {
		return nil, err
	}

	class, err := classify(hasLocalChange, localChange, hasDescendantChanges)
	if err != nil {
		return nil, err
	}

	return t.fold(ctx, class, nil, results)
}

// classify implements the unfold state table for the rows that do not
// require parent-agreement checks: once we know there is a local change or
// a descendant change, the classification depends only on that local
// change tag.
func classify(hasLocalChange bool, localChange changetree.PathChange, hasDescendantChanges bool) (classification, error) {
	if !hasLocalChange {
		if !hasDescendantChanges {
			return classificationReuse, nil
		}
		return classificationRemoveIfNowEmpty, nil
	}
	switch localChange {
	case changetree.PathAdd:
		return classificationRemoveIfNowEmpty, nil
	case changetree.PathRemove:
		return classificationCreateDeleted, nil
	case changetree.PathFileDirConflict:
		return classificationRemoveIfNowEmpty, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized path change %v", manifest.ErrInvariantViolation, localChange)
	}
}

// recurseInto processes every child task concurrently, bounded by the
// shared fan-out semaphore each recursive process call itself acquires
// against. It aborts and returns the first error encountered from any
// child, canceling the others via the derived context.
func (t *traversal) recurseInto(ctx context.Context, tasks []childTask) ([]childResult, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	results := make([]childResult, len(tasks))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		i, task := i, task
		group.Go(func() error {
			id, err := t.process(groupCtx, task.changes, task.parents)
			if err != nil {
				return err
			}
			results[i] = childResult{name: task.name, id: id}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// loadAll loads every node in ids concurrently, one goroutine per id (it
// does not take fan-out semaphore slots of its own), preserving input order
// in the returned slice.
func (t *traversal) loadAll(ctx context.Context, ids []manifest.ManifestID) ([]*manifest.Node, error) {
	nodes := make([]*manifest.Node, len(ids))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			node, err := t.store.Load(groupCtx, id)
			if err != nil {
				return err
			}
			nodes[i] = node
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// fold applies a classification to produce (or skip) this node's manifest,
// given its base (if any) and its children's results.
func (t *traversal) fold(
	ctx context.Context,
	class classification,
	base *manifest.Node,
	results []childResult,
) (*manifest.ManifestID, error) {
	updates := make(map[pathtree.PathElement]*manifest.ManifestID, len(results))
	for _, result := range results {
		if result.name == "" {
			return nil, fmt.Errorf("%w: child fold yielded no path element", manifest.ErrInvariantViolation)
		}
		id := result.id
		updates[result.name] = id
	}

	var linknode *manifest.ChangesetID
	if class == classificationCreateDeleted {
		csID := t.csID
		linknode = &csID
	}

	node := manifest.CopyAndUpdateSubentries(base, linknode, updates)

	if class == classificationRemoveIfNowEmpty && node.IsEmpty() {
		return nil, nil
	}

	id := t.store.ComputeID(node)
	if err := t.pipeline.enqueue(ctx, id, node); err != nil {
		return nil, err
	}
	return &id, nil
}

// allEqual reports whether every id in ids equals ids[0]. It is used to
// short-circuit the ambiguous "parents agree but have no local or
// descendant change" row of the unfold state table: when the parents'
// subtrees are already byte-identical, the correct behavior is to reuse
// that shared id rather than collapse it into a fresh, less specific node.
func allEqual(ids []manifest.ManifestID) bool {
	for _, id := range ids[1:] {
		if id != ids[0] {
			return false
		}
	}
	return true
}
