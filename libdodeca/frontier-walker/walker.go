package walker

import (
	"context"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fine-structures/dodeca-go/dodeca"
	"github.com/fine-structures/dodeca-go/libdodeca/graph"
	"github.com/fine-structures/dodeca-go/libdodeca/sets"
	"github.com/fine-structures/dodeca-go/libdodeca/symmetry"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

// ctx is polled once every this many parents
const kCancelCheckMask = 1<<12 - 1

// Walker is a level-synchronous breadth first walk over connected edge subsets.
//
// Level k processes the frontier of k-edge subsets and builds the frontier of (k+1)-edge subsets.
type Walker struct {
	opts       dodeca.EnumOpts
	model      *graph.Model
	sym        *symmetry.Engine
	policy     Policy
	discovered dodeca.IntSet // every subset processed so far (never shrinks)
	curr       dodeca.IntSet // frontier processed by the next Step
	next       dodeca.IntSet // frontier under construction
	level      int           // levels completed
	parents    []dodeca.EdgeSubset
}

// NewWalker returns a Walker seeded with the single-edge subset {edge 0}.
func NewWalker(opts dodeca.EnumOpts) (*Walker, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers > 1 && opts.Strategy == dodeca.OrbitMark {
		klog.Warningf("strategy %v is serial; ignoring %d workers", opts.Strategy, opts.Workers)
	}

	sym := symmetry.NewEngine()
	w := &Walker{
		opts:       opts,
		model:      graph.NewModel(),
		sym:        sym,
		policy:     NewPolicy(opts.Strategy, sym, opts.SetKind),
		discovered: sets.New(opts.SetKind),
		curr:       sets.New(opts.SetKind),
		next:       sets.New(opts.SetKind),
	}

	seed := dodeca.EdgeBit(0)
	w.curr.TryAdd(seed)
	w.discovered.TryAdd(seed)

	return w, nil
}

// Model returns the graph model this Walker grows subsets over.
func (w *Walker) Model() *graph.Model {
	return w.model
}

// Level returns the number of levels completed.
func (w *Walker) Level() int {
	return w.level
}

// Frontier returns the frontier the next Step will process.  The caller must not modify it.
func (w *Walker) Frontier() dodeca.IntSet {
	return w.curr
}

// Discovered returns every subset processed so far.  The caller must not modify it.
func (w *Walker) Discovered() dodeca.IntSet {
	return w.discovered
}

// Step processes the current frontier, replacing it with the frontier one edge larger.
func (w *Walker) Step(ctx context.Context) (dodeca.LevelReport, error) {
	startTime := time.Now()

	report := dodeca.LevelReport{
		Level:    w.level + 1,
		Frontier: w.curr.Len(),
	}
	if err := ctx.Err(); err != nil {
		return report, errors.Wrapf(err, "walking level %d", report.Level)
	}

	var err error
	if w.opts.Workers > 1 && w.opts.Strategy == dodeca.CanonicalInsert {
		report.Processed, err = w.expandPartitioned(ctx)
	} else {
		report.Processed, err = w.expand(ctx)
	}
	if err != nil {
		return report, errors.Wrapf(err, "walking level %d", report.Level)
	}

	report.Discovered = w.discovered.Len()

	w.curr, w.next = w.next, w.curr
	w.next.Clear()
	w.policy.EndLevel()
	w.level++

	klog.V(1).Infof("level %2d: %9s processed, %10s frontier, %10s discovered  (%v)",
		report.Level,
		humanize.Comma(report.Processed),
		humanize.Comma(report.Frontier),
		humanize.Comma(report.Discovered),
		time.Since(startTime).Round(time.Millisecond))

	return report, nil
}

// expand processes each parent of the current frontier in ascending order on the calling goroutine.
func (w *Walker) expand(ctx context.Context) (processed int64, err error) {
	visited := 0

	w.curr.Each(func(parent dodeca.EdgeSubset) bool {
		visited++
		if visited&kCancelCheckMask == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}

		if w.policy.ShouldSkip(parent) {
			return true
		}
		w.policy.RecordProcessed(parent)
		w.discovered.TryAdd(parent)
		processed++

		w.model.Children(parent, func(child dodeca.EdgeSubset) {
			w.next.TryAdd(w.policy.ChildKey(child))
		})
		return true
	})

	return processed, err
}

// expandPartitioned splits the admitted parents across workers which key children independently.
// Only the merge into next and discovered touches shared state, and it runs once all workers finish.
func (w *Walker) expandPartitioned(ctx context.Context) (int64, error) {
	parents := w.parents[:0]
	w.curr.Each(func(parent dodeca.EdgeSubset) bool {
		if !w.policy.ShouldSkip(parent) {
			w.policy.RecordProcessed(parent)
			parents = append(parents, parent)
		}
		return true
	})
	w.parents = parents

	numWorkers := w.opts.Workers
	chunkSz := (len(parents) + numWorkers - 1) / numWorkers
	results := make([][]dodeca.EdgeSubset, numWorkers)

	grp, grpCtx := errgroup.WithContext(ctx)
	for wi := 0; wi < numWorkers; wi++ {
		lo := min(wi*chunkSz, len(parents))
		hi := min(lo+chunkSz, len(parents))
		part := parents[lo:hi]
		wi := wi // per-iteration copy (go 1.21 loop var semantics)

		grp.Go(func() error {
			children := make([]dodeca.EdgeSubset, 0, 8*len(part))
			for i, parent := range part {
				if i&kCancelCheckMask == 0 {
					if err := grpCtx.Err(); err != nil {
						return err
					}
				}
				w.model.Children(parent, func(child dodeca.EdgeSubset) {
					children = append(children, w.policy.ChildKey(child))
				})
			}
			slices.Sort(children)
			results[wi] = slices.Compact(children)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, err
	}

	for _, parent := range parents {
		w.discovered.TryAdd(parent)
	}
	for _, children := range results {
		for _, child := range children {
			w.next.TryAdd(child)
		}
	}

	return int64(len(parents)), nil
}

// Close releases all sets held by this Walker.
func (w *Walker) Close() {
	w.policy.Close()
	w.discovered.Close()
	w.curr.Close()
	w.next.Close()
	w.parents = nil
}

func enumerate(ctx context.Context, opts dodeca.EnumOpts) (*dodeca.LevelStream, error) {
	w, err := NewWalker(opts)
	if err != nil {
		return nil, err
	}

	klog.V(1).Infof("walking %d levels (strategy=%v, set=%v, workers=%d, pairs=%d)",
		opts.Levels, opts.Strategy, opts.SetKind, opts.Workers, w.model.NumPairs())

	stream := dodeca.NewLevelStream()

	go func() {
		defer w.Close()

		var err error
		for w.Level() < opts.Levels {
			var report dodeca.LevelReport
			report, err = w.Step(ctx)
			if err != nil {
				break
			}
			select {
			case stream.Outlet <- report:
			case <-ctx.Done():
				err = ctx.Err()
			}
			if err != nil {
				break
			}
		}
		stream.CloseWithError(err)
	}()

	return stream, nil
}

func run(ctx context.Context, opts dodeca.EnumOpts) (*Result, error) {
	stream, err := enumerate(ctx, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		NumPairs: graph.NewModel().NumPairs(),
		Levels:   make([]dodeca.LevelReport, 0, opts.Levels),
	}
	for report := range stream.Outlet {
		res.Levels = append(res.Levels, report)
		res.Total = report.Discovered
	}
	if err = stream.Err(); err != nil {
		return res, err
	}
	return res, nil
}
