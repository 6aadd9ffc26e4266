package walker

import (
	"context"

	"github.com/fine-structures/dodeca-go/dodeca"
)

// Enumerate is the primary entry point: it walks opts.Levels levels of connected edge subsets, emitting a
// LevelReport as each level completes.  The returned stream closes when the walk ends or ctx is cancelled.
func Enumerate(ctx context.Context, opts dodeca.EnumOpts) (*dodeca.LevelStream, error) {
	return enumerate(ctx, opts)
}

// Run walks opts.Levels levels and returns once the walk is complete.
func Run(ctx context.Context, opts dodeca.EnumOpts) (*Result, error) {
	return run(ctx, opts)
}

// Result summarizes a completed walk.
type Result struct {
	NumPairs int                  // size of the pair-adjacency table
	Levels   []dodeca.LevelReport // one per level walked
	Total    int64                // symmetry-distinct subgraphs found across all levels walked
}

// Policy decides which frontier parents are processed and how children are keyed into the next frontier.
//
// The walker calls ShouldSkip then RecordProcessed for each parent in ascending order; ChildKey may be called
// concurrently from several goroutines and so must not mutate the Policy.
type Policy interface {

	// ShouldSkip returns true if a member of parent's symmetry class was already processed this level.
	ShouldSkip(parent dodeca.EdgeSubset) bool

	// RecordProcessed notes that parent is the processed member of its class for this level.
	RecordProcessed(parent dodeca.EdgeSubset)

	// ChildKey returns the value inserted into the next frontier for the given child.
	ChildKey(child dodeca.EdgeSubset) dodeca.EdgeSubset

	// EndLevel resets all per-level state.
	EndLevel()

	// Close releases all resources held by this Policy.
	Close()
}
