package walker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fine-structures/dodeca-go/dodeca"
	walker "github.com/fine-structures/dodeca-go/libdodeca/frontier-walker"
	"github.com/fine-structures/dodeca-go/libdodeca/sets"
	"github.com/fine-structures/dodeca-go/libdodeca/symmetry"
	"github.com/stretchr/testify/require"
)

// gLevelCounts[k-1] is the number of symmetry-distinct connected subgraphs having k edges.
var gLevelCounts = []int64{
	1, 1, 4, 6, 19, 43, 119, 300, 818, 2083,
	5357, 13078, 30674, 66723, 133347, 236182, 360834, 455307, 452799, 338011,
	193929, 88217, 32545, 9834, 2408, 482, 78, 11, 1, 1,
}

const gTotal = 2423212

func walkOpts(levels int, strategy dodeca.Strategy, kind dodeca.SetKind, workers int) dodeca.EnumOpts {
	return dodeca.EnumOpts{
		Levels:   levels,
		Strategy: strategy,
		SetKind:  kind,
		Workers:  workers,
	}
}

func checkLevels(t *testing.T, res *walker.Result, levels int) {
	t.Helper()

	require.Equal(t, 60, res.NumPairs)
	require.Len(t, res.Levels, levels)

	total := int64(0)
	for i, r := range res.Levels {
		require.Equal(t, i+1, r.Level)
		require.Equal(t, gLevelCounts[i], r.Processed, "level %d", r.Level)
		total += r.Processed
		require.Equal(t, total, r.Discovered, "level %d", r.Level)
	}
	require.Equal(t, total, res.Total)
}

func TestGoldLevels(t *testing.T) {
	for _, strategy := range []dodeca.Strategy{dodeca.CanonicalInsert, dodeca.OrbitMark} {
		t.Run(strategy.String(), func(t *testing.T) {
			res, err := walker.Run(context.Background(), walkOpts(12, strategy, dodeca.SetRoaring, 1))
			require.NoError(t, err)
			checkLevels(t, res, 12)
			require.Equal(t, int64(21829), res.Total)
		})
	}
}

func TestStrategyEquivalence(t *testing.T) {
	const levels = 7

	var first *walker.Result
	for _, kind := range []dodeca.SetKind{dodeca.SetRoaring, dodeca.SetTree, dodeca.SetLSM} {
		for _, strategy := range []dodeca.Strategy{dodeca.CanonicalInsert, dodeca.OrbitMark} {
			res, err := walker.Run(context.Background(), walkOpts(levels, strategy, kind, 1))
			require.NoError(t, err, "%v/%v", kind, strategy)
			checkLevels(t, res, levels)
			if first == nil {
				first = res
			}
			require.Equal(t, first.Levels[levels-1].Discovered, res.Levels[levels-1].Discovered)
		}
	}
}

func TestPartitioned(t *testing.T) {
	serial, err := walker.Run(context.Background(), walkOpts(11, dodeca.CanonicalInsert, dodeca.SetRoaring, 1))
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8} {
		res, err := walker.Run(context.Background(), walkOpts(11, dodeca.CanonicalInsert, dodeca.SetRoaring, workers))
		require.NoError(t, err)
		require.Equal(t, serial.Levels, res.Levels, "workers=%d", workers)
	}

	// orbit marking ignores the worker count
	res, err := walker.Run(context.Background(), walkOpts(11, dodeca.OrbitMark, dodeca.SetRoaring, 4))
	require.NoError(t, err)
	checkLevels(t, res, 11)
}

func TestFirstLevel(t *testing.T) {
	ctx := context.Background()

	w, err := walker.NewWalker(walkOpts(1, dodeca.OrbitMark, dodeca.SetRoaring, 1))
	require.NoError(t, err)
	defer w.Close()

	require.Equal(t, []dodeca.EdgeSubset{1}, sets.AppendTo(w.Frontier(), nil))
	require.Equal(t, int64(1), w.Discovered().Len())

	r, err := w.Step(ctx)
	require.NoError(t, err)
	require.Equal(t, dodeca.LevelReport{Level: 1, Processed: 1, Frontier: 1, Discovered: 1}, r)

	// edge 0 spans vertices 0 and 1, each touching two more edges (1, 4, 5, 9)
	want := []dodeca.EdgeSubset{
		dodeca.EdgeBit(0) | dodeca.EdgeBit(1),
		dodeca.EdgeBit(0) | dodeca.EdgeBit(4),
		dodeca.EdgeBit(0) | dodeca.EdgeBit(5),
		dodeca.EdgeBit(0) | dodeca.EdgeBit(9),
	}
	require.Equal(t, want, sets.AppendTo(w.Frontier(), nil))

	// all four are one class, so only the first is processed at level 2
	r, err = w.Step(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), r.Processed)
	require.Equal(t, int64(4), r.Frontier)
	require.Equal(t, int64(2), r.Discovered)
	require.True(t, w.Discovered().Contains(want[0]))

	// canonical insertion keeps only the minimal representative
	wc, err := walker.NewWalker(walkOpts(1, dodeca.CanonicalInsert, dodeca.SetTree, 1))
	require.NoError(t, err)
	defer wc.Close()
	_, err = wc.Step(ctx)
	require.NoError(t, err)
	require.Equal(t, []dodeca.EdgeSubset{want[0]}, sets.AppendTo(wc.Frontier(), nil))
}

func TestFrontierInvariants(t *testing.T) {
	ctx := context.Background()
	sym := symmetry.NewEngine()

	for _, strategy := range []dodeca.Strategy{dodeca.CanonicalInsert, dodeca.OrbitMark} {
		w, err := walker.NewWalker(walkOpts(dodeca.NumEdges, strategy, dodeca.SetRoaring, 1))
		require.NoError(t, err)

		prevDiscovered := w.Discovered().Len()
		for level := 1; level <= 9; level++ {
			sampled := 0
			w.Frontier().Each(func(x dodeca.EdgeSubset) bool {
				if x.NumEdges() != level || !w.Model().IsConnected(x) {
					t.Fatalf("%v: frontier %d holds %v", strategy, level, x)
				}
				if strategy == dodeca.CanonicalInsert && sym.MinRepr(x) != x {
					t.Fatalf("frontier %d holds non-canonical %v", level, x)
				}
				sampled++
				return sampled < 2000
			})

			r, err := w.Step(ctx)
			require.NoError(t, err)
			require.GreaterOrEqual(t, r.Discovered, prevDiscovered)
			require.Equal(t, w.Discovered().Len(), r.Discovered)
			prevDiscovered = r.Discovered
		}

		// no two discovered subsets share a class
		canon := sets.New(dodeca.SetRoaring)
		w.Discovered().Each(func(x dodeca.EdgeSubset) bool {
			if !canon.TryAdd(sym.MinRepr(x)) {
				t.Fatalf("%v: %v discovered twice", strategy, x)
			}
			return true
		})
		canon.Close()
		w.Close()
	}
}

func TestEnumerateStream(t *testing.T) {
	stream, err := walker.Enumerate(context.Background(), walkOpts(5, dodeca.CanonicalInsert, dodeca.SetRoaring, 1))
	require.NoError(t, err)

	last, err := stream.PullAll()
	require.NoError(t, err)
	require.Equal(t, 5, last.Level)
	require.Equal(t, int64(1+1+4+6+19), last.Discovered)
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := walker.Run(ctx, walkOpts(dodeca.NumEdges, dodeca.OrbitMark, dodeca.SetRoaring, 1))
	require.True(t, errors.Is(err, context.Canceled), "%v", err)
	require.Empty(t, res.Levels)
}

func TestStepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		w, err := walker.NewWalker(walkOpts(dodeca.NumEdges, dodeca.CanonicalInsert, dodeca.SetRoaring, workers))
		require.NoError(t, err)

		_, err = w.Step(ctx)
		require.True(t, errors.Is(err, context.Canceled), "%v", err)
		require.Equal(t, 0, w.Level())
		require.Equal(t, []dodeca.EdgeSubset{1}, sets.AppendTo(w.Frontier(), nil))
		w.Close()
	}
}

func TestBadOpts(t *testing.T) {
	_, err := walker.Run(context.Background(), walkOpts(0, dodeca.CanonicalInsert, dodeca.SetRoaring, 1))
	require.True(t, errors.Is(err, dodeca.ErrBadLevels))

	_, err = walker.NewWalker(walkOpts(3, dodeca.Strategy(7), dodeca.SetRoaring, 1))
	require.True(t, errors.Is(err, dodeca.ErrBadStrategy))
}

// TestGoldComplete walks all 30 levels; the full edge set is the lone subgraph at level 30.
func TestGoldComplete(t *testing.T) {
	if testing.Short() {
		t.Skip("complete walk takes minutes")
	}

	res, err := walker.Run(context.Background(), walkOpts(dodeca.NumEdges, dodeca.OrbitMark, dodeca.SetRoaring, 1))
	require.NoError(t, err)
	checkLevels(t, res, dodeca.NumEdges)
	require.Equal(t, int64(gTotal), res.Total)
	require.Equal(t, int64(1), res.Levels[dodeca.NumEdges-1].Processed)
}
