package dodeca_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fine-structures/dodeca-go/dodeca"
	"github.com/stretchr/testify/require"
)

func TestEdgeSubset(t *testing.T) {
	x := dodeca.EdgeBit(0) | dodeca.EdgeBit(4) | dodeca.EdgeBit(29)
	require.Equal(t, 3, x.NumEdges())
	require.True(t, x.HasEdge(4))
	require.False(t, x.HasEdge(5))
	require.False(t, x.HasEdge(30))
	require.Equal(t, []int{0, 4, 29}, x.Edges(nil))
	require.Equal(t, "{0,4,29}", x.String())
	require.Equal(t, "{}", dodeca.EdgeSubset(0).String())
	require.True(t, dodeca.AllEdges.IsValid())
	require.False(t, (dodeca.AllEdges + 1).IsValid())
	require.Equal(t, dodeca.NumEdges, dodeca.AllEdges.NumEdges())

	require.Panics(t, func() { dodeca.EdgeBit(dodeca.NumEdges) })
	require.Panics(t, func() { dodeca.VtxBit(dodeca.NumVertices) })
}

func TestParseNames(t *testing.T) {
	s, err := dodeca.ParseStrategy("Orbit")
	require.NoError(t, err)
	require.Equal(t, dodeca.OrbitMark, s)

	_, err = dodeca.ParseStrategy("sideways")
	require.True(t, errors.Is(err, dodeca.ErrBadStrategy))

	kind, err := dodeca.ParseSetKind("lsm")
	require.NoError(t, err)
	require.Equal(t, dodeca.SetLSM, kind)
	require.Equal(t, "tree", dodeca.SetTree.String())

	_, err = dodeca.ParseSetKind("hash")
	require.True(t, errors.Is(err, dodeca.ErrBadSetKind))
}

func TestValidate(t *testing.T) {
	opts := dodeca.DefaultEnumOpts()
	require.NoError(t, opts.Validate())

	opts.Levels = 31
	require.True(t, errors.Is(opts.Validate(), dodeca.ErrBadLevels))

	opts = dodeca.DefaultEnumOpts()
	opts.Workers = 0
	require.True(t, errors.Is(opts.Validate(), dodeca.ErrBadWorkers))

	opts = dodeca.DefaultEnumOpts()
	opts.SetKind = 9
	require.True(t, errors.Is(opts.Validate(), dodeca.ErrBadSetKind))
}

func TestLoadOpts(t *testing.T) {
	dir := t.TempDir()

	pathname := filepath.Join(dir, "walk.toml")
	require.NoError(t, os.WriteFile(pathname, []byte("levels = 12\nstrategy = \"orbit\"\nset = \"tree\"\n"), 0644))

	opts := dodeca.DefaultEnumOpts()
	require.NoError(t, dodeca.LoadOpts(pathname, &opts))
	require.Equal(t, 12, opts.Levels)
	require.Equal(t, dodeca.OrbitMark, opts.Strategy)
	require.Equal(t, dodeca.SetTree, opts.SetKind)
	require.Equal(t, 1, opts.Workers)

	// round trip through WriteOpts
	var buf bytes.Buffer
	require.NoError(t, dodeca.WriteOpts(&buf, opts))
	again := filepath.Join(dir, "again.toml")
	require.NoError(t, os.WriteFile(again, buf.Bytes(), 0644))
	reread := dodeca.DefaultEnumOpts()
	require.NoError(t, dodeca.LoadOpts(again, &reread))
	require.Equal(t, opts, reread)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("levels = 12\ncolour = \"blue\"\n"), 0644))
	opts = dodeca.DefaultEnumOpts()
	require.True(t, errors.Is(dodeca.LoadOpts(bad, &opts), dodeca.ErrBadOpts))

	badStrategy := filepath.Join(dir, "strategy.toml")
	require.NoError(t, os.WriteFile(badStrategy, []byte("strategy = \"sideways\"\n"), 0644))
	require.Error(t, dodeca.LoadOpts(badStrategy, &opts))
}

func TestLevelStream(t *testing.T) {
	stream := dodeca.NewLevelStream()
	go func() {
		for k := 1; k <= 3; k++ {
			stream.Outlet <- dodeca.LevelReport{Level: k, Processed: int64(k * 10), Discovered: int64(k * 100)}
		}
		stream.CloseWithError(nil)
	}()

	var out bytes.Buffer
	last, err := stream.Print(&out).PullAll()
	require.NoError(t, err)
	require.Equal(t, 3, last.Level)
	require.Equal(t, int64(300), last.Discovered)
	require.Equal(t, "1 10\n2 20\n3 30\n", out.String())
}
