package graph

import (
	"github.com/alecthomas/participle/v2"
	"github.com/fine-structures/dodeca-go/dodeca"
	"github.com/pkg/errors"
)

// SubgraphExpr is a comma separated list of vertex paths, e.g. "0-1-2-3, 1-5".
type SubgraphExpr struct {
	Paths []*VtxPath `(@@ ("," @@)*)?`
}

// VtxPath is a walk along edges, naming each vertex visited.
type VtxPath struct {
	Start int64   `@Int`
	Steps []int64 `("-" @Int)*`
}

var parseSubgraphExpr = participle.MustBuild[SubgraphExpr]()

func toVtxID(v int64) (dodeca.VtxID, error) {
	if v < 0 || v >= dodeca.NumVertices {
		return 0, errors.Wrapf(dodeca.ErrBadVtxID, "vertex %d", v)
	}
	return dodeca.VtxID(v), nil
}

// ParseSubgraph returns the EdgeSubset named by the given subgraph expression.
func (m *Model) ParseSubgraph(expr string) (dodeca.EdgeSubset, error) {
	Xexpr, err := parseSubgraphExpr.ParseString("", expr)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %q", expr)
	}

	var x dodeca.EdgeSubset
	for _, path := range Xexpr.Paths {
		onVtx, err := toVtxID(path.Start)
		if err != nil {
			return 0, err
		}
		for _, step := range path.Steps {
			nextVtx, err := toVtxID(step)
			if err != nil {
				return 0, err
			}
			ei, ok := m.EdgeBetween(onVtx, nextVtx)
			if !ok {
				return 0, errors.Wrapf(dodeca.ErrNotAnEdge, "%d-%d", onVtx, nextVtx)
			}
			x |= dodeca.EdgeBit(ei)
			onVtx = nextVtx
		}
	}

	if x == 0 {
		return 0, errors.Wrapf(dodeca.ErrEmptyExpr, "%q", expr)
	}
	return x, nil
}
