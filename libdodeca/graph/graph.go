package graph

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/fine-structures/dodeca-go/dodeca"
)

// NewModel builds the per-edge vertex masks and the pair-adjacency table from EdgePoints.
func NewModel() *Model {
	m := &Model{}

	for va := range m.edgeAt {
		for vb := range m.edgeAt[va] {
			m.edgeAt[va][vb] = -1
		}
	}

	for ei, pts := range EdgePoints {
		va, vb := pts[0], pts[1]
		if va == vb {
			panic(fmt.Sprintf("edge %d is a loop", ei))
		}
		m.edgeMasks[ei] = dodeca.VtxBit(va) | dodeca.VtxBit(vb)
		m.edgeAt[va][vb] = int8(ei)
		m.edgeAt[vb][va] = int8(ei)
	}

	// Each vertex contributes C(3,2) pairs of edges meeting there, and no two edges share two vertices.
	m.pairs = make([]dodeca.EdgeSubset, 0, dodeca.NumVertices*3)
	for i := 0; i < dodeca.NumEdges; i++ {
		for j := i + 1; j < dodeca.NumEdges; j++ {
			if m.edgeMasks[i]&m.edgeMasks[j] != 0 {
				m.pairs = append(m.pairs, dodeca.EdgeBit(i)|dodeca.EdgeBit(j))
			}
		}
	}

	return m
}

// PairMasks returns every unordered pair of vertex-adjacent edges.  The returned slice must not be modified.
func (m *Model) PairMasks() []dodeca.EdgeSubset {
	return m.pairs
}

// NumPairs returns the size of the pair-adjacency table.
func (m *Model) NumPairs() int {
	return len(m.pairs)
}

// VertexMask returns the two endpoints of the given edge.
func (m *Model) VertexMask(edge int) dodeca.VertexMask {
	return m.edgeMasks[edge]
}

// EdgeBetween returns the index of the edge joining va and vb.
func (m *Model) EdgeBetween(va, vb dodeca.VtxID) (int, bool) {
	if va >= dodeca.NumVertices || vb >= dodeca.NumVertices {
		return -1, false
	}
	ei := m.edgeAt[va][vb]
	return int(ei), ei >= 0
}

// Touches returns the vertices touched by the edges of x.
func (m *Model) Touches(x dodeca.EdgeSubset) dodeca.VertexMask {
	var vm dodeca.VertexMask
	for x != 0 {
		ei := bits.TrailingZeros32(uint32(x))
		vm |= m.edgeMasks[ei]
		x &= x - 1
	}
	return vm
}

// Children calls fn with every subset that grows parent by one edge while staying connected.
//
// A child is yielded once per pair mask that produces it, so the same child can be yielded more than once.
func (m *Model) Children(parent dodeca.EdgeSubset, fn func(child dodeca.EdgeSubset)) {
	for _, mask := range m.pairs {
		if mask&parent != 0 && mask|parent != parent {
			fn(parent | mask)
		}
	}
}

// IsConnected returns true if the edges of x, together with the vertices they touch, form one component.
// The empty subset is not connected.
func (m *Model) IsConnected(x dodeca.EdgeSubset) bool {
	if x == 0 || !x.IsValid() {
		return false
	}

	// Grow a component from the lowest edge, absorbing any remaining edge that touches it.
	first := bits.TrailingZeros32(uint32(x))
	reached := m.edgeMasks[first]
	remain := x &^ dodeca.EdgeBit(first)

	for grew := true; grew && remain != 0; {
		grew = false
		for r := remain; r != 0; r &= r - 1 {
			ei := bits.TrailingZeros32(uint32(r))
			if m.edgeMasks[ei]&reached != 0 {
				reached |= m.edgeMasks[ei]
				remain &^= dodeca.EdgeBit(ei)
				grew = true
			}
		}
	}

	return remain == 0
}

// WriteSubgraph writes x as a comma separated list of "va-vb" edges.
func (m *Model) WriteSubgraph(out io.Writer, x dodeca.EdgeSubset) {
	var buf [dodeca.NumEdges]int
	for i, ei := range x.Edges(buf[:0]) {
		if i > 0 {
			io.WriteString(out, ",")
		}
		pts := EdgePoints[ei]
		fmt.Fprintf(out, "%d-%d", pts[0], pts[1])
	}
}
