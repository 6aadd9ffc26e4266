package graph

import (
	"github.com/fine-structures/dodeca-go/dodeca"
)

// EdgePoints lists each edge of the dodecahedron skeleton by the two vertices it spans.
//
// Edges are grouped in runs of five so that rotating about the 0..4 face shifts each run by one place.
var EdgePoints = [dodeca.NumEdges][2]dodeca.VtxID{
	{0, 1},   // 0
	{1, 2},   // 1
	{2, 3},   // 2
	{3, 4},   // 3
	{4, 0},   // 4
	{1, 5},   // 5
	{2, 6},   // 6
	{3, 7},   // 7
	{4, 8},   // 8
	{0, 9},   // 9
	{9, 10},  // 10
	{5, 11},  // 11
	{6, 12},  // 12
	{7, 13},  // 13
	{8, 14},  // 14
	{5, 10},  // 15
	{6, 11},  // 16
	{7, 12},  // 17
	{8, 13},  // 18
	{9, 14},  // 19
	{10, 15}, // 20
	{11, 16}, // 21
	{12, 17}, // 22
	{13, 18}, // 23
	{14, 19}, // 24
	{15, 16}, // 25
	{16, 17}, // 26
	{17, 18}, // 27
	{18, 19}, // 28
	{19, 15}, // 29
}

// Model is the fixed vertex/edge topology along with its pair-adjacency table.
//
// A Model is read-only once built and so may be shared freely across goroutines.
type Model struct {
	edgeMasks [dodeca.NumEdges]dodeca.VertexMask
	edgeAt    [dodeca.NumVertices][dodeca.NumVertices]int8 // edge index joining two vertices, -1 if none
	pairs     []dodeca.EdgeSubset
}
