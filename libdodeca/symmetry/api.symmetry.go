// Package symmetry canonicalizes edge subsets of the dodecahedron skeleton under the group generated by
// two fixed edge permutations (Rot1, Rot2) and their composition Flip.
//
// The group these generate has order 60: 6 coset starts, each expanded by the 5-cycle of Rot1,
// and the same again from Flip(x).  MinRepr(x) is the smallest value in the orbit of x.
package symmetry

import "github.com/fine-structures/dodeca-go/dodeca"

const (

	// Rot1Order is the number of Rot1 applications that return any subset to itself.
	Rot1Order = 5

	// Rot2Order is the number of Rot2 applications that return any subset to itself.
	Rot2Order = 5

	// NumCosets is the number of coset starts MinReprNoFlip scans (each expanded by Rot1).
	NumCosets = 6

	// OrbitMax is the most distinct values an orbit can hold.
	OrbitMax = 2 * NumCosets * Rot1Order
)

// Rot1 shifts each run of five edges down by one place, the low edge of a run wrapping to the top.
const (
	rot1ShiftMask dodeca.EdgeSubset = 0b111101111011110111101111011110
	rot1WrapMask  dodeca.EdgeSubset = 0b000010000100001000010000100001
)

// Rot2Map gives, for each source edge index, the edge index Rot2 carries it to.
var Rot2Map = [dodeca.NumEdges]uint8{
	5, 11, 16, 6, 1, 15, 21, 12, 2, 0,
	9, 20, 26, 17, 3, 10, 25, 22, 7, 4,
	19, 29, 27, 13, 8, 24, 28, 23, 18, 14,
}

// Canonizer maps an EdgeSubset to the representative of its symmetry class.
type Canonizer interface {
	MinRepr(x dodeca.EdgeSubset) dodeca.EdgeSubset
}

// Engine holds the read-only generator tables and may be shared freely across goroutines.
type Engine struct {
	rot2Lut [4][256]dodeca.EdgeSubset // Rot2 applied to each byte of a subset
}
