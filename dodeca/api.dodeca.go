package dodeca

const (

	// NumVertices is the vertex count of the dodecahedron skeleton.
	NumVertices = 20

	// NumEdges is the edge count of the dodecahedron skeleton and so the bit width of an EdgeSubset.
	NumEdges = 30

	// EdgesPerVertex is the degree of every vertex (the skeleton is 3-regular).
	EdgesPerVertex = 3

	// AllEdges is the EdgeSubset containing every edge.
	AllEdges EdgeSubset = (1 << NumEdges) - 1
)

// VtxID is a zero-based vertex index (0..NumVertices-1)
type VtxID byte

// VertexMask is a set of vertices, one bit per VtxID.
type VertexMask uint32

// EdgeSubset is a set of edges, where bit i means edge i is a member.
//
// A PairMask (a legal one-edge growth move) is an EdgeSubset with exactly two vertex-adjacent edges.
type EdgeSubset uint32

// Strategy names how the frontier walker drops symmetry-equivalent subgraphs.
type Strategy byte

const (

	// CanonicalInsert replaces every child with its canonical form before it enters the next frontier.
	CanonicalInsert Strategy = iota

	// OrbitMark keeps children as-is and marks the whole orbit of each first-seen parent so
	// later members of the same class are skipped within a level.
	OrbitMark
)

// SetKind names an IntSet backend.
type SetKind byte

const (
	SetRoaring SetKind = iota // compressed bitmap (default)
	SetTree                   // ordered red-black tree
	SetLSM                    // in-memory LSM key store
)

// IntSet is a sparse set of EdgeSubsets supporting membership, insertion and ascending iteration.
//
// Implementations are not safe for concurrent use.
type IntSet interface {

	// TryAdd adds x if it is not already present.
	//
	// If x is already in this set, this call has no effect and false is returned.
	TryAdd(x EdgeSubset) bool

	// Contains returns true if x is in this set.
	Contains(x EdgeSubset) bool

	// Len returns the number of items in this set.
	Len() int64

	// Each calls fn for each item in ascending order until fn returns false.
	Each(fn func(x EdgeSubset) bool)

	// Clear removes all previously added items.
	Clear()

	// Close releases all resources; a closed set must not be used again.
	Close()
}

// EnumOpts specifies params for a frontier walk.
type EnumOpts struct {
	Levels   int      `toml:"levels"`   // number of levels to walk (1..NumEdges)
	Strategy Strategy `toml:"strategy"` // dedup strategy
	SetKind  SetKind  `toml:"set"`      // IntSet backend used for frontiers and the discovered set
	Workers  int      `toml:"workers"`  // canonicalization workers (CanonicalInsert only)
}

// LevelReport is emitted once each level of a frontier walk completes.
type LevelReport struct {
	Level      int   // edge count of the subgraphs processed at this level
	Processed  int64 // symmetry-distinct subgraphs newly processed at this level
	Frontier   int64 // size of the frontier before dedup
	Discovered int64 // running total of processed subgraphs
}
