package dodeca

import "errors"

// Errors
var (
	ErrBadVtxID    = errors.New("bad vertex ID")
	ErrNotAnEdge   = errors.New("vertices are not joined by an edge")
	ErrEmptyExpr   = errors.New("empty subgraph expression")
	ErrBadStrategy = errors.New("unknown dedup strategy")
	ErrBadSetKind  = errors.New("unknown set kind")
	ErrBadLevels   = errors.New("level count must be in 1..30")
	ErrBadWorkers  = errors.New("worker count must be >= 1")
	ErrBadOpts     = errors.New("bad enumeration opts")
)
