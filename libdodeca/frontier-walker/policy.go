package walker

import (
	"fmt"

	"github.com/fine-structures/dodeca-go/dodeca"
	"github.com/fine-structures/dodeca-go/libdodeca/sets"
	"github.com/fine-structures/dodeca-go/libdodeca/symmetry"
)

// NewPolicy returns the Policy implementing the given strategy.  The orbit guard (if any) uses the given set backend.
func NewPolicy(strategy dodeca.Strategy, sym *symmetry.Engine, kind dodeca.SetKind) Policy {
	switch strategy {
	case dodeca.CanonicalInsert:
		return &canonicalInsert{
			sym: sym,
		}
	case dodeca.OrbitMark:
		return &orbitMark{
			sym:   sym,
			guard: sets.New(kind),
		}
	}
	panic(fmt.Sprintf("unknown strategy %v", strategy))
}

// canonicalInsert keys every child by its canonical form, so each frontier holds one value per class.
type canonicalInsert struct {
	sym symmetry.Canonizer
}

// ShouldSkip never skips: the frontier only holds canonical forms, each the sole member of its class.
func (p *canonicalInsert) ShouldSkip(parent dodeca.EdgeSubset) bool {
	return false
}

func (p *canonicalInsert) RecordProcessed(parent dodeca.EdgeSubset) {}

func (p *canonicalInsert) ChildKey(child dodeca.EdgeSubset) dodeca.EdgeSubset {
	return p.sym.MinRepr(child)
}

func (p *canonicalInsert) EndLevel() {}

func (p *canonicalInsert) Close() {}

// orbitMark keeps raw children and, per level, marks the whole orbit of the first member of each class visited.
type orbitMark struct {
	sym   *symmetry.Engine
	guard dodeca.IntSet
}

func (p *orbitMark) ShouldSkip(parent dodeca.EdgeSubset) bool {
	return p.guard.Contains(parent)
}

func (p *orbitMark) RecordProcessed(parent dodeca.EdgeSubset) {
	p.sym.MarkOrbit(parent, p.guard)
}

func (p *orbitMark) ChildKey(child dodeca.EdgeSubset) dodeca.EdgeSubset {
	return child
}

func (p *orbitMark) EndLevel() {
	p.guard.Clear()
}

func (p *orbitMark) Close() {
	if p.guard != nil {
		p.guard.Close()
		p.guard = nil
	}
}
