package symmetry

import (
	"slices"

	"github.com/fine-structures/dodeca-go/dodeca"
)

// NewEngine builds the Rot2 lookup tables from Rot2Map.
func NewEngine() *Engine {
	sym := &Engine{}

	for bi := range sym.rot2Lut {
		for val := 0; val < 256; val++ {
			var dst dodeca.EdgeSubset
			for k := 0; k < 8; k++ {
				src := bi*8 + k
				if val&(1<<k) == 0 || src >= dodeca.NumEdges {
					continue
				}
				dst |= dodeca.EdgeBit(int(Rot2Map[src]))
			}
			sym.rot2Lut[bi][val] = dst
		}
	}

	return sym
}

// Rot1 is generator A: a rotation of order 5 about the axis through the 0..4 face.
func (sym *Engine) Rot1(x dodeca.EdgeSubset) dodeca.EdgeSubset {
	return (x&rot1ShiftMask)>>1 | (x&rot1WrapMask)<<4
}

// Rot2 is generator B: a rotation of order 5 sending edge i to edge Rot2Map[i].
func (sym *Engine) Rot2(x dodeca.EdgeSubset) dodeca.EdgeSubset {
	return sym.rot2Lut[0][byte(x)] |
		sym.rot2Lut[1][byte(x>>8)] |
		sym.rot2Lut[2][byte(x>>16)] |
		sym.rot2Lut[3][byte(x>>24)]
}

// Flip is generator C: Rot1(Rot2(Rot1(x))), a half turn.
func (sym *Engine) Flip(x dodeca.EdgeSubset) dodeca.EdgeSubset {
	return sym.Rot1(sym.Rot2(sym.Rot1(x)))
}

// MinRot1 returns the smallest value in the Rot1 cycle of x.
func (sym *Engine) MinRot1(x dodeca.EdgeSubset) dodeca.EdgeSubset {
	min := x
	for i := 1; i < Rot1Order; i++ {
		x = sym.Rot1(x)
		if x < min {
			min = x
		}
	}
	return min
}

// cosetStarts places the NumCosets starting points scanned for x into starts.
func (sym *Engine) cosetStarts(x dodeca.EdgeSubset, starts *[NumCosets]dodeca.EdgeSubset) {
	starts[0] = x
	starts[1] = sym.Rot2(starts[0])
	starts[2] = sym.Rot2(starts[1])
	starts[3] = sym.Rot2(starts[2])

	a3 := sym.Rot1(sym.Rot1(sym.Rot1(x)))
	starts[4] = sym.Rot2(sym.Rot2(sym.Rot1(a3)))
	starts[5] = sym.Rot2(sym.Rot2(a3))
}

// MinReprNoFlip returns the smallest value reachable from x without applying Flip.
func (sym *Engine) MinReprNoFlip(x dodeca.EdgeSubset) dodeca.EdgeSubset {
	var starts [NumCosets]dodeca.EdgeSubset
	sym.cosetStarts(x, &starts)

	min := sym.MinRot1(starts[0])
	for _, si := range starts[1:] {
		if m := sym.MinRot1(si); m < min {
			min = m
		}
	}
	return min
}

// MinRepr returns the canonical form of x: the numerically smallest member of its orbit.
func (sym *Engine) MinRepr(x dodeca.EdgeSubset) dodeca.EdgeSubset {
	min := sym.MinReprNoFlip(x)
	if m := sym.MinReprNoFlip(sym.Flip(x)); m < min {
		min = m
	}
	return min
}

// eachInOrbit calls fn for every value visited by the MinRepr scan of x (with repeats).
func (sym *Engine) eachInOrbit(x dodeca.EdgeSubset, fn func(xi dodeca.EdgeSubset)) {
	var starts [NumCosets]dodeca.EdgeSubset

	for _, xi := range [2]dodeca.EdgeSubset{x, sym.Flip(x)} {
		sym.cosetStarts(xi, &starts)
		for _, si := range starts {
			for i := 0; i < Rot1Order; i++ {
				fn(si)
				si = sym.Rot1(si)
			}
		}
	}
}

// MarkOrbit adds every member of the orbit of x to seen.
func (sym *Engine) MarkOrbit(x dodeca.EdgeSubset, seen dodeca.IntSet) {
	sym.eachInOrbit(x, func(xi dodeca.EdgeSubset) {
		seen.TryAdd(xi)
	})
}

// Orbit returns the distinct members of the orbit of x in ascending order.
func (sym *Engine) Orbit(x dodeca.EdgeSubset) []dodeca.EdgeSubset {
	orbit := make([]dodeca.EdgeSubset, 0, OrbitMax)
	sym.eachInOrbit(x, func(xi dodeca.EdgeSubset) {
		orbit = append(orbit, xi)
	})
	slices.Sort(orbit)
	return slices.Compact(orbit)
}
