package dodeca

import (
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EdgeBit returns the EdgeSubset holding only the given edge.
func EdgeBit(edge int) EdgeSubset {
	if edge < 0 || edge >= NumEdges {
		panic("edge index out of range")
	}
	return EdgeSubset(1) << edge
}

// VtxBit returns the VertexMask holding only the given vertex.
func VtxBit(v VtxID) VertexMask {
	if v >= NumVertices {
		panic("vertex index out of range")
	}
	return VertexMask(1) << v
}

// NumEdges returns the number of edges in this subset.
func (x EdgeSubset) NumEdges() int {
	return bits.OnesCount32(uint32(x))
}

// HasEdge returns true if the given edge is a member of this subset.
func (x EdgeSubset) HasEdge(edge int) bool {
	return edge >= 0 && edge < NumEdges && x&(1<<edge) != 0
}

// IsValid returns true if no bits beyond NumEdges are set.
func (x EdgeSubset) IsValid() bool {
	return x&^AllEdges == 0
}

// Edges appends the member edge indices of x (ascending) to out.
func (x EdgeSubset) Edges(out []int) []int {
	for x != 0 {
		ei := bits.TrailingZeros32(uint32(x))
		out = append(out, ei)
		x &= x - 1
	}
	return out
}

// String renders x as its edge index list, e.g. "{0,4,9}".
func (x EdgeSubset) String() string {
	var buf [NumEdges]int
	b := strings.Builder{}
	b.WriteByte('{')
	for i, ei := range x.Edges(buf[:0]) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(ei))
	}
	b.WriteByte('}')
	return b.String()
}

// NumVerts returns the number of vertices in this mask.
func (vm VertexMask) NumVerts() int {
	return bits.OnesCount32(uint32(vm))
}

var strategyNames = [...]string{
	CanonicalInsert: "canonical",
	OrbitMark:       "orbit",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", s)
}

// ParseStrategy returns the Strategy having the given name.
func ParseStrategy(name string) (Strategy, error) {
	for i, si := range strategyNames {
		if strings.EqualFold(si, name) {
			return Strategy(i), nil
		}
	}
	return 0, errors.Wrapf(ErrBadStrategy, "%q", name)
}

func (s *Strategy) UnmarshalText(text []byte) (err error) {
	*s, err = ParseStrategy(string(text))
	return err
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var setKindNames = [...]string{
	SetRoaring: "roaring",
	SetTree:    "tree",
	SetLSM:     "lsm",
}

func (kind SetKind) String() string {
	if int(kind) < len(setKindNames) {
		return setKindNames[kind]
	}
	return fmt.Sprintf("SetKind(%d)", kind)
}

// ParseSetKind returns the SetKind having the given name.
func ParseSetKind(name string) (SetKind, error) {
	for i, ki := range setKindNames {
		if strings.EqualFold(ki, name) {
			return SetKind(i), nil
		}
	}
	return 0, errors.Wrapf(ErrBadSetKind, "%q", name)
}

func (kind *SetKind) UnmarshalText(text []byte) (err error) {
	*kind, err = ParseSetKind(string(text))
	return err
}

func (kind SetKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// DefaultEnumOpts walks every level with canonical insertion into roaring bitmaps on one goroutine.
func DefaultEnumOpts() EnumOpts {
	return EnumOpts{
		Levels:   NumEdges,
		Strategy: CanonicalInsert,
		SetKind:  SetRoaring,
		Workers:  1,
	}
}

// Validate returns an error if any field of opts is out of range.
func (opts *EnumOpts) Validate() error {
	if opts.Levels < 1 || opts.Levels > NumEdges {
		return errors.Wrapf(ErrBadLevels, "got %d", opts.Levels)
	}
	if int(opts.Strategy) >= len(strategyNames) {
		return errors.Wrapf(ErrBadStrategy, "got %v", opts.Strategy)
	}
	if int(opts.SetKind) >= len(setKindNames) {
		return errors.Wrapf(ErrBadSetKind, "got %v", opts.SetKind)
	}
	if opts.Workers < 1 {
		return errors.Wrapf(ErrBadWorkers, "got %d", opts.Workers)
	}
	return nil
}

// LoadOpts reads a TOML opts file over the given opts.  Fields absent from the file are left unchanged.
func LoadOpts(pathname string, opts *EnumOpts) error {
	meta, err := toml.DecodeFile(pathname, opts)
	if err != nil {
		return errors.Wrapf(err, "reading opts %q", pathname)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return errors.Wrapf(ErrBadOpts, "unknown key %q in %q", undecoded[0].String(), pathname)
	}
	return opts.Validate()
}

// WriteOpts writes opts as TOML, in the form LoadOpts reads.
func WriteOpts(out io.Writer, opts EnumOpts) error {
	return toml.NewEncoder(out).Encode(opts)
}
