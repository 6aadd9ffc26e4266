package pydodeca

import (
	"context"
	"os"
	"strings"

	"github.com/fine-structures/dodeca-go/dodeca"
	walker "github.com/fine-structures/dodeca-go/libdodeca/frontier-walker"
	"github.com/fine-structures/dodeca-go/libdodeca/graph"
	"github.com/fine-structures/dodeca-go/libdodeca/report"
	"github.com/fine-structures/dodeca-go/libdodeca/symmetry"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyLevelStreamType = py.NewType("LevelStream", "per-level reports of a frontier walk")
)

// The model and engine hold only read-only tables and are shared by all scripts.
var (
	gModel = graph.NewModel()
	gSym   = symmetry.NewEngine()
)

func getSubset(obj py.Object) (dodeca.EdgeSubset, error) {
	val, err := py.GetInt(obj)
	if err != nil {
		return 0, err
	}
	if val < 0 || val > py.Int(dodeca.AllEdges) {
		return 0, py.ExceptionNewf(py.ValueError, "%d is not a subset of %d edges", val, dodeca.NumEdges)
	}
	return dodeca.EdgeSubset(val), nil
}

func py_PairCount(module py.Object, args py.Tuple) (py.Object, error) {
	return py.Int(gModel.NumPairs()), nil
}

func py_MinRepr(module py.Object, args py.Tuple) (py.Object, error) {
	var xObj py.Object
	err := py.ParseTuple(args, "i", &xObj)
	if err != nil {
		return nil, err
	}
	x, err := getSubset(xObj)
	if err != nil {
		return nil, err
	}
	return py.Int(gSym.MinRepr(x)), nil
}

// Arg 1 (str): subgraph expression such as "0-1-2, 1-5"
func py_Canon(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	err := py.LoadTuple(args, []interface{}{&expr})
	if err != nil {
		return nil, err
	}
	x, err := gModel.ParseSubgraph(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Int(gSym.MinRepr(x)), nil
}

func py_Orbit(module py.Object, args py.Tuple) (py.Object, error) {
	var xObj py.Object
	err := py.ParseTuple(args, "i", &xObj)
	if err != nil {
		return nil, err
	}
	x, err := getSubset(xObj)
	if err != nil {
		return nil, err
	}

	orbit := gSym.Orbit(x)
	tuple := make(py.Tuple, len(orbit))
	for i, xi := range orbit {
		tuple[i] = py.Int(xi)
	}
	return tuple, nil
}

func py_IsConnected(module py.Object, args py.Tuple) (py.Object, error) {
	var xObj py.Object
	err := py.ParseTuple(args, "i", &xObj)
	if err != nil {
		return nil, err
	}
	x, err := getSubset(xObj)
	if err != nil {
		return nil, err
	}
	if gModel.IsConnected(x) {
		return py.True, nil
	}
	return py.False, nil
}

// Subgraph renders a subset as its "va-vb,..." edge list.
func py_Subgraph(module py.Object, args py.Tuple) (py.Object, error) {
	var xObj py.Object
	err := py.ParseTuple(args, "i", &xObj)
	if err != nil {
		return nil, err
	}
	x, err := getSubset(xObj)
	if err != nil {
		return nil, err
	}
	b := strings.Builder{}
	gModel.WriteSubgraph(&b, x)
	return py.String(b.String()), nil
}

// Arg 1 (int): number of levels
// Arg 2 (str, optional): "canonical" or "orbit"
// Arg 3 (str, optional): "roaring", "tree" or "lsm"
func loadEnumOpts(args py.Tuple) (dodeca.EnumOpts, error) {
	opts := dodeca.DefaultEnumOpts()

	var (
		levels   int32
		strategy string
		setKind  string
	)
	err := py.LoadTuple(args, []interface{}{&levels, &strategy, &setKind})
	if err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Levels = int(levels)
	}
	if strategy != "" {
		if opts.Strategy, err = dodeca.ParseStrategy(strategy); err != nil {
			return opts, py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}
	if setKind != "" {
		if opts.SetKind, err = dodeca.ParseSetKind(setKind); err != nil {
			return opts, py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}
	if err = opts.Validate(); err != nil {
		return opts, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return opts, nil
}

// Enumerate walks the given number of levels and returns the processed count of each level.
func py_Enumerate(module py.Object, args py.Tuple) (py.Object, error) {
	opts, err := loadEnumOpts(args)
	if err != nil {
		return nil, err
	}

	res, err := walker.Run(context.Background(), opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	counts := make(py.Tuple, len(res.Levels))
	for i, r := range res.Levels {
		counts[i] = py.Int(r.Processed)
	}
	return counts, nil
}

// Walk starts a walk and returns its LevelStream, consumed with Print() and Go().
func py_Walk(module py.Object, args py.Tuple) (py.Object, error) {
	opts, err := loadEnumOpts(args)
	if err != nil {
		return nil, err
	}

	stream, err := walker.Enumerate(context.Background(), opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return levelStream{stream}, nil
}

type levelStream struct {
	*dodeca.LevelStream
}

func (stream levelStream) Type() *py.Type {
	return pyLevelStreamType
}

// Print writes each level line to stdout as it arrives.
func py_LevelStream_Print(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(levelStream)
	next := stream.Print(os.Stdout)
	return levelStream{next}, nil
}

// Go drains the stream, writing the total line, and returns the total.
func py_LevelStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(levelStream)
	last, err := stream.PullAll()
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	report.New(os.Stdout).Total(last.Discovered)
	return py.Int(last.Discovered), nil
}

func init() {

	pyLevelStreamType.Dict["Print"] = py.MustNewMethod("Print", py_LevelStream_Print, 0, "prints '<level> <processed>' as each level completes")
	pyLevelStreamType.Dict["Go"] = py.MustNewMethod("Go", py_LevelStream_Go, 0, "waits for the walk to finish and returns the number of subgraphs found")

	methods := []*py.Method{
		py.MustNewMethod("PairCount", py_PairCount, 0, "number of adjacent edge pairs (one-edge growth moves)"),
		py.MustNewMethod("MinRepr", py_MinRepr, 0, "canonical form of an edge subset"),
		py.MustNewMethod("Canon", py_Canon, 0, "canonical form of a subgraph expression such as '0-1-2, 1-5'"),
		py.MustNewMethod("Orbit", py_Orbit, 0, "ascending orbit of an edge subset"),
		py.MustNewMethod("IsConnected", py_IsConnected, 0, ""),
		py.MustNewMethod("Subgraph", py_Subgraph, 0, "renders an edge subset as vertex pairs"),
		py.MustNewMethod("Enumerate", py_Enumerate, 0, "returns the processed count of each level"),
		py.MustNewMethod("Walk", py_Walk, 0, "starts a walk, returning its LevelStream"),
	}

	globals := py.StringDict{
		"LIB_VERSION":  py.String(LIB_VERSION),
		"NUM_EDGES":    py.Int(dodeca.NumEdges),
		"NUM_VERTICES": py.Int(dodeca.NumVertices),
	}

	py.RegisterModule(&py.ModuleImpl{
		Info: py.ModuleInfo{
			Name: "_dodeca",
			Doc:  "dodecahedron subgraph enumeration gpython module",
		},
		Methods: methods,
		Globals: globals,
	})
}
