package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	"github.com/fine-structures/dodeca-go/dodeca"
	walker "github.com/fine-structures/dodeca-go/libdodeca/frontier-walker"
	"github.com/fine-structures/dodeca-go/libdodeca/graph"
	"github.com/fine-structures/dodeca-go/libdodeca/report"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

var (
	gConfig  = flag.String("config", "", "TOML file of walk opts (levels, strategy, set, workers)")
	gREPL    = flag.Bool("repl", false, "start an interactive gpython session")
	gCliOpts = dodeca.DefaultEnumOpts()
)

func init() {
	flag.IntVar(&gCliOpts.Levels, "levels", gCliOpts.Levels, "number of levels to walk (1..30)")
	flag.TextVar(&gCliOpts.Strategy, "strategy", gCliOpts.Strategy, "dedup strategy: canonical or orbit")
	flag.TextVar(&gCliOpts.SetKind, "set", gCliOpts.SetKind, "set backend: roaring, tree or lsm")
	flag.IntVar(&gCliOpts.Workers, "workers", gCliOpts.Workers, "canonicalization workers (canonical strategy only)")
}

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "1")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	var err error
	if pathname := flag.Arg(0); pathname != "" || *gREPL {
		err = go_gpython(pathname)
	} else {
		err = walkToConsole(os.Stdout)
	}

	if err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

// resolveOpts layers the -config file over the defaults, then any flags given explicitly.
func resolveOpts() (dodeca.EnumOpts, error) {
	opts := dodeca.DefaultEnumOpts()
	if *gConfig != "" {
		if err := dodeca.LoadOpts(*gConfig, &opts); err != nil {
			return opts, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "levels":
			opts.Levels = gCliOpts.Levels
		case "strategy":
			opts.Strategy = gCliOpts.Strategy
		case "set":
			opts.SetKind = gCliOpts.SetKind
		case "workers":
			opts.Workers = gCliOpts.Workers
		}
	})

	return opts, opts.Validate()
}

func walkToConsole(out io.Writer) error {
	opts, err := resolveOpts()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stream, err := walker.Enumerate(ctx, opts)
	if err != nil {
		return err
	}

	rep := report.New(out)
	rep.Header(graph.NewModel().NumPairs())
	if _, err = rep.Drain(stream); err != nil {
		return errors.Wrap(err, "walk interrupted")
	}
	return nil
}
