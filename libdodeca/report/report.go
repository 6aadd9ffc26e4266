package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fine-structures/dodeca-go/dodeca"
	"github.com/plan-systems/klog"
)

// Reporter writes the console form of a frontier walk:
//
//	<pair mask count>
//	<level> <processed>     (one line per level)
//	<total>
//
// Progress and timing go to the log so that out carries only the lines above.
type Reporter struct {
	out       io.Writer
	startTime time.Time
}

func New(out io.Writer) *Reporter {
	return &Reporter{
		out:       out,
		startTime: time.Now(),
	}
}

// Header writes the pair mask count.
func (rep *Reporter) Header(numPairs int) {
	fmt.Fprintf(rep.out, "%d\n", numPairs)
}

// Level writes one "<level> <processed>" line.
func (rep *Reporter) Level(r dodeca.LevelReport) {
	fmt.Fprintf(rep.out, "%d %d\n", r.Level, r.Processed)
}

// Total writes the cumulative subgraph count.
func (rep *Reporter) Total(total int64) {
	fmt.Fprintf(rep.out, "%d\n", total)
}

// Drain writes a Level line for every report in the stream followed by the Total line.
// If the walk ended early, the Total line is omitted and the stream's error is returned.
func (rep *Reporter) Drain(stream *dodeca.LevelStream) (int64, error) {
	total := int64(0)
	for r := range stream.Outlet {
		rep.Level(r)
		total = r.Discovered
		klog.V(2).Infof("level %d done, %s discovered (%v)", r.Level, humanize.Comma(total), time.Since(rep.startTime).Round(time.Millisecond))
	}
	if err := stream.Err(); err != nil {
		return total, err
	}

	rep.Total(total)
	klog.Infof("walk complete: %s subgraphs in %v", humanize.Comma(total), time.Since(rep.startTime).Round(time.Millisecond))
	return total, nil
}
