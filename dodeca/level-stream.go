package dodeca

import (
	"fmt"
	"io"
	"sync"
)

// LevelStream carries the LevelReports of a frontier walk, one per completed level.
//
// The producer closes Outlet when the walk ends; Err() is valid once Outlet is closed.
type LevelStream struct {
	Outlet chan LevelReport

	mu  sync.Mutex
	err error
}

func NewLevelStream() *LevelStream {
	stream := &LevelStream{
		Outlet: make(chan LevelReport, 1),
	}
	return stream
}

// CloseWithError closes this stream, recording why the walk ended early (nil for a complete walk).
func (stream *LevelStream) CloseWithError(err error) {
	stream.mu.Lock()
	stream.err = err
	stream.mu.Unlock()
	stream.Close()
}

func (stream *LevelStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// Err returns the error that ended the walk, if any.
func (stream *LevelStream) Err() error {
	stream.mu.Lock()
	defer stream.mu.Unlock()
	return stream.err
}

// PullAll drains this stream and returns the last LevelReport seen.
func (stream *LevelStream) PullAll() (last LevelReport, err error) {
	for r := range stream.Outlet {
		last = r
	}
	return last, stream.Err()
}

// Print forwards each LevelReport to the returned stream after writing it to out as "<level> <processed>".
func (stream *LevelStream) Print(out io.Writer) *LevelStream {
	next := NewLevelStream()

	go func() {
		for r := range stream.Outlet {
			fmt.Fprintf(out, "%d %d\n", r.Level, r.Processed)
			next.Outlet <- r
		}
		next.CloseWithError(stream.Err())
	}()

	return next
}
