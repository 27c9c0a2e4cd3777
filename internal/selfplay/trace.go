package selfplay

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// TraceWriter appends finished games to a text replay log, one block per
// game: a header line, the turn list in notation, and the final board map.
// It is safe for concurrent OnTrace callbacks.
type TraceWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: bufio.NewWriter(w)}
}

func (tw *TraceWriter) Write(trace GameTrace) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	var first = "white"
	if !trace.FirstIsWhite {
		first = "black"
	}
	fmt.Fprintf(tw.w, "game %v: %v (%v), first engine plays %v, %v plies\n",
		trace.GameNumber, trace.Outcome, trace.Comment, first, len(trace.Plies))
	for i, ply := range trace.Plies {
		fmt.Fprintf(tw.w, "%3d. %v\n", i+1, ply.Turn)
	}
	fmt.Fprintf(tw.w, "%v\n\n", trace.FinalBoard)
	return tw.w.Flush()
}
