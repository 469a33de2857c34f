package litl

import (
	"fmt"
	"os"
)

// Handle is a per-goroutine binding to a Trace, returned by Trace.Bind.
// It owns the exclusive right to one buffer slot in the trace's registry;
// all Probe methods on a Handle must only ever be called by the goroutine
// that obtained it, or by a single successor goroutine after the
// original one is done with it (the same ownership contract pthread TLS
// gives __allocate_buffer's caller).
type Handle struct {
	trace *Trace
	index int
	buf   *buffer
}

// ready reports whether the trace will currently accept a new event:
// initialized, not paused, and not already marked full. Mirrors the
// guard every litl_probeN/litl_raw_probe function starts with.
func (h *Handle) ready() bool {
	t := h.trace
	return t.initialized.Load() && !t.paused.Load() && !t.bufferFull.Load()
}

// reserve ensures the buffer has room for another event, flushing and
// retrying if the trace allows it. It returns false if the event should
// be silently dropped (buffer full and flushing disabled), matching
// get_event/litl_probeN's fallback branch. Like the original, this checks
// only whether the buffer's current occupancy has crossed BufferSize, not
// whether the specific event about to be written will fit — the slack
// newBuffer allocates beyond BufferSize exists precisely to absorb one
// more event past that threshold before the next flush.
//
// A flush failure here is not ordinary backpressure: it is the fatal,
// process-terminating condition litl_flush_buffer responds to with
// perror/exit. This library cannot call os.Exit on its embedder's behalf
// (see FatalError), so instead it prints the same diagnostic to stderr
// immediately, latches the error on the Trace for Err/Finalize to report,
// and marks the trace full so no further event is silently accepted.
func (h *Handle) reserve() bool {
	for {
		if h.buf.used() < h.trace.cfg.BufferSize {
			return true
		}
		if !h.trace.allowBufferFlush.Load() {
			h.trace.bufferFull.Store(true)
			return false
		}
		if err := h.trace.flush(h.index); err != nil {
			h.trace.bufferFull.Store(true)
			if fe, ok := err.(*FatalError); ok {
				if h.trace.fatalErr.CompareAndSwap(nil, fe) {
					fmt.Fprintln(os.Stderr, fe.Error())
				}
			}
			return false
		}
	}
}
