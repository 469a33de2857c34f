package litl

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Trace is a single trace's write-side state: its file, its header, its
// registry of per-thread buffers, and the three independent flags that
// drive the probe family's fast-path checks (initialized, paused, full).
// It is the Go counterpart of litl_trace_write_t restricted to the writer
// half of the format — the reader, merge, and split tools are out of
// scope and never see a Trace.
type Trace struct {
	cfg Config

	registryMu sync.Mutex
	buffers    []*buffer
	handles    sync.Map // uint64 goroutine id -> *Handle, used by the free Probe* family

	flushMu           sync.Mutex
	file              *os.File
	filename          string
	header            FileHeader
	headerFlushed     bool
	headerTableOffset int64
	generalOffset     int64

	initialized atomic.Bool
	paused      atomic.Bool
	bufferFull  atomic.Bool
	finalized   atomic.Bool

	// recordTidOn, allowBufferFlush and allowThreadSafety are the live,
	// runtime-toggleable counterparts of litl_tid_recording_on/off,
	// litl_buffer_flush_on/off and litl_thread_safety_on/off
	// (original_source/src/litl_write.c:141-177). Config only seeds their
	// initial value; the Trace*On/Off methods flip them afterward.
	recordTidOn       atomic.Bool
	allowBufferFlush  atomic.Bool
	allowThreadSafety atomic.Bool

	// fatalErr latches the first fatal I/O error a flush hits so it can be
	// reported through Err/Finalize instead of being silently aliased to
	// ordinary buffer-full backpressure.
	fatalErr atomic.Pointer[FatalError]
}

// NewTrace creates a trace ready to accept Bind calls and probes. No file
// is opened yet: the trace file is created lazily on the first flush,
// exactly as litl_flush_buffer opens trace->filename on its first call
// rather than litl_init_trace doing it eagerly.
func NewTrace(cfg Config) (*Trace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	filename := cfg.Filename
	if filename == "" {
		filename = defaultFilename()
	}

	t := &Trace{
		cfg:      cfg,
		filename: filename,
	}
	t.header.BufferSize = uint32(cfg.BufferSize)
	copy(t.header.Version[:], traceVersion)
	copy(t.header.SysInfo[:], sysinfoString())
	t.allowBufferFlush.Store(cfg.AllowBufferFlush)
	t.allowThreadSafety.Store(cfg.AllowThreadSafety)
	// record_tid_activated defaults to on, set unconditionally by
	// litl_init_trace regardless of any environment variable.
	t.recordTidOn.Store(true)
	t.initialized.Store(true)
	return t, nil
}

// TidRecordingOn activates recording of each event's owning thread id.
func (t *Trace) TidRecordingOn() {
	t.recordTidOn.Store(true)
}

// TidRecordingOff deactivates recording of each event's owning thread id.
func (t *Trace) TidRecordingOff() {
	t.recordTidOn.Store(false)
}

// TidRecording reports whether thread-id recording is currently active.
func (t *Trace) TidRecording() bool {
	return t.recordTidOn.Load()
}

// BufferFlushOn activates flush-on-full: a buffer that reaches capacity is
// flushed and reused instead of dropping further events. Active by default.
func (t *Trace) BufferFlushOn() {
	t.allowBufferFlush.Store(true)
}

// BufferFlushOff deactivates flush-on-full: a buffer that reaches capacity
// stops accepting events instead of being flushed.
func (t *Trace) BufferFlushOff() {
	t.allowBufferFlush.Store(false)
}

// ThreadSafetyOn activates locking of the flusher's internal mutex,
// required whenever more than one thread may flush concurrently. Active
// by default. May be toggled mid-trace, the same as the original's
// litl_thread_safety_on/off.
func (t *Trace) ThreadSafetyOn() {
	t.allowThreadSafety.Store(true)
}

// ThreadSafetyOff deactivates locking of the flusher's internal mutex.
// Only safe when at most one goroutine can ever call flush at a time.
func (t *Trace) ThreadSafetyOff() {
	t.allowThreadSafety.Store(false)
}

// Err returns the first fatal I/O error hit by a flush, if any. A fatal
// error also marks the trace's buffers full, so no further events are
// recorded once one has occurred; callers that need to detect this
// condition without waiting for Finalize's return value should poll Err.
func (t *Trace) Err() error {
	if e := t.fatalErr.Load(); e != nil {
		return e
	}
	return nil
}

// defaultFilename synthesizes a path the way litl_set_filename does when
// given no name, without its undefined-behavior bug of sprintf-ing into
// the caller's own (possibly nil) string argument.
func defaultFilename() string {
	user := os.Getenv("USER")
	if user == "" {
		user = "user"
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s_eztrace_log_rank_%d", user, os.Getpid()))
}

// SetFilename changes the trace's output path. Changing it after events
// have already been flushed to the previous file only affects future
// flushes and prints a warning, matching litl_set_filename's behavior: the
// previous file is closed and keeps what was already written to it, and
// the next flush writes a fresh header to the new file.
func (t *Trace) SetFilename(name string) error {
	if t.finalized.Load() {
		return ErrAlreadyFinalized
	}
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	if t.headerFlushed {
		fmt.Fprintf(os.Stderr,
			"litl: warning: changing trace file name to %q after events were already saved to %q\n",
			name, t.filename)
		if t.file != nil {
			if err := t.file.Close(); err != nil {
				return fatalf("close", err)
			}
			t.file = nil
		}
		t.headerFlushed = false
	}
	if name == "" {
		name = defaultFilename()
	}
	t.filename = name
	return nil
}

// Pause suppresses event recording until Resume is called. Safe to call
// on an uninitialized or finalized trace, matching litl_pause_recording's
// null-trace tolerance.
func (t *Trace) Pause() {
	t.paused.Store(true)
}

// Resume re-enables event recording after Pause.
func (t *Trace) Resume() {
	t.paused.Store(false)
}

// Paused reports whether the trace is currently paused.
func (t *Trace) Paused() bool {
	return t.paused.Load()
}

// Bind registers the calling goroutine as a new writer thread and returns
// a Handle for it. The caller should keep the Handle and reuse it for
// every subsequent probe call from that goroutine: this is the Go
// counterpart of the first pthread_getspecific miss that triggers
// __allocate_buffer in the original implementation, except the lookup
// result is handed back directly instead of being cached behind a TLS key
// only the library can see.
func (t *Trace) Bind() (*Handle, error) {
	t.registryMu.Lock()
	defer t.registryMu.Unlock()

	if len(t.buffers) >= t.cfg.MaxThreads {
		return nil, ErrRegistryFull
	}
	index := len(t.buffers)
	b := newBuffer(goroutineID(), t.cfg.BufferSize)
	t.buffers = append(t.buffers, b)
	return &Handle{trace: t, index: index, buf: b}, nil
}

// handleForCaller resolves (registering on first use) a Handle for the
// calling goroutine, for the free Probe* functions that take a *Trace
// directly instead of threading a *Handle through. It mirrors
// LoggerManager.getOrCreateLogger's sync.Map LoadOrStore pattern: fast
// path is a lock-free Load, slow path binds and loses gracefully if
// another call for the same goroutine id won the race.
func (t *Trace) handleForCaller() (*Handle, error) {
	gid := goroutineID()
	if v, ok := t.handles.Load(gid); ok {
		return v.(*Handle), nil
	}
	h, err := t.Bind()
	if err != nil {
		return nil, err
	}
	actual, loaded := t.handles.LoadOrStore(gid, h)
	if loaded {
		return actual.(*Handle), nil
	}
	return h, nil
}

// Finalize flushes every registered thread's buffer, closes the trace
// file, and marks the trace as no longer accepting events. It is the Go
// counterpart of litl_fin_trace.
func (t *Trace) Finalize() error {
	if t.finalized.Swap(true) {
		return ErrAlreadyFinalized
	}

	t.registryMu.Lock()
	n := len(t.buffers)
	t.registryMu.Unlock()

	for i := 0; i < n; i++ {
		if err := t.flush(i); err != nil {
			return err
		}
	}

	t.flushMu.Lock()
	defer t.flushMu.Unlock()
	if t.file != nil {
		if err := t.file.Close(); err != nil {
			return fatalf("close", err)
		}
		t.file = nil
	}
	t.initialized.Store(false)
	t.headerFlushed = false
	return t.Err()
}
