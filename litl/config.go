package litl

import "os"

// defaultBufferSize is the per-thread buffer capacity used when a Config
// does not specify one.
const defaultBufferSize = 1 << 20 // 1MB

// defaultMaxThreads bounds the number of threads the buffer registry can
// hand out slots to. The original C implementation fixes this at compile
// time (NBBUFFER); Go has no equivalent compile-time array sizing concern,
// but the spec still calls for a bounded registry rather than unbounded
// growth, so Config exposes it as a tunable with the same default weight
// class as the original's header reservation.
const defaultMaxThreads = 256

// headerThreadSlots is the number of (tid, offset) pairs reserved in the
// first header chunk, resolving the 32-vs-64 inconsistency between
// NBTHREADS and the header-write code in favor of the value the header
// writer actually uses.
const headerThreadSlots = 64

// Config configures a Trace. A zero BufferSize, MaxThreads or Clock is
// replaced by the same default NewConfig uses when passed to NewTrace (see
// Validate); AllowBufferFlush and AllowThreadSafety are used as given.
type Config struct {
	// Filename is the path of the trace file. An empty string asks
	// NewTrace to synthesize one the way SetFilename("") does.
	Filename string

	// BufferSize is the capacity, in bytes, of each thread's buffer.
	BufferSize int

	// MaxThreads bounds how many distinct threads may Bind to this trace.
	MaxThreads int

	// AllowBufferFlush mirrors LITL_BUFFER_FLUSH: when false, a full
	// buffer stops accepting events instead of triggering a flush.
	// Defaulted from the LITL_BUFFER_FLUSH environment variable when a
	// Config is built via NewConfig. Only seeds NewTrace's initial
	// state; use Trace.BufferFlushOn/Off to change it afterward.
	AllowBufferFlush bool

	// AllowThreadSafety mirrors LITL_THREAD_SAFETY: when false, the
	// flusher skips locking its internal mutex, which is only safe for
	// single-threaded traces.
	// Defaulted from the LITL_THREAD_SAFETY environment variable when a
	// Config is built via NewConfig. Only seeds NewTrace's initial
	// state; use Trace.ThreadSafetyOn/Off to change it afterward.
	AllowThreadSafety bool

	// Clock supplies event timestamps. Defaults to DefaultClock.
	Clock Clock
}

// NewConfig returns a Config for the given filename with every other field
// defaulted, including the two environment-variable-controlled flags read
// once here just as litl_init_trace reads LITL_BUFFER_FLUSH and
// LITL_THREAD_SAFETY once at initialization.
func NewConfig(filename string) Config {
	return Config{
		Filename:          filename,
		BufferSize:        defaultBufferSize,
		MaxThreads:        defaultMaxThreads,
		AllowBufferFlush:  envFlagOn("LITL_BUFFER_FLUSH"),
		AllowThreadSafety: envFlagOn("LITL_THREAD_SAFETY"),
		Clock:             DefaultClock,
	}
}

// envFlagOn reproduces litl_init_trace's rule for LITL_BUFFER_FLUSH and
// LITL_THREAD_SAFETY: unset or any value other than the exact string "off"
// means on.
func envFlagOn(name string) bool {
	return os.Getenv(name) != "off"
}

// Validate fills in zero-valued fields with defaults and rejects
// configurations that cannot be made to work, following the same
// fill-then-check shape as the teacher's Config.Validate.
func (c *Config) Validate() error {
	if c.BufferSize <= 0 {
		c.BufferSize = defaultBufferSize
	}
	if c.MaxThreads <= 0 {
		c.MaxThreads = defaultMaxThreads
	}
	if c.Clock == nil {
		c.Clock = DefaultClock
	}
	return nil
}
