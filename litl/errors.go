package litl

import "fmt"

// FatalError marks a failure that the original C implementation responds
// to by aborting the process (a failed open(), a failed write(), a failed
// seek() while flushing a chunk). An embeddable Go library must not call
// os.Exit on the caller's behalf, so LiTL instead returns a FatalError and
// leaves the decision to terminate with the caller; a thin CLI wrapper
// around the library is the right place to turn this into a process exit.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("litl: fatal: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatalf(op string, err error) *FatalError {
	return &FatalError{Op: op, Err: err}
}

// ErrRegistryFull is returned by Bind when a trace has already handed out
// Config.MaxThreads slots.
var ErrRegistryFull = fmt.Errorf("litl: thread registry full")

// ErrNotInitialized names the state of a trace that is not initialized or
// already finalized. No function in this package returns it: probes on
// such a trace drop their event silently.
var ErrNotInitialized = fmt.Errorf("litl: trace not initialized")

// ErrAlreadyFinalized is returned by Finalize when called more than once.
var ErrAlreadyFinalized = fmt.Errorf("litl: trace already finalized")

// ErrTooManyParams is returned by ProbeParams when called with more than
// MaxParams arguments.
var ErrTooManyParams = fmt.Errorf("litl: too many parameters, max %d", MaxParams)

// ErrPayloadTooLarge is returned by RawProbe/ProbePack when the payload
// exceeds MaxData bytes.
var ErrPayloadTooLarge = fmt.Errorf("litl: payload exceeds %d bytes", MaxData)

// ErrUnsupportedPackedType is returned by ProbePacked when one of its
// values is not one of the types it knows how to serialize.
var ErrUnsupportedPackedType = fmt.Errorf("litl: unsupported packed parameter type")
