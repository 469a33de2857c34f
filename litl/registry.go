package litl

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the calling goroutine's numeric id by parsing the
// header line runtime.Stack prints ("goroutine 37 [running]:..."). Go
// deliberately exposes no public goroutine-local-storage primitive, so
// this is the closest analogue available to pthread_getspecific's TLS key
// for the free Probe* function family; it is slower per call than holding
// a *Handle returned by Bind, which is why the hot-path API is
// handle-based and this lookup exists only for call sites that cannot
// conveniently thread a Handle through.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
