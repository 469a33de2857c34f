//go:build linux

package litl

import (
	"bytes"
	"fmt"

	"golang.org/x/sys/unix"
)

// sysinfoString reproduces __add_trace_header's
// "%s %s %s %s %s" % (sysname, nodename, release, version, machine)
// using golang.org/x/sys/unix.Uname, the same package the teacher's
// directio_linux.go reaches for whenever it needs a raw Linux syscall.
func sysinfoString() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%s %s %s %s %s",
		cstr(uts.Sysname[:]), cstr(uts.Nodename[:]), cstr(uts.Release[:]),
		cstr(uts.Version[:]), cstr(uts.Machine[:]))
}

// cstr converts a NUL-terminated C char array (a byte array in
// unix.Utsname) to a Go string, stopping at the first NUL byte.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
