//go:build !linux

package litl

import (
	"fmt"
	"runtime"
)

// sysinfoString falls back to Go's own runtime-reported platform identity
// on non-Linux systems, where unix.Uname isn't available.
func sysinfoString() string {
	return fmt.Sprintf("%s %s go%s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}
