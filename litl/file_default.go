//go:build !linux

package litl

import "os"

// pwrite falls back to os.File.WriteAt on non-Linux systems, where the
// unix.Pwrite syscall used on Linux isn't available.
func pwrite(f *os.File, buf []byte, offset int64) error {
	_, err := f.WriteAt(buf, offset)
	return err
}
