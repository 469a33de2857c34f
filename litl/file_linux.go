//go:build linux

package litl

import (
	"os"

	"golang.org/x/sys/unix"
)

// pwrite writes buf at the given file offset without moving the file's
// read/write cursor, using the positioned-write syscall directly rather
// than os.File.Seek + Write, the same approach the teacher's
// blob-logger/ssdio writer takes via unix.Pwrite for concurrent-safe
// positioned writes on Linux.
func pwrite(f *os.File, buf []byte, offset int64) error {
	for len(buf) > 0 {
		n, err := unix.Pwrite(int(f.Fd()), buf, offset)
		if err != nil {
			return err
		}
		if n == 0 {
			return os.ErrClosed
		}
		buf = buf[n:]
		offset += int64(n)
	}
	return nil
}
