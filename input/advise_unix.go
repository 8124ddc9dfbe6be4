//go:build linux || darwin

package input

import "golang.org/x/sys/unix"

// adviseSequential is best effort; the mapping works without it.
func adviseSequential(b []byte) {
	unix.Madvise(b, unix.MADV_SEQUENTIAL)
}
