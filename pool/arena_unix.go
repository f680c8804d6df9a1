//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// File: pool/arena_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "golang.org/x/sys/unix"

// mapAnonymous maps a private anonymous read/write region. Pages are zero-filled
// and page aligned.
func mapAnonymous(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
