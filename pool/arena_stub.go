//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

// File: pool/arena_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

func mapAnonymous(int) ([]byte, func() error, error) {
	return nil, nil, errMmapUnsupported
}
