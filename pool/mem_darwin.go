//go:build darwin

// File: pool/mem_darwin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "golang.org/x/sys/unix"

// physicalMemory reports installed RAM.
func physicalMemory() (uint64, bool) {
	n, err := unix.SysctlUint64("hw.memsize")
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
