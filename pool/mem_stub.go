//go:build !linux && !darwin && !windows

// File: pool/mem_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

func physicalMemory() (uint64, bool) { return 0, false }
