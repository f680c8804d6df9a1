//go:build windows

// File: pool/mem_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// physicalMemory reports the commit limit: RAM plus page file.
func physicalMemory() (uint64, bool) {
	var st windows.MemoryStatusEx
	st.Length = uint32(unsafe.Sizeof(st))
	if err := windows.GlobalMemoryStatusEx(&st); err != nil {
		return 0, false
	}
	return st.TotalPageFile, true
}
