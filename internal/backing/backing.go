// Package backing implements the aligned backing allocator: it obtains
// raw, page-backed, arbitrarily-aligned memory from the host's page
// mapper and stores a sidecar header immediately before the returned
// pointer so Release knows the true mapping base and length.
//
// Every precondition here is a programmer error, not a recoverable
// condition: Acquire and Release never return an error value, they
// terminate the process via diag.Invariant instead.
package backing

import (
	"os"
	"runtime"
	"unsafe"

	"github.com/nmxmxh/memarena/internal/align"
	"github.com/nmxmxh/memarena/internal/diag"
)

const maxAlignment = 1 << 16

var pageSize = uintptr(os.Getpagesize())

// Acquire returns a pointer aligned to alignment addressing at least
// size writable bytes. size must be nonzero, alignment must be a
// power of two not exceeding 1<<16.
func Acquire(size, alignment uint32) unsafe.Pointer {
	diag.Invariant(size > 0, "size > 0", "backing.Acquire: size must be nonzero")
	diag.Invariant(align.IsPowerOfTwo(alignment), "isPowerOfTwo(alignment)",
		"backing.Acquire: alignment %d is not a power of two", alignment)
	diag.Invariant(uintptr(alignment) <= maxAlignment, "alignment <= 1<<16",
		"backing.Acquire: alignment %d exceeds maximum %d", alignment, maxAlignment)

	total := uintptr(size) + uintptr(alignment) + sidecarSize
	total = align.Up(total, pageSize)

	mapping, err := defaultMapper.Map(total)
	diag.Invariant(err == nil, "mapper.Map(total) == nil", "backing.Acquire: page mapper failed: %v", err)

	poisonFresh(mapping)

	base := uintptr(unsafe.Pointer(&mapping[0]))
	user := align.Up(base+uintptr(sidecarSize), uintptr(alignment))

	userPtr := unsafe.Pointer(user)
	writeSidecar(userPtr, base, uint32(total))

	runtime.KeepAlive(mapping)
	return userPtr
}

// Release returns the region addressed by userPtr (as previously
// returned by Acquire) to the host.
func Release(userPtr unsafe.Pointer) {
	diag.Invariant(userPtr != nil, "userPtr != nil", "backing.Release: nil pointer")

	sc := readSidecar(userPtr)
	region := unsafe.Slice((*byte)(unsafe.Pointer(sc.base)), sc.total)

	poisonReleased(region)

	err := defaultMapper.Unmap(region)
	diag.Invariant(err == nil, "mapper.Unmap(region) == nil", "backing.Release: page mapper failed: %v", err)
}
