//go:build windows

package backing

import "fmt"

// heapMapper is the portable fallback used where this module has no
// native anonymous-mmap primitive wired up. It satisfies the page
// mapper contract's size/zeroing guarantees via a plain heap
// allocation; Unmap is a no-op and relies on the garbage collector,
// which is observably different from a real unmap (the OS page table
// entry isn't reclaimed immediately) but preserves every invariant the
// arena itself depends on.
type heapMapper struct{}

func newMapper() pageMapper { return heapMapper{} }

func (heapMapper) Map(size uintptr) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("backing: zero-size map")
	}
	return make([]byte, size), nil
}

func (heapMapper) Unmap(region []byte) error {
	return nil
}
