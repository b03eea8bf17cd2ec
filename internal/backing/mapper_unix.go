//go:build !windows

package backing

import "golang.org/x/sys/unix"

// unixMapper backs regions with an anonymous, private mmap via
// golang.org/x/sys/unix. The region is never file-backed since an
// arena has no on-disk identity.
type unixMapper struct{}

func newMapper() pageMapper { return unixMapper{} }

func (unixMapper) Map(size uintptr) ([]byte, error) {
	return unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func (unixMapper) Unmap(region []byte) error {
	return unix.Munmap(region)
}
