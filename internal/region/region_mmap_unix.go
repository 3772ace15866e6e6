//go:build unix

package region

import "golang.org/x/sys/unix"

// NewMapped provisions an anonymous, page-backed region via mmap. Useful
// when the host wants the allocator's memory returned to the OS promptly
// on Close rather than lingering until the next GC cycle, or wants to
// mprotect the region in a debug build.
func NewMapped(size int) (*Region, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, unmap: unix.Munmap}, nil
}
