package blockheap

import "unsafe"

// Malloc is an alias for Alloc, named to match the C standard library for
// hosts that want this package to read as a drop-in replacement for
// malloc/free/realloc at call sites. Free and Realloc already match their C
// names; Alloc is the one spelling that differs, so it is the only alias
// needed.
func (h *Heap) Malloc(size int) (unsafe.Pointer, error) {
	return h.Alloc(size)
}
