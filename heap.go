// Package blockheap implements a fragmentation-resistant, constant-time
// free-list allocator over a single statically-provisioned byte
// region. It is a software model of the kind of allocator embedded
// firmware runs in place of a full libc malloc: fixed block indices
// instead of pointers, no syscalls on the hot path, and a bounded
// number of link-list operations per call.
package blockheap

import (
	"unsafe"

	"blockheap/config"
	"blockheap/internal/critsection"
	"blockheap/internal/engine"
	"blockheap/internal/errs"
	"blockheap/internal/freelist"
	"blockheap/internal/region"
)

// Sentinel errors exposed for errors.Is against the internal ones.
var (
	ErrBadArgument = errs.ErrBadArgument
	ErrNoSpace     = errs.ErrNoSpace
	ErrClosed      = errs.ErrClosed
)

// Heap is one provisioned allocator instance.
type Heap struct {
	e *engine.Engine
}

func policyFor(p config.Policy) freelist.Policy {
	if p == config.FirstFit {
		return freelist.FirstFit{}
	}
	return freelist.BestFit{}
}

func regionFor(c config.Config) (*region.Region, error) {
	if c.Backing == config.BackingMapped {
		return region.NewMapped(c.HeapSize)
	}
	return region.NewMemory(c.HeapSize)
}

// Open provisions a new Heap per cfg. The region is always zero-filled
// at creation; initialization of the free list itself is deferred to
// the first Alloc.
func Open(cfg config.Config) (*Heap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := regionFor(cfg)
	if err != nil {
		return nil, err
	}
	e, err := engine.New(r, cfg.BlockSize, policyFor(cfg.Policy), &critsection.Mutex{}, cfg.Logger)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &Heap{e: e}, nil
}

// Close releases the heap's backing region. The Heap must not be used
// afterward; every pointer previously handed out by Alloc becomes
// invalid.
func (h *Heap) Close() error {
	if h == nil || h.e == nil {
		return nil
	}
	return h.e.Close()
}

func (h *Heap) addrToPtr(addr int) unsafe.Pointer {
	if addr == engine.NullAddr {
		return nil
	}
	return unsafe.Pointer(&h.e.Region().Bytes()[addr])
}

func (h *Heap) ptrToAddr(p unsafe.Pointer) int {
	if p == nil {
		return engine.NullAddr
	}
	base := unsafe.Pointer(&h.e.Region().Bytes()[0])
	return int(uintptr(p) - uintptr(base))
}

// Alloc reserves a block covering at least size bytes and returns a
// pointer to it. size == 0 returns (nil, nil): not an error, just
// nothing to allocate. Running out of room returns (nil, ErrNoSpace).
func (h *Heap) Alloc(size int) (unsafe.Pointer, error) {
	addr, err := h.e.Alloc(size)
	if err != nil {
		return nil, err
	}
	return h.addrToPtr(addr), nil
}

// Free releases a block previously returned by Alloc or Realloc. A nil
// p is a no-op.
func (h *Heap) Free(p unsafe.Pointer) {
	h.e.Free(h.ptrToAddr(p))
}

// Realloc resizes the block at p to hold size bytes, preserving as
// much of the original contents as fits. p == nil behaves as Alloc;
// size == 0 behaves as Free. The returned pointer may differ from p
// even when the request could be satisfied in place.
func (h *Heap) Realloc(p unsafe.Pointer, size int) (unsafe.Pointer, error) {
	addr, err := h.e.Realloc(h.ptrToAddr(p), size)
	if err != nil {
		return nil, err
	}
	return h.addrToPtr(addr), nil
}

// Stats reports the result of a full heap walk: entry counts and cell
// counts in used/free/overall categories.
type Stats = engine.Stats

// Info walks the heap, returning aggregate Stats. If forceDump is set,
// every block visited is also logged at the heap's force level. If p
// names a block currently on the free list, Info returns early with
// (stats-so-far, true).
func (h *Heap) Info(p unsafe.Pointer, forceDump bool) (Stats, bool) {
	return h.e.Info(h.ptrToAddr(p), forceDump)
}

// BodyBytes reports how many payload bytes a single cell offers before
// a second cell is needed — the break-even point Alloc uses to decide
// how many cells a request spans.
func (h *Heap) BodyBytes() int {
	return h.e.BodyBytes()
}
