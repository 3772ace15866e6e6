// Package engine implements the allocator itself: the split/coalesce
// primitives, the public alloc/free/realloc/info operations, and the
// lazy first-touch initialization of cell 0.
//
// An Engine owns no goroutines and starts no background work. Every
// exported method is a direct, synchronous translation of the
// algorithm it was grounded on; the only thing that changes between
// calls is the byte region itself.
package engine

import (
	"blockheap/internal/cells"
	"blockheap/internal/critsection"
	"blockheap/internal/errs"
	"blockheap/internal/freelist"
	"blockheap/internal/logging"
	"blockheap/internal/region"
	"blockheap/internal/sizeclass"
)

// NullAddr is the body address Alloc/Realloc return in place of a null
// pointer. It never names a real cell body (BodyAddr(0) == HeaderSize,
// never -1), so it is safe to use as the sentinel at this layer; the
// facade package is responsible for turning it into a nil
// unsafe.Pointer at the public boundary.
const NullAddr = -1

// Engine is a single heap instance: one region, one cell view over it,
// one search policy, one critical section.
type Engine struct {
	region *region.Region
	v      cells.View
	policy freelist.Policy
	sec    critsection.Section
	log    *logging.Logger
}

// New builds an Engine over an already-provisioned, zero-filled region.
// The region must be a multiple of blockSize bytes and hold at least
// two cells (the sentinel plus one real block).
func New(r *region.Region, blockSize int, policy freelist.Policy, sec critsection.Section, log *logging.Logger) (*Engine, error) {
	if r == nil || r.Bytes() == nil {
		return nil, errs.ErrBadArgument
	}
	if blockSize < cells.HeaderSize+4 {
		return nil, errs.ErrBadArgument
	}
	if len(r.Bytes())%blockSize != 0 || len(r.Bytes())/blockSize < 2 {
		return nil, errs.ErrBadArgument
	}
	if policy == nil {
		policy = freelist.BestFit{}
	}
	if sec == nil {
		sec = &critsection.Mutex{}
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Engine{
		region: r,
		v:      cells.New(r.Bytes(), blockSize),
		policy: policy,
		sec:    sec,
		log:    log,
	}, nil
}

// Close releases the backing region. The Engine must not be used
// afterward.
func (e *Engine) Close() error {
	return e.region.Close()
}

// BodyBytes reports the usable payload of a single cell, the break-even
// point used by BlocksForSize.
func (e *Engine) BodyBytes() int {
	return e.v.BodyBytes()
}

// Region exposes the backing region so the facade package can convert
// body addresses to unsafe.Pointer without the engine importing unsafe
// itself.
func (e *Engine) Region() *region.Region {
	return e.region
}

func (e *Engine) blocksForSize(size int) uint16 {
	return sizeclass.BlocksForSize(size, e.v.BlockSize(), e.v.BodyBytes())
}

// ensureInit lazily wires cell 0 the first time the heap is touched:
// NB(0) and NF(0) both point at cell 1, which becomes the sole free
// block spanning the rest of the region.
func (e *Engine) ensureInit(cf uint16) uint16 {
	if cf != 0 {
		return cf
	}
	e.v.SetNB(0, 1)
	e.v.SetNF(0, 1)
	return 1
}
