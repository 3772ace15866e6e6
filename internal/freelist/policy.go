// Package freelist implements the free-list search policies: first-fit
// and best-fit, selected at construction.
package freelist

import (
	"blockheap/internal/cells"
	"blockheap/internal/logging"
)

// Policy scans the free list for a block of at least the requested span.
//
// Find always returns a cell: either a free block whose span is >=
// blocks (the engine tells the two cases apart by checking
// cells.BlockNo(v.NB(cf))), or — when no free block fits — the walk's
// terminal node. That terminal node is, by construction of Alloc/Free,
// always the physically-last block in the heap, so the engine treats an
// unsatisfied search as "extend at end of heap" rather than as failure.
//
// log receives one Trace call per candidate visited, mirroring the
// original scan loop's per-block trace line; it is never nil.
type Policy interface {
	Find(v cells.View, blocks uint16, log *logging.Logger) uint16
}

// noCandidate is the "nothing fits yet" sentinel span used by BestFit; it
// exceeds any real 16-bit span a heap of at most 32767 cells can have.
const noCandidate uint16 = 0x7FFF
