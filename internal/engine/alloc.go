package engine

import (
	"blockheap/internal/cells"
	"blockheap/internal/errs"

	"go.uber.org/zap"
)

// Alloc reserves a block covering size payload bytes and returns its
// body address. size <= 0 returns NullAddr with no error: requesting
// nothing is not a failure.
func (e *Engine) Alloc(size int) (int, error) {
	if size <= 0 {
		return NullAddr, nil
	}
	e.sec.Enter()
	defer e.sec.Exit()
	return e.allocLocked(size)
}

func (e *Engine) allocLocked(size int) (int, error) {
	v := e.v
	blocks := e.blocksForSize(size)

	cf := e.policy.Find(v, blocks, e.log)

	if cells.BlockNo(v.NB(cf)) != 0 {
		// cf names a real free block somewhere in the heap.
		span := v.Span(cf)
		if span == blocks {
			e.log.Debug("alloc exact fit", zap.Uint16("cell", cf), zap.Uint16("blocks", blocks))
			e.disconnectFromFreeList(cf)
		} else {
			e.log.Debug("alloc split", zap.Uint16("cell", cf), zap.Uint16("blocks", blocks), zap.Uint16("span", span))
			e.makeNewBlock(cf, span-blocks, cells.FreeFlag)
			cf += span - blocks
		}
	} else {
		// The walk ran off the end of the free list without finding a
		// candidate; cf is the physically-last block in the heap, so we
		// grow there.
		if int(cf)+int(blocks)+1 >= int(v.N()) {
			e.log.Debug("alloc out of space", zap.Uint16("cell", cf), zap.Uint16("blocks", blocks))
			return NullAddr, errs.ErrNoSpace
		}

		cf = e.ensureInit(cf)

		pf := v.PF(cf)
		v.SetNF(pf, cf+blocks)
		copy(v.Raw(cf+blocks), v.Raw(cf))
		v.SetNB(cf, cf+blocks)
		v.SetPB(cf+blocks, cf)

		e.log.Debug("alloc grow heap", zap.Uint16("cell", cf), zap.Uint16("blocks", blocks))
	}

	return v.BodyAddr(cf), nil
}
