package engine

import (
	"blockheap/internal/cells"
	"blockheap/internal/errs"

	"go.uber.org/zap"
)

// Realloc resizes the block at addr to hold size payload bytes,
// returning the (possibly new) body address. A null addr behaves as
// Alloc; a zero size behaves as Free.
func (e *Engine) Realloc(addr int, size int) (int, error) {
	if addr == NullAddr {
		return e.Alloc(size)
	}
	if size <= 0 {
		e.Free(addr)
		return NullAddr, nil
	}
	e.sec.Enter()
	defer e.sec.Exit()
	return e.reallocLocked(addr, size)
}

func (e *Engine) reallocLocked(addr, size int) (int, error) {
	v := e.v
	data := e.region.Bytes()

	c, ok := v.CellForAddr(addr)
	if !ok {
		return NullAddr, errs.ErrBadArgument
	}

	blocks := e.blocksForSize(size)
	curSpan := v.Span(c)
	curPayload := int(curSpan)*v.BlockSize() - cells.HeaderSize

	if curSpan == blocks {
		return addr, nil
	}

	// Either direction, try to assimilate up first: if it's still too
	// small afterward, free() would have done this step anyway.
	e.assimilateUp(c)

	p := v.PB(c)
	if v.IsFree(p) {
		merged := cells.BlockNo(v.NB(c)) - p
		if blocks <= merged {
			e.log.Debug("realloc assimilate down", zap.Uint16("cell", c), zap.Uint16("pred", p))
			e.disconnectFromFreeList(p)
			c = e.assimilateDown(c, 0)
			newAddr := v.BodyAddr(c)
			copy(data[newAddr:newAddr+curPayload], data[addr:addr+curPayload])
			addr = newAddr
		}
	}

	span := v.Span(c)
	switch {
	case span == blocks:
		return addr, nil
	case span > blocks:
		e.log.Debug("realloc shrink", zap.Uint16("cell", c), zap.Uint16("blocks", blocks), zap.Uint16("span", span))
		e.makeNewBlock(c, blocks, 0)
		e.freeLocked(v.BodyAddr(c + blocks))
		return addr, nil
	default:
		e.log.Debug("realloc grow", zap.Uint16("cell", c), zap.Uint16("blocks", blocks), zap.Uint16("span", span))
		newAddr, err := e.allocLocked(size)
		if err != nil {
			return NullAddr, err
		}
		copy(data[newAddr:newAddr+curPayload], data[addr:addr+curPayload])
		e.freeLocked(addr)
		return newAddr, nil
	}
}
