package engine

import (
	"blockheap/internal/cells"

	"go.uber.org/zap"
)

// Free releases the block at addr. addr == NullAddr is a no-op, mirroring
// free(NULL).
func (e *Engine) Free(addr int) {
	if addr == NullAddr {
		return
	}
	e.sec.Enter()
	defer e.sec.Exit()
	e.freeLocked(addr)
}

// freeLocked does the actual work, without taking the critical section —
// callers that already hold it (realloc's shrink path) call this
// directly instead of Free.
func (e *Engine) freeLocked(addr int) {
	v := e.v
	c, ok := v.CellForAddr(addr)
	if !ok {
		e.log.Debug("free: bad address, ignored", zap.Int("addr", addr))
		return
	}

	e.assimilateUp(c)

	p := v.PB(c)
	if v.IsFree(p) {
		e.log.Debug("free: assimilate down", zap.Uint16("cell", c), zap.Uint16("pred", p))
		e.assimilateDown(c, cells.FreeFlag)
		return
	}

	e.log.Debug("free: new free-list head", zap.Uint16("cell", c))
	head := v.NF(0)
	v.SetPF(head, c)
	v.SetNF(c, head)
	v.SetPF(c, 0)
	v.SetNF(0, c)
	v.SetNB(c, v.NB(c)|cells.FreeFlag)
}
