package engine

import "blockheap/internal/cells"

// disconnectFromFreeList splices c out of the free list without
// touching its physical neighbors, and clears c's own free flag.
func (e *Engine) disconnectFromFreeList(c uint16) {
	v := e.v
	pf := v.PF(c)
	nf := v.NF(c)
	v.SetNF(pf, nf)
	v.SetPF(nf, pf)
	v.SetNB(c, v.NB(c)&^cells.FreeFlag)
}

// assimilateUp merges c's physical successor into c, if that successor
// is free. c itself is always used (flag clear) at both call sites, so
// overwriting NB(c) below never loses a free flag that mattered.
func (e *Engine) assimilateUp(c uint16) {
	v := e.v
	n := v.Next(c)
	if !v.IsFree(n) {
		return
	}
	e.disconnectFromFreeList(n)
	nn := v.Next(n)
	v.SetPB(nn, c)
	v.SetNB(c, nn)
}

// assimilateDown unconditionally merges c into its physical predecessor
// p, extending p's span to cover c, and returns p. freemask controls
// whether p ends up free or used; c is always used (flag clear) at both
// call sites.
func (e *Engine) assimilateDown(c, freemask uint16) uint16 {
	v := e.v
	p := v.PB(c)
	nbc := v.NB(c)
	v.SetNB(p, nbc|freemask)
	v.SetPB(cells.BlockNo(nbc), p)
	return p
}
