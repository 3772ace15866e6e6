package engine

// makeNewBlock splits the logical block at c into a head of blocks
// cells (staying at c) and a tail starting at s = c+blocks that absorbs
// whatever remained of c's old span. freemask is OR'd into the head's
// own NB, so callers choose whether c ends up free or used; the tail's
// NB is always left unflagged — wiring it into the free list, if that's
// what the caller wants, is the caller's job.
func (e *Engine) makeNewBlock(c, blocks, freemask uint16) {
	v := e.v
	s := c + blocks
	n := v.Next(c)
	v.SetNB(s, n)
	v.SetPB(s, c)
	v.SetPB(n, s)
	v.SetNB(c, s|freemask)
}
