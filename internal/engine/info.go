package engine

import (
	"blockheap/internal/cells"

	"go.uber.org/zap"
)

// Stats summarizes a single walk of the physical block chain.
type Stats struct {
	TotalEntries int
	TotalBlocks  int
	UsedEntries  int
	UsedBlocks   int
	FreeEntries  int
	FreeBlocks   int
}

// Info walks the entire physical chain, accumulating Stats, and
// optionally logs every block it visits (forceDump). If addr names a
// free block it returns true alongside the stats accumulated up to
// that point — mirroring the original's dual use as both a heap dumper
// and a "is this pointer currently on the free list" probe.
func (e *Engine) Info(addr int, forceDump bool) (Stats, bool) {
	e.sec.Enter()
	defer e.sec.Exit()

	v := e.v
	var st Stats

	if forceDump {
		e.log.Force("heap dump: sentinel",
			zap.Uint16("cell", 0),
			zap.Uint16("nb", cells.BlockNo(v.NB(0))),
			zap.Uint16("pb", v.PB(0)),
			zap.Uint16("nf", v.NF(0)),
			zap.Uint16("pf", v.PF(0)),
		)
	}

	blockNo := cells.BlockNo(v.NB(0))
	if blockNo == 0 {
		// Heap never touched by an allocation: the implicit initial free
		// block starts at cell 1, same as alloc's lazy init, but Info must
		// not mutate the region to observe it.
		blockNo = 1
	}
	for cells.BlockNo(v.NB(blockNo)) != 0 {
		span := cells.BlockNo(v.NB(blockNo)) - blockNo
		st.TotalEntries++
		st.TotalBlocks += int(span)

		if v.IsFree(blockNo) {
			st.FreeEntries++
			st.FreeBlocks += int(span)

			if forceDump {
				e.log.Force("heap dump: free block",
					zap.Uint16("cell", blockNo),
					zap.Uint16("span", span),
					zap.Uint16("nf", v.NF(blockNo)),
					zap.Uint16("pf", v.PF(blockNo)),
				)
			}

			if addr == v.BodyAddr(blockNo) {
				return st, true
			}
		} else {
			st.UsedEntries++
			st.UsedBlocks += int(span)

			if forceDump {
				e.log.Force("heap dump: used block",
					zap.Uint16("cell", blockNo),
					zap.Uint16("span", span),
				)
			}
		}

		blockNo = cells.BlockNo(v.NB(blockNo))
	}

	st.FreeBlocks += int(v.N()) - int(blockNo)
	st.TotalBlocks += int(v.N()) - int(blockNo)

	if forceDump {
		e.log.Force("heap dump: summary",
			zap.Int("totalEntries", st.TotalEntries),
			zap.Int("totalBlocks", st.TotalBlocks),
			zap.Int("usedEntries", st.UsedEntries),
			zap.Int("usedBlocks", st.UsedBlocks),
			zap.Int("freeEntries", st.FreeEntries),
			zap.Int("freeBlocks", st.FreeBlocks),
		)
	}

	return st, false
}
