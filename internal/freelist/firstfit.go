package freelist

import (
	"blockheap/internal/cells"
	"blockheap/internal/logging"

	"go.uber.org/zap"
)

// FirstFit stops at the first free block whose span covers the request.
type FirstFit struct{}

func (FirstFit) Find(v cells.View, blocks uint16, log *logging.Logger) uint16 {
	cf := v.NF(0)
	for v.NF(cf) != 0 {
		span := v.Span(cf)
		log.Trace("free list scan", zap.Uint16("cell", cf), zap.Uint16("span", span))
		if span >= blocks {
			break
		}
		cf = v.NF(cf)
	}
	return cf
}
