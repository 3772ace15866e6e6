package freelist

import (
	"blockheap/internal/cells"
	"blockheap/internal/logging"

	"go.uber.org/zap"
)

// BestFit scans the whole free list and keeps the smallest span that
// still covers the request; ties keep the earliest candidate found.
type BestFit struct{}

func (BestFit) Find(v cells.View, blocks uint16, log *logging.Logger) uint16 {
	cf := v.NF(0)
	bestBlock := cf
	bestSize := noCandidate

	for v.NF(cf) != 0 {
		span := v.Span(cf)
		log.Trace("free list scan", zap.Uint16("cell", cf), zap.Uint16("span", span))
		if span >= blocks && span < bestSize {
			bestBlock = cf
			bestSize = span
		}
		cf = v.NF(cf)
	}

	if bestSize != noCandidate {
		cf = bestBlock
	}
	return cf
}
