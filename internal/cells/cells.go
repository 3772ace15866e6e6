// Package cells provides typed, masked access to the four 16-bit link
// fields packed into each cell of the heap's block array.
package cells

import "encoding/binary"

// FreeFlag is bit 15 of NB: set iff the logical block starting at a cell
// is free.
const FreeFlag uint16 = 0x8000

// Mask extracts the 15-bit block-number field from NB.
const Mask uint16 = 0x7FFF

// HeaderSize is the number of header bytes at the front of every cell
// (two 16-bit link fields: NB, PB).
const HeaderSize = 4

// View is a masked, typed accessor over a region's byte slice, addressed
// in fixed-size cells. It carries no state of its own beyond the slice
// and cell size — it is safe to construct fresh on every call.
type View struct {
	data      []byte
	blockSize int
}

// New wraps data as a cell array of the given block size (bytes per
// cell). data must already be sized to a multiple of blockSize.
func New(data []byte, blockSize int) View {
	return View{data: data, blockSize: blockSize}
}

// N returns the number of cells in the array.
func (v View) N() uint16 {
	return uint16(len(v.data) / v.blockSize)
}

// BlockSize returns the configured bytes-per-cell.
func (v View) BlockSize() int {
	return v.blockSize
}

// BodyBytes returns how many payload bytes the first cell of a block
// offers while in use (block size minus the header).
func (v View) BodyBytes() int {
	return v.blockSize - HeaderSize
}

func (v View) header(c uint16) []byte {
	off := int(c) * v.blockSize
	return v.data[off : off+HeaderSize]
}

// Body returns the body bytes of cell c: the free-list links when c is
// free, user payload when c is in use.
func (v View) Body(c uint16) []byte {
	off := int(c) * v.blockSize
	return v.data[off+HeaderSize : off+v.blockSize]
}

// NB returns the raw next-physical field, flag bit included.
func (v View) NB(c uint16) uint16 {
	return binary.LittleEndian.Uint16(v.header(c)[0:2])
}

// SetNB writes the raw next-physical field, flag bit included.
func (v View) SetNB(c uint16, val uint16) {
	binary.LittleEndian.PutUint16(v.header(c)[0:2], val)
}

// PB returns the previous-physical field.
func (v View) PB(c uint16) uint16 {
	return binary.LittleEndian.Uint16(v.header(c)[2:4])
}

// SetPB writes the previous-physical field.
func (v View) SetPB(c uint16, val uint16) {
	binary.LittleEndian.PutUint16(v.header(c)[2:4], val)
}

// NF returns the next-free-list field. Only meaningful if c is free.
func (v View) NF(c uint16) uint16 {
	return binary.LittleEndian.Uint16(v.Body(c)[0:2])
}

// SetNF writes the next-free-list field.
func (v View) SetNF(c uint16, val uint16) {
	binary.LittleEndian.PutUint16(v.Body(c)[0:2], val)
}

// PF returns the previous-free-list field. Only meaningful if c is free.
func (v View) PF(c uint16) uint16 {
	return binary.LittleEndian.Uint16(v.Body(c)[2:4])
}

// SetPF writes the previous-free-list field.
func (v View) SetPF(c uint16, val uint16) {
	binary.LittleEndian.PutUint16(v.Body(c)[2:4], val)
}

// BlockNo masks off FreeFlag, returning the plain block-number index.
func BlockNo(nb uint16) uint16 {
	return nb & Mask
}

// IsFreeFlag reports whether an NB value carries FreeFlag.
func IsFreeFlag(nb uint16) bool {
	return nb&FreeFlag != 0
}

// IsFree reports whether cell c's logical block is currently free.
func (v View) IsFree(c uint16) bool {
	return IsFreeFlag(v.NB(c))
}

// Next returns the block number of the physical successor of c.
func (v View) Next(c uint16) uint16 {
	return BlockNo(v.NB(c))
}

// Span returns the logical block size, in cells, starting at c.
func (v View) Span(c uint16) uint16 {
	return v.Next(c) - c
}

// Raw returns the full header+body bytes of cell c — used only for the
// verbatim cell copy performed when the heap extends at end-of-heap.
func (v View) Raw(c uint16) []byte {
	off := int(c) * v.blockSize
	return v.data[off : off+v.blockSize]
}

// BodyAddr returns the byte offset, within the region, of cell c's body
// — the address returned to callers of Alloc.
func (v View) BodyAddr(c uint16) int {
	return int(c)*v.blockSize + HeaderSize
}

// CellForAddr converts a body byte offset back to its owning cell index.
// Returns false if addr does not land exactly on a cell body boundary.
func (v View) CellForAddr(addr int) (uint16, bool) {
	off := addr - HeaderSize
	if off < 0 || off%v.blockSize != 0 {
		return 0, false
	}
	c := off / v.blockSize
	if c < 0 || c >= int(v.N()) {
		return 0, false
	}
	return uint16(c), true
}
