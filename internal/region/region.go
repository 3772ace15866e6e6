// Package region provisions the single zero-initialized byte region the
// heap engine is a view over.
package region

// Region is the provisioned backing storage for a heap. It is always
// zero-filled at creation and never resized.
type Region struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the backing slice. The engine indexes into it directly;
// callers outside the engine should not retain the slice past Close.
func (r *Region) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.data
}

// Len returns the region size in bytes, or 0 if closed.
func (r *Region) Len() int {
	if r == nil || r.data == nil {
		return 0
	}
	return len(r.data)
}

// Close releases the backing storage. Safe to call more than once.
func (r *Region) Close() error {
	if r == nil || r.data == nil {
		return nil
	}
	var err error
	if r.unmap != nil {
		err = r.unmap(r.data)
	}
	r.data = nil
	r.unmap = nil
	return err
}

// NewMemory provisions a plain zeroed Go-heap-backed region. This is the
// default: no syscalls, no alignment surprises, garbage collected along
// with the Region value itself.
func NewMemory(size int) (*Region, error) {
	return &Region{data: make([]byte, size)}, nil
}
