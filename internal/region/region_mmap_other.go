//go:build !unix

package region

import "errors"

// ErrNotSupported is returned by NewMapped on hosts without mmap.
var ErrNotSupported = errors.New("region: mmap-backed region not supported on this platform")

// NewMapped is unavailable outside unix; callers should fall back to
// NewMemory.
func NewMapped(size int) (*Region, error) {
	return nil, ErrNotSupported
}
