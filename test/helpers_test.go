package blockheap_test

import "unsafe"

// unsafeBytes views n bytes starting at p as a slice, purely for test
// assertions against payload contents. Production callers should reach
// for the typed package instead of doing this themselves.
func unsafeBytes(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}
