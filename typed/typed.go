// Package typed gives blockheap callers a typed view over an
// allocation instead of a raw unsafe.Pointer: New carves out space for
// a Go value, Free releases it, Resize grows or shrinks it (the value
// may move).
//
// T must contain no pointers, slices, maps, strings, or interfaces —
// anything the allocator's region outlives only as bytes, never as a
// live Go reference the garbage collector needs to track. This is the
// same constraint a flat embedded struct written straight into a
// byte buffer would need to satisfy.
package typed

import (
	"fmt"
	"reflect"
	"unsafe"

	"blockheap"
)

// New allocates space for one T and returns a pointer into the heap's
// own region. The returned value is not zeroed: it holds whatever bytes
// the block last held, including free-list links left by an earlier
// free.
func New[T any](h *blockheap.Heap) (*T, error) {
	if err := assertNoPointers[T](); err != nil {
		return nil, err
	}
	var zero T
	n := int(unsafe.Sizeof(zero))
	p, err := h.Alloc(n)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, blockheap.ErrNoSpace
	}
	return (*T)(p), nil
}

// Free releases a value previously returned by New or Resize.
func Free[T any](h *blockheap.Heap, v *T) {
	h.Free(unsafe.Pointer(v))
}

// Resize changes the total number of bytes reserved for v, T included,
// to totalSize — useful for a T that ends in a flexible-array-style
// trailer the caller addresses by hand. The returned pointer may
// differ from v even when resizing succeeds in place.
func Resize[T any](h *blockheap.Heap, v *T, totalSize int) (*T, error) {
	p, err := h.Realloc(unsafe.Pointer(v), totalSize)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return (*T)(p), nil
}

func assertNoPointers[T any]() error {
	var zero T
	return typeNoPointers(reflect.TypeOf(zero))
}

func typeNoPointers(t reflect.Type) error {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Array:
		return typeNoPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := typeNoPointers(t.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		return nil
	case reflect.String, reflect.Slice, reflect.Map, reflect.Pointer,
		reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Errorf("type %s contains pointer-like data", t.String())
	default:
		return fmt.Errorf("unsupported kind %s (%s)", t.Kind(), t.String())
	}
}
