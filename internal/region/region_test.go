package region

import "testing"

func TestNewMemoryZeroFilled(t *testing.T) {
	r, err := NewMemory(256)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer r.Close()
	if r.Len() != 256 {
		t.Fatalf("Len: got %d want 256", r.Len())
	}
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero-filled: %x", i, b)
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	r, err := NewMemory(64)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("Len after Close: got %d want 0", r.Len())
	}
}

func TestNilRegionIsSafe(t *testing.T) {
	var r *Region
	if r.Bytes() != nil {
		t.Fatal("nil Region.Bytes() should be nil")
	}
	if r.Len() != 0 {
		t.Fatal("nil Region.Len() should be 0")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("nil Region.Close(): %v", err)
	}
}
