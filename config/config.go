// Package config defines the Heap's construction-time contract: how
// big the region is, what cell size and search policy to use, where
// the backing bytes come from, and which logger to wire in. Config
// values can be built directly or loaded from YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"blockheap/internal/errs"
	"blockheap/internal/logging"
)

// Policy selects the free-list search strategy.
type Policy string

const (
	// FirstFit stops at the first adequate free block. Cheaper per call,
	// at the cost of worse long-run fragmentation.
	FirstFit Policy = "first-fit"
	// BestFit scans the whole free list and keeps the smallest
	// adequate block, trading a longer search for less fragmentation.
	// The default.
	BestFit Policy = "best-fit"
)

// Backing selects where the region's bytes live.
type Backing string

const (
	// BackingMemory allocates a plain Go byte slice. No syscalls, the
	// default, and the only backing available on non-Unix hosts.
	BackingMemory Backing = "memory"
	// BackingMapped provisions the region via an anonymous mmap,
	// useful when the caller wants the heap to live outside the Go
	// garbage-collected heap (e.g. to keep a large arena off the GC's
	// scan list). Unix only.
	BackingMapped Backing = "mapped"
)

// Config is the complete set of knobs a Heap is built from.
type Config struct {
	// HeapSize is the total size in bytes of the provisioned region,
	// including the reserved sentinel cell. Must be a multiple of
	// BlockSize and cover at least two cells.
	HeapSize int `yaml:"heap_size"`

	// BlockSize is the number of bytes per cell. Open rejects values
	// below 8, the size of the four 16-bit link fields (the last two
	// share space with the payload of a used cell); 8 or 16 are typical
	// for small embedded targets.
	BlockSize int `yaml:"block_size"`

	// Policy selects the free-list search strategy. Defaults to
	// BestFit if left empty.
	Policy Policy `yaml:"policy"`

	// Backing selects where the region's storage lives. Defaults to
	// BackingMemory if left empty.
	Backing Backing `yaml:"backing"`

	// Logger receives every split/coalesce/search decision at debug
	// level, and info's dump at force level. A nil Logger discards
	// everything.
	Logger *logging.Logger `yaml:"-"`
}

// Load reads a Config from a YAML file at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports whether c describes a buildable heap, without
// touching any storage.
func (c Config) Validate() error {
	if c.BlockSize <= 0 || c.HeapSize <= 0 {
		return errs.ErrBadArgument
	}
	if c.HeapSize%c.BlockSize != 0 {
		return errs.ErrBadArgument
	}
	if c.HeapSize/c.BlockSize < 2 {
		return errs.ErrBadArgument
	}
	return nil
}
