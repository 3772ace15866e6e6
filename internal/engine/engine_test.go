package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blockheap/internal/cells"
	"blockheap/internal/errs"
	"blockheap/internal/freelist"
	"blockheap/internal/region"
)

const testBlockSize = 8

func newTestEngine(t *testing.T, heapBytes int, policy freelist.Policy) *Engine {
	t.Helper()
	r, err := region.NewMemory(heapBytes)
	require.NoError(t, err)
	e, err := New(r, testBlockSize, policy, nil, nil)
	require.NoError(t, err)
	return e
}

// walkInvariants re-derives the physical chain from scratch and checks
// that it forms one unbroken, correctly back-linked run from cell 0 to
// N, with every free cell present in exactly one place on the free
// list and vice versa.
//
// The free list's own terminal node (reached when NF(cf) == 0) names
// the heap's still-unallocated tail, the one entry alloc's end-of-heap
// path perpetually relocates rather than disconnects (spec.md §4.8
// Case B). That cell is recognized by its NB's zero block-number, not
// by FREE_FLAG — Case B never ORs the flag into it — so it is exempt
// from the IsFree checks below on both sides of the walk.
func walkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	v := e.v

	seenFree := map[uint16]bool{}
	for cf := v.NF(0); cf != 0; cf = v.NF(cf) {
		require.False(t, seenFree[cf], "free list cycle at cell %d", cf)
		seenFree[cf] = true
		if cells.BlockNo(v.NB(cf)) != 0 {
			require.True(t, v.IsFree(cf), "cell %d on free list but not flagged free", cf)
		}
	}

	blockNo := cells.BlockNo(v.NB(0))
	prev := uint16(0)
	visited := map[uint16]bool{}
	for blockNo != 0 {
		require.False(t, visited[blockNo], "physical chain cycle at cell %d", blockNo)
		visited[blockNo] = true
		require.Equal(t, prev, v.PB(blockNo), "back-link mismatch at cell %d", blockNo)
		if v.IsFree(blockNo) {
			require.True(t, seenFree[blockNo], "cell %d flagged free but absent from free list", blockNo)
			delete(seenFree, blockNo)
		}
		prev = blockNo
		blockNo = cells.BlockNo(v.NB(blockNo))
	}
	delete(seenFree, prev)
	require.Empty(t, seenFree, "free list names cells not reachable from the physical chain")
}

func TestAllocZeroSizeReturnsNull(t *testing.T) {
	e := newTestEngine(t, 256, freelist.FirstFit{})
	addr, err := e.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, NullAddr, addr)
}

func TestAllocFreeRoundTrip(t *testing.T) {
	e := newTestEngine(t, 512, freelist.FirstFit{})
	addr, err := e.Alloc(10)
	require.NoError(t, err)
	require.NotEqual(t, NullAddr, addr)
	walkInvariants(t, e)

	e.Free(addr)
	walkInvariants(t, e)

	st, _ := e.Info(NullAddr, false)
	require.Equal(t, 0, st.UsedEntries)
}

func TestAllocExhaustion(t *testing.T) {
	e := newTestEngine(t, testBlockSize*4, freelist.FirstFit{})
	_, err := e.Alloc(100)
	require.ErrorIs(t, err, errs.ErrNoSpace)
}

func TestFreeCoalescesNeighbors(t *testing.T) {
	e := newTestEngine(t, testBlockSize*12, freelist.FirstFit{})
	a, err := e.Alloc(10)
	require.NoError(t, err)
	b, err := e.Alloc(10)
	require.NoError(t, err)
	c, err := e.Alloc(10)
	require.NoError(t, err)

	e.Free(a)
	e.Free(c)
	walkInvariants(t, e)

	e.Free(b)
	walkInvariants(t, e)

	st, _ := e.Info(NullAddr, false)
	require.Equal(t, 1, st.FreeEntries, "all three released blocks should merge into one free run")
}

func TestReallocSameSizeIsNoop(t *testing.T) {
	e := newTestEngine(t, 512, freelist.FirstFit{})
	addr, err := e.Alloc(4)
	require.NoError(t, err)
	got, err := e.Realloc(addr, 4)
	require.NoError(t, err)
	require.Equal(t, addr, got)
}

func TestReallocGrowPreservesData(t *testing.T) {
	e := newTestEngine(t, 1024, freelist.FirstFit{})
	addr, err := e.Alloc(4)
	require.NoError(t, err)
	data := e.region.Bytes()
	copy(data[addr:addr+4], []byte{1, 2, 3, 4})

	newAddr, err := e.Realloc(addr, 200)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, data[newAddr:newAddr+4])
	walkInvariants(t, e)
}

func TestReallocShrinkFreesTail(t *testing.T) {
	e := newTestEngine(t, 1024, freelist.FirstFit{})
	addr, err := e.Alloc(200)
	require.NoError(t, err)
	data := e.region.Bytes()
	copy(data[addr:addr+4], []byte{9, 9, 9, 9})

	newAddr, err := e.Realloc(addr, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9, 9, 9}, data[newAddr:newAddr+4])
	walkInvariants(t, e)

	st, _ := e.Info(NullAddr, false)
	require.GreaterOrEqual(t, st.FreeEntries, 1)
}

func TestReallocNullIsAlloc(t *testing.T) {
	e := newTestEngine(t, 512, freelist.FirstFit{})
	addr, err := e.Realloc(NullAddr, 10)
	require.NoError(t, err)
	require.NotEqual(t, NullAddr, addr)
}

func TestReallocZeroIsFree(t *testing.T) {
	e := newTestEngine(t, 512, freelist.FirstFit{})
	addr, err := e.Alloc(10)
	require.NoError(t, err)
	got, err := e.Realloc(addr, 0)
	require.NoError(t, err)
	require.Equal(t, NullAddr, got)
	walkInvariants(t, e)
}

func TestBestFitPrefersSmallestAdequateBlock(t *testing.T) {
	e := newTestEngine(t, testBlockSize*40, freelist.BestFit{})

	// a and b become two free blocks of different spans. Each is kept
	// apart from its neighbor by a used spacer, so Free(a) and Free(b)
	// cannot eagerly coalesce them with each other or with the
	// perpetual end-of-heap tail — both stay distinct free-list
	// entries for best-fit to choose between.
	a, err := e.Alloc(10)
	require.NoError(t, err)
	_, err = e.Alloc(10)
	require.NoError(t, err)
	b, err := e.Alloc(80)
	require.NoError(t, err)
	_, err = e.Alloc(10)
	require.NoError(t, err)

	e.Free(a)
	e.Free(b)
	walkInvariants(t, e)

	cellA, ok := e.v.CellForAddr(a)
	require.True(t, ok)
	cellB, ok := e.v.CellForAddr(b)
	require.True(t, ok)
	spanA := e.v.Span(cellA)
	spanB := e.v.Span(cellB)
	require.Less(t, spanA, spanB, "test setup: a's free block must be the smaller of the two")

	blocks := e.blocksForSize(4)
	addr, err := e.Alloc(4)
	require.NoError(t, err)
	walkInvariants(t, e)

	cell, ok := e.v.CellForAddr(addr)
	require.True(t, ok)

	// §4.8 Case A carves the allocation from the *tail* of the chosen
	// free block (cf += span-blocks), leaving the head remainder on
	// the free list at its original index.
	want := cellA + (spanA - blocks)
	require.Equal(t, want, cell, "best fit should carve the smaller free block, not the larger one")
}
