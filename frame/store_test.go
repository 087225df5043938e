package frame

import (
	"errors"
	"testing"

	"triplex/hal"
)

// testAllocator hands out plain slices and records every call so tests
// can check sizing, classes, and release behavior.
type testAllocator struct {
	failAt  int // 1-based call index that starts failing; 0 = never
	calls   int
	allocs  [][]byte
	frees   [][]byte
	aligns  []int
	classes []hal.MemClass
}

func (a *testAllocator) Alloc(size, align int, class hal.MemClass) ([]byte, error) {
	a.calls++
	if a.failAt != 0 && a.calls >= a.failAt {
		return nil, hal.ErrOutOfMemory
	}
	buf := make([]byte, size)
	a.allocs = append(a.allocs, buf)
	a.aligns = append(a.aligns, align)
	a.classes = append(a.classes, class)
	return buf, nil
}

func (a *testAllocator) Free(buf []byte) {
	a.frees = append(a.frees, buf)
}

func sameBuf(a, b []byte) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

func TestNewStoreInitialRoles(t *testing.T) {
	alloc := &testAllocator{}
	s, err := NewStore(alloc, 128)
	if err != nil {
		t.Fatal(err)
	}

	if len(alloc.allocs) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(alloc.allocs))
	}
	for i, align := range alloc.aligns {
		if align != BufferAlign {
			t.Fatalf("allocation %d: align %d, want %d", i, align, BufferAlign)
		}
	}
	for i, class := range alloc.classes {
		if class != hal.MemBulk {
			t.Fatalf("allocation %d: class %d, want MemBulk", i, class)
		}
	}

	if !sameBuf(s.Buffer(RoleWork), alloc.allocs[0]) {
		t.Fatal("work role not assigned to first buffer")
	}
	if !sameBuf(s.Buffer(RoleBack), alloc.allocs[1]) {
		t.Fatal("back role not assigned to second buffer")
	}
	if !sameBuf(s.Buffer(RoleFront), alloc.allocs[2]) {
		t.Fatal("front role not assigned to third buffer")
	}
}

func TestNewStorePartialFailureReleases(t *testing.T) {
	alloc := &testAllocator{failAt: 3}
	_, err := NewStore(alloc, 128)
	if err == nil {
		t.Fatal("expected error when third allocation fails")
	}
	if !errors.Is(err, hal.ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}

	if len(alloc.frees) != 2 {
		t.Fatalf("expected 2 buffers released, got %d", len(alloc.frees))
	}
	for i := range alloc.frees {
		if !sameBuf(alloc.frees[i], alloc.allocs[i]) {
			t.Fatalf("released buffer %d is not the one allocated", i)
		}
	}
}

func TestSwapBackFrontIsAPurePermutation(t *testing.T) {
	alloc := &testAllocator{}
	s, err := NewStore(alloc, 64)
	if err != nil {
		t.Fatal(err)
	}

	work := s.Buffer(RoleWork)
	back := s.Buffer(RoleBack)
	front := s.Buffer(RoleFront)

	s.SwapBackFront()

	if !sameBuf(s.Buffer(RoleFront), back) {
		t.Fatal("new front is not the old back")
	}
	if !sameBuf(s.Buffer(RoleBack), front) {
		t.Fatal("new back is not the old front")
	}
	if !sameBuf(s.Buffer(RoleWork), work) {
		t.Fatal("work buffer changed across swap")
	}

	// Swapping twice restores the original assignment.
	s.SwapBackFront()
	if !sameBuf(s.Buffer(RoleBack), back) || !sameBuf(s.Buffer(RoleFront), front) {
		t.Fatal("double swap is not the identity")
	}
}

func TestReleaseFreesAllBuffers(t *testing.T) {
	alloc := &testAllocator{}
	s, err := NewStore(alloc, 64)
	if err != nil {
		t.Fatal(err)
	}
	s.Release()
	if len(alloc.frees) != 3 {
		t.Fatalf("expected 3 buffers released, got %d", len(alloc.frees))
	}
}

func TestNewStoreRejectsBadSize(t *testing.T) {
	if _, err := NewStore(&testAllocator{}, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := NewStore(&testAllocator{}, -1); err == nil {
		t.Fatal("expected error for negative size")
	}
}
