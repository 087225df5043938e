package hal

import (
	"sync"
	"unsafe"
)

// Default pool budgets, modeled on a board with external PSRAM for frame
// data and a small amount of internal SRAM left over for scratch buffers.
const (
	DefaultBulkBytes = 8 << 20
	DefaultFastBytes = 256 << 10
)

type allocation struct {
	raw   []byte
	class MemClass
	size  int
}

// poolAllocator serves aligned regions out of two fixed byte budgets.
//
// Alignment is achieved by over-allocating and slicing at the first
// aligned address, so a returned region is safe to hand to a copy engine
// that assumes cache-line granularity.
type poolAllocator struct {
	mu   sync.Mutex
	free map[MemClass]int
	live map[*byte]allocation
}

// NewAllocator returns an Allocator with the given pool budgets in bytes.
func NewAllocator(bulk, fast int) Allocator {
	return &poolAllocator{
		free: map[MemClass]int{
			MemBulk: bulk,
			MemFast: fast,
		},
		live: map[*byte]allocation{},
	}
}

func (a *poolAllocator) Alloc(size, align int, class MemClass) ([]byte, error) {
	if size <= 0 {
		return nil, ErrOutOfMemory
	}
	if align < 1 {
		align = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	budget, ok := a.free[class]
	if !ok || budget < size {
		return nil, ErrOutOfMemory
	}

	raw := make([]byte, size+align-1)
	off := 0
	if align > 1 {
		addr := uintptr(unsafe.Pointer(&raw[0]))
		if rem := int(addr % uintptr(align)); rem != 0 {
			off = align - rem
		}
	}
	buf := raw[off : off+size : off+size]

	a.free[class] = budget - size
	a.live[&buf[0]] = allocation{raw: raw, class: class, size: size}
	return buf, nil
}

func (a *poolAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := &buf[0]
	al, ok := a.live[key]
	if !ok {
		return
	}
	delete(a.live, key)
	a.free[al.class] += al.size
}
