// Package frame implements a tear-free triple-buffered presentation
// pipeline: a work buffer receives incremental tile writes, a copy engine
// mirrors it into the back buffer at end of frame, and an O(1) role swap
// hands the result to the display panel without ever stalling scan-out.
package frame

import (
	"fmt"

	"triplex/hal"
)

// Role names one of the three buffer slots.
type Role uint8

const (
	// RoleWork is the private composition target; never shown to hardware.
	RoleWork Role = iota
	// RoleBack receives the finalized copy of the work buffer.
	RoleBack
	// RoleFront is the buffer currently advertised for scan-out.
	RoleFront

	roleCount
)

func (r Role) String() string {
	switch r {
	case RoleWork:
		return "work"
	case RoleBack:
		return "back"
	case RoleFront:
		return "front"
	default:
		return "unknown"
	}
}

// BufferAlign is the cache-line alignment required for copy-engine access.
const BufferAlign = 64

// Store owns the three equally-sized pixel buffers and the role table.
//
// The physical buffers are allocated once and never reseated; role
// reassignment only ever exchanges the back and front table entries, so
// the role-to-buffer mapping stays a bijection by construction.
type Store struct {
	alloc hal.Allocator
	size  int

	bufs  [roleCount][]byte
	roles [roleCount]uint8
}

// NewStore allocates three zeroed, aligned buffers of size bytes from the
// bulk pool and assigns the initial roles work=0, back=1, front=2.
//
// On partial failure every buffer obtained so far is released before the
// error is returned.
func NewStore(alloc hal.Allocator, size int) (*Store, error) {
	if size <= 0 {
		return nil, fmt.Errorf("frame store: invalid buffer size %d", size)
	}

	s := &Store{alloc: alloc, size: size}
	for i := range s.bufs {
		buf, err := alloc.Alloc(size, BufferAlign, hal.MemBulk)
		if err != nil {
			for j := 0; j < i; j++ {
				alloc.Free(s.bufs[j])
				s.bufs[j] = nil
			}
			return nil, fmt.Errorf("frame store: buffer %d of 3: %w", i+1, err)
		}
		s.bufs[i] = buf
		s.roles[i] = uint8(i)
	}
	return s, nil
}

// Size returns the byte size of each buffer.
func (s *Store) Size() int { return s.size }

// Buffer returns the physical buffer currently holding the given role.
func (s *Store) Buffer(r Role) []byte {
	if r >= roleCount {
		return nil
	}
	return s.bufs[s.roles[r]]
}

// SwapBackFront exchanges the back and front role entries. No pixel data
// moves; the work role is untouched.
func (s *Store) SwapBackFront() {
	s.roles[RoleBack], s.roles[RoleFront] = s.roles[RoleFront], s.roles[RoleBack]
}

// Release returns all three buffers to the allocator. The store must not
// be used afterwards.
func (s *Store) Release() {
	for i := range s.bufs {
		if s.bufs[i] != nil {
			s.alloc.Free(s.bufs[i])
			s.bufs[i] = nil
		}
	}
}
