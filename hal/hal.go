package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrOutOfMemory is returned by Allocator when a pool cannot satisfy a request.
var ErrOutOfMemory = errors.New("out of memory")

// ErrCopyBusy is returned by CopyEngine.Submit while a copy is still in flight.
var ErrCopyBusy = errors.New("copy engine busy")

// MemClass selects which memory pool an allocation comes from.
type MemClass uint8

const (
	// MemBulk is the large, slow pool (frame buffers live here).
	MemBulk MemClass = iota + 1
	// MemFast is the small, fast pool (render scratch strips live here).
	MemFast
)

// Allocator hands out zero-initialized, aligned regions from fixed pools.
type Allocator interface {
	Alloc(size, align int, class MemClass) ([]byte, error)
	Free(buf []byte)
}

// CopyEngine performs asynchronous bulk copies.
//
// Submit must not block. On success the engine invokes done exactly once,
// from its own completion context; done may only post to a non-blocking
// primitive and must not allocate, log, or touch shared frame state.
// A Submit error means no copy was started and done will never fire.
type CopyEngine interface {
	Submit(dst, src []byte, done func()) error
	Close() error
}

// TimingConfig carries the scan-out timing of a panel.
//
// SPI panels only honor Width/Height; the porch values exist for
// parallel RGB targets that clock pixels themselves.
type TimingConfig struct {
	Width  int
	Height int

	PixelHz         int
	HSyncBackPorch  int
	HSyncFrontPorch int
	HSyncPulseWidth int
	VSyncBackPorch  int
	VSyncFrontPorch int
	VSyncPulseWidth int
}

// Panel is the display peripheral.
//
// Present advertises buf as the new scan-out source. It returns once the
// address is committed; the panel picks the buffer up at its own vertical
// sync and keeps reading it continuously until the next Present.
type Panel interface {
	Init(cfg TimingConfig) error
	Present(x, y, w, h int, buf []byte) error
}

// HAL provides the only contact point between the pipeline and the outside world.
type HAL interface {
	Logger() Logger
	Allocator() Allocator
	CopyEngine() CopyEngine
	Panel() Panel
}
