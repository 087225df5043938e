//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	alloc  Allocator
	engine CopyEngine
	panel  *hostPanel
}

// New returns a host HAL implementation.
func New() HAL {
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		alloc:  NewAllocator(DefaultBulkBytes, DefaultFastBytes),
		engine: NewCopyEngine(),
		panel:  newHostPanel(),
	}
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) Allocator() Allocator   { return h.alloc }
func (h *hostHAL) CopyEngine() CopyEngine { return h.engine }
func (h *hostHAL) Panel() Panel           { return h.panel }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
