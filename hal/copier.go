package hal

import (
	"errors"
	"sync"
	"sync/atomic"
)

var errShortCopyDst = errors.New("copy destination shorter than source")

type copyJob struct {
	dst  []byte
	src  []byte
	done func()
}

// asyncCopier runs bulk copies on a dedicated worker goroutine, standing in
// for a DMA engine. The worker goroutine is the completion context: done
// callbacks fire there, never on the submitting goroutine.
type asyncCopier struct {
	jobs   chan copyJob
	busy   atomic.Bool
	closed atomic.Bool

	closeOnce sync.Once
	drained   chan struct{}
}

// NewCopyEngine returns a CopyEngine backed by a single worker goroutine.
// At most one copy is in flight at a time; a second Submit during a copy
// fails with ErrCopyBusy. Submit must not be called concurrently with
// Close.
func NewCopyEngine() CopyEngine {
	c := &asyncCopier{
		jobs:    make(chan copyJob, 1),
		drained: make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *asyncCopier) run() {
	defer close(c.drained)
	for job := range c.jobs {
		copy(job.dst, job.src)
		// Release the engine before signaling so the completion handler
		// may immediately submit the next copy.
		c.busy.Store(false)
		if job.done != nil {
			job.done()
		}
	}
}

func (c *asyncCopier) Submit(dst, src []byte, done func()) error {
	if len(dst) < len(src) {
		return errShortCopyDst
	}
	if c.closed.Load() {
		return ErrCopyBusy
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ErrCopyBusy
	}

	// The busy guard keeps the capacity-1 queue free, so this never blocks.
	c.jobs <- copyJob{dst: dst, src: src, done: done}
	return nil
}

func (c *asyncCopier) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.jobs)
	})
	<-c.drained
	return nil
}
