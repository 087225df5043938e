package frame

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"triplex/hal"
)

// Per-frame states. A frame spends most of its life in stateRendering;
// the finalize sequence walks it through the other three and back.
const (
	stateRendering int32 = iota
	stateFinalizing
	stateCopyWait
	stateSwapped
)

// DefaultCopyWait bounds the blocking wait for copy completion. A
// full-buffer copy finishes in single-digit milliseconds, so hitting this
// means the engine malfunctioned; the compositor then falls back to a CPU
// copy instead of hanging the render task.
const DefaultCopyWait = time.Second

var errTileBounds = errors.New("tile outside display bounds")
var errTilePayload = errors.New("tile payload size mismatch")

// Compositor accepts incremental tile writes into the work buffer and,
// on the last tile of a frame, runs the finalize sequence: copy work to
// back, wait for completion, flip, present.
//
// All methods are driven by a single render task; the only other
// execution context involved is the copy engine's completion callback,
// which does nothing but post to a capacity-1 channel.
type Compositor struct {
	store  *Store
	engine hal.CopyEngine
	pres   *Presenter
	log    hal.Logger
	stats  *Stats

	width  int
	height int

	copyDone chan struct{}
	copyWait time.Duration

	state atomic.Int32
}

func NewCompositor(store *Store, engine hal.CopyEngine, pres *Presenter, log hal.Logger, stats *Stats, width, height int) *Compositor {
	return &Compositor{
		store:    store,
		engine:   engine,
		pres:     pres,
		log:      log,
		stats:    stats,
		width:    width,
		height:   height,
		copyDone: make(chan struct{}, 1),
		copyWait: DefaultCopyWait,
	}
}

// WriteTile copies one rectangular update into the work buffer, row by
// row at the display stride. The tile must lie fully inside the display
// and pix must hold exactly w*h RGB565 pixels.
//
// When last is set the frame is finalized before WriteTile returns, so
// the caller cannot start a new frame while the previous one is still
// being copied or flipped.
func (c *Compositor) WriteTile(x, y, w, h int, pix []byte, last bool) error {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > c.width || y+h > c.height {
		return fmt.Errorf("%w: %dx%d at (%d,%d)", errTileBounds, w, h, x, y)
	}
	if len(pix) != w*h*2 {
		return fmt.Errorf("%w: got %d bytes, want %d", errTilePayload, len(pix), w*h*2)
	}

	work := c.store.Buffer(RoleWork)
	stride := c.width * 2
	rowBytes := w * 2
	for r := 0; r < h; r++ {
		dst := (y+r)*stride + x*2
		copy(work[dst:dst+rowBytes], pix[r*rowBytes:(r+1)*rowBytes])
	}
	c.stats.AddTile()

	if last {
		c.finalize()
	}
	return nil
}

// Finalize runs the end-of-frame sequence without writing a tile first.
// Presenting an unchanged frame this way is harmless: the work buffer is
// copied and flipped again, so the front content does not change.
func (c *Compositor) Finalize() {
	c.finalize()
}

func (c *Compositor) finalize() {
	c.state.Store(stateFinalizing)

	dst := c.store.Buffer(RoleBack)
	src := c.store.Buffer(RoleWork)

	// A completion token may be left over from a wait that timed out;
	// drop it so the wait below cannot complete against a stale copy.
	select {
	case <-c.copyDone:
	default:
	}

	if err := c.engine.Submit(dst, src, c.signalCopyDone); err != nil {
		// Engine busy or unavailable. Degrade to a synchronous copy and
		// carry on; the frame is still correct, just slower.
		copy(dst, src)
		if c.log != nil {
			c.log.WriteLineString("frame: copy submit failed, synchronous fallback: " + err.Error())
		}
	} else {
		c.state.Store(stateCopyWait)
		t := time.NewTimer(c.copyWait)
		select {
		case <-c.copyDone:
			t.Stop()
		case <-t.C:
			// The engine went silent. The CPU copy below may overlap a
			// late engine write, but both write identical bytes from the
			// same source, so the destination still converges.
			copy(dst, src)
			if c.log != nil {
				c.log.WriteLineString("frame: copy completion timed out, synchronous fallback")
			}
		}
	}

	c.state.Store(stateSwapped)
	if err := c.pres.Flip(); err != nil {
		if c.log != nil {
			c.log.WriteLineString("frame: present failed: " + err.Error())
		}
	}
	c.stats.AddFrame()
	c.state.Store(stateRendering)
}

// signalCopyDone is the completion handler handed to the copy engine. It
// runs in the engine's context and only posts to a non-blocking channel.
func (c *Compositor) signalCopyDone() {
	select {
	case c.copyDone <- struct{}{}:
	default:
	}
}
