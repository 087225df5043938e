package ui

// FlushFunc receives one rendered strip. pix holds w*h RGB565 pixels for
// the rectangle at (x,y); last marks the final strip of a frame. The
// consumer must call Renderer.Ready once the pixels have been copied out,
// before the next strip can reuse the scratch buffer.
type FlushFunc func(x, y, w, h int, pix []byte, last bool)

// ScratchLines is the height of the render scratch buffer in scanlines.
// A handful of rows keeps the buffer small enough for the fast pool while
// amortizing per-flush overhead.
const ScratchLines = 40

// Scene produces the pixels. Advance moves time forward and reports which
// region needs repainting plus a suggested delay in milliseconds; Draw
// paints the scene into a clipped strip canvas.
type Scene interface {
	Advance() (dirty Region, delayMs int)
	Draw(cv *Canvas)
}

// Renderer splits each frame's dirty region into scratch-sized strips and
// flushes them in order, marking the final strip so the consumer knows
// the frame is complete.
type Renderer struct {
	width  int
	height int

	scratch []byte
	flush   FlushFunc
	ready   bool

	scene Scene
	first bool

	dropped uint64
}

// NewRenderer builds a renderer for a width x height RGB565 display.
// scratch must hold at least width*ScratchLines RGB565 pixels; it is
// typically allocated from the fast pool.
func NewRenderer(width, height int, scratch []byte, scene Scene) *Renderer {
	return &Renderer{
		width:   width,
		height:  height,
		scratch: scratch,
		scene:   scene,
		first:   true,
	}
}

// SetFlush registers the strip consumer.
func (r *Renderer) SetFlush(fn FlushFunc) {
	r.flush = fn
	r.ready = true
}

// Ready acknowledges the most recent flush; the scratch buffer may be
// reused afterwards.
func (r *Renderer) Ready() {
	r.ready = true
}

// Dropped reports how many frames were abandoned because a flush was
// never acknowledged.
func (r *Renderer) Dropped() uint64 { return r.dropped }

// Tick advances the scene one step and flushes the dirty region. It
// returns the scene's suggested delay until the next tick.
func (r *Renderer) Tick() int {
	if r.flush == nil || r.scene == nil {
		return 10
	}

	dirty, delay := r.scene.Advance()
	if r.first {
		// Everything is stale on the first frame.
		dirty = Region{X: 0, Y: 0, W: r.width, H: r.height}
		r.first = false
	}
	dirty = dirty.intersect(Region{X: 0, Y: 0, W: r.width, H: r.height})
	if dirty.Empty() {
		return delay
	}

	rowsPerStrip := len(r.scratch) / (dirty.W * 2)
	if rowsPerStrip < 1 {
		return delay
	}

	for row := 0; row < dirty.H; row += rowsPerStrip {
		n := rowsPerStrip
		if row+n > dirty.H {
			n = dirty.H - row
		}
		strip := Region{X: dirty.X, Y: dirty.Y + row, W: dirty.W, H: n}

		if !r.ready {
			// The consumer still owns the scratch buffer; abandon the
			// rest of this frame rather than overwrite it.
			r.dropped++
			return delay
		}

		cv := newCanvas(r.scratch[:strip.W*strip.H*2], strip, r.width, r.height)
		r.scene.Draw(cv)

		r.ready = false
		r.flush(strip.X, strip.Y, strip.W, strip.H, cv.pix, row+n >= dirty.H)
	}
	return delay
}
