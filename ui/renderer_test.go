package ui

import (
	"image/color"
	"testing"
)

type stripRecord struct {
	x, y, w, h int
	last       bool
	pixLen     int
}

// fillScene paints every pixel it is handed and reports a fixed dirty
// region on each tick.
type fillScene struct {
	dirty Region
	col   color.RGBA
}

func (s *fillScene) Advance() (Region, int) { return s.dirty, 5 }
func (s *fillScene) Draw(cv *Canvas)        { cv.Fill(s.col) }

func collectStrips(r *Renderer) *[]stripRecord {
	var strips []stripRecord
	r.SetFlush(func(x, y, w, h int, pix []byte, last bool) {
		strips = append(strips, stripRecord{x, y, w, h, last, len(pix)})
		r.Ready()
	})
	return &strips
}

func TestFirstTickRefreshesFullDisplayInStrips(t *testing.T) {
	const w, h = 100, 90
	scratch := make([]byte, w*ScratchLines*2)
	scene := &fillScene{dirty: Region{X: 40, Y: 40, W: 10, H: 10}}
	r := NewRenderer(w, h, scratch, scene)
	strips := collectStrips(r)

	r.Tick()

	// 90 rows at 40 per strip: 40 + 40 + 10.
	want := []stripRecord{
		{0, 0, w, 40, false, w * 40 * 2},
		{0, 40, w, 40, false, w * 40 * 2},
		{0, 80, w, 10, true, w * 10 * 2},
	}
	if len(*strips) != len(want) {
		t.Fatalf("got %d strips, want %d", len(*strips), len(want))
	}
	for i, s := range *strips {
		if s != want[i] {
			t.Fatalf("strip %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestSecondTickFlushesOnlyDirtyRegion(t *testing.T) {
	const w, h = 100, 90
	scratch := make([]byte, w*ScratchLines*2)
	scene := &fillScene{dirty: Region{X: 20, Y: 30, W: 10, H: 8}}
	r := NewRenderer(w, h, scratch, scene)
	strips := collectStrips(r)

	r.Tick()
	*strips = nil
	r.Tick()

	if len(*strips) != 1 {
		t.Fatalf("got %d strips, want 1", len(*strips))
	}
	got := (*strips)[0]
	want := stripRecord{20, 30, 10, 8, true, 10 * 8 * 2}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDirtyRegionClampedToDisplay(t *testing.T) {
	const w, h = 64, 64
	scratch := make([]byte, w*ScratchLines*2)
	scene := &fillScene{dirty: Region{X: 60, Y: -5, W: 20, H: 20}}
	r := NewRenderer(w, h, scratch, scene)
	strips := collectStrips(r)

	r.Tick() // full refresh
	*strips = nil
	r.Tick()

	if len(*strips) != 1 {
		t.Fatalf("got %d strips, want 1", len(*strips))
	}
	got := (*strips)[0]
	want := stripRecord{60, 0, 4, 15, true, 4 * 15 * 2}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUnacknowledgedFlushDropsFrame(t *testing.T) {
	const w, h = 32, 32
	scratch := make([]byte, w*ScratchLines*2)
	scene := &fillScene{dirty: Region{X: 0, Y: 0, W: w, H: h}}
	r := NewRenderer(w, h, scratch, scene)

	var flushes int
	r.SetFlush(func(x, y, w, h int, pix []byte, last bool) {
		flushes++
		// Never call Ready: the consumer holds the scratch buffer.
	})

	r.Tick()
	r.Tick()
	r.Tick()

	if flushes != 1 {
		t.Fatalf("got %d flushes, want 1", flushes)
	}
	if r.Dropped() != 2 {
		t.Fatalf("got %d dropped frames, want 2", r.Dropped())
	}
}

func TestTickWithoutFlushIsInert(t *testing.T) {
	scene := &fillScene{dirty: Region{X: 0, Y: 0, W: 8, H: 8}}
	r := NewRenderer(8, 8, make([]byte, 8*ScratchLines*2), scene)
	if delay := r.Tick(); delay != 10 {
		t.Fatalf("got delay %d, want 10", delay)
	}
}

func TestCanvasClipsToStrip(t *testing.T) {
	clip := Region{X: 10, Y: 20, W: 4, H: 3}
	pix := make([]byte, clip.W*clip.H*2)
	cv := newCanvas(pix, clip, 64, 64)

	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	cv.SetPixel(10, 20, white) // top-left corner of the strip
	cv.SetPixel(13, 22, white) // bottom-right corner
	cv.SetPixel(9, 20, white)  // left of the strip
	cv.SetPixel(10, 23, white) // below the strip

	if pix[0] == 0 && pix[1] == 0 {
		t.Fatal("corner pixel inside strip not written")
	}
	lastOff := (2*clip.W + 3) * 2
	if pix[lastOff] == 0 && pix[lastOff+1] == 0 {
		t.Fatal("opposite corner inside strip not written")
	}

	// Count written pixels: exactly the two in-clip ones.
	written := 0
	for i := 0; i < len(pix); i += 2 {
		if pix[i] != 0 || pix[i+1] != 0 {
			written++
		}
	}
	if written != 2 {
		t.Fatalf("got %d written pixels, want 2", written)
	}
}

func TestRegionIntersectAndUnion(t *testing.T) {
	a := Region{X: 0, Y: 0, W: 10, H: 10}
	b := Region{X: 5, Y: 5, W: 10, H: 10}

	if got := a.intersect(b); got != (Region{X: 5, Y: 5, W: 5, H: 5}) {
		t.Fatalf("intersect: got %+v", got)
	}
	if got := a.union(b); got != (Region{X: 0, Y: 0, W: 15, H: 15}) {
		t.Fatalf("union: got %+v", got)
	}

	far := Region{X: 20, Y: 20, W: 2, H: 2}
	if got := a.intersect(far); !got.Empty() {
		t.Fatalf("disjoint intersect not empty: %+v", got)
	}
	if got := a.union(Region{}); got != a {
		t.Fatalf("union with empty: got %+v", got)
	}
}

func TestDialSceneDirtyCoversPointer(t *testing.T) {
	s := NewDialScene(240, 240, func() string { return "ok" })

	dirty, delay := s.Advance()
	if delay != 5 {
		t.Fatalf("got delay %d, want 5", delay)
	}
	// First tick samples the status line, so the bar is included.
	if !dirty.contains(0, 0) {
		t.Fatal("first dirty region misses the status bar")
	}
	box := s.dialBox()
	if !dirty.contains(box.X, box.Y) || !dirty.contains(box.X+box.W-1, box.Y+box.H-1) {
		t.Fatal("dirty region does not cover the dial box")
	}

	// Steady-state ticks mark only the dial.
	dirty, _ = s.Advance()
	if dirty.contains(0, 0) {
		t.Fatal("status bar marked dirty outside its refresh interval")
	}

	// Drawing into a strip covering the dial must touch pixels.
	strip := Region{X: box.X, Y: s.cy - 2, W: box.W, H: 4}
	pix := make([]byte, strip.W*strip.H*2)
	cv := newCanvas(pix, strip, 240, 240)
	s.Draw(cv)
	nonzero := false
	for _, b := range pix {
		if b != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Fatal("scene drew nothing into a strip across the dial")
	}
}
