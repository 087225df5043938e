//go:build !tinygo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"triplex/internal/buildinfo"
)

// RunWindow starts a desktop window that scans out the panel shadow buffer.
// It blocks until the window closes or the app step reports an error.
func RunWindow(newApp func(HAL) (step func() error, stop func())) error {
	h := New().(*hostHAL)
	step, stop := newApp(h)
	if stop != nil {
		defer stop()
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("triplex (" + buildinfo.Short() + ")")
	w, ht := h.panel.size()
	if w <= 0 || ht <= 0 {
		w, ht = 720, 720
	}
	ebiten.SetWindowSize(w, ht)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.h.panel.size()
	if w <= 0 || h <= 0 {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, w*h*2)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.h.panel.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.ReplacePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.h.panel.size()
	if w <= 0 || h <= 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}
