//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/st7789"
)

// spiPanel drives a 240x240 ST7789 over SPI1. It has no address register;
// Present blits the advertised buffer through the driver, swapping to the
// big-endian pixel order the LCD expects in small chunks.
type spiPanel struct {
	dev    st7789.Device
	width  int
	height int
	txBuf  []byte
}

func newSPIPanel() (*spiPanel, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 62_500_000,
	})

	dev := st7789.New(machine.SPI1,
		machine.GP15, // reset
		machine.GP14, // dc
		machine.GP13, // cs
		machine.GP9)  // backlight

	return &spiPanel{dev: dev, txBuf: make([]byte, 240*8*2)}, nil
}

func (p *spiPanel) Init(cfg TimingConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("panel: invalid resolution")
	}

	p.width = cfg.Width
	p.height = cfg.Height
	p.dev.Configure(st7789.Config{
		Width:    int16(cfg.Width),
		Height:   int16(cfg.Height),
		Rotation: st7789.NO_ROTATION,
	})
	p.dev.EnableBacklight(true)
	return nil
}

func (p *spiPanel) Present(x, y, w, h int, buf []byte) error {
	if w <= 0 || h <= 0 || len(buf) < w*h*2 {
		return errors.New("panel: invalid buffer")
	}

	// Push a few rows at a time: the framebuffer is little-endian RGB565,
	// the LCD wants big-endian, and a full-frame swap buffer would not fit.
	rowBytes := w * 2
	rowsPerChunk := len(p.txBuf) / rowBytes
	if rowsPerChunk < 1 {
		return errors.New("panel: tx buffer too small")
	}

	for row := 0; row < h; row += rowsPerChunk {
		n := rowsPerChunk
		if row+n > h {
			n = h - row
		}
		src := buf[row*rowBytes : (row+n)*rowBytes]
		chunk := p.txBuf[:len(src)]
		for i := 0; i < len(src); i += 2 {
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		if err := p.dev.DrawRGBBitmap8(int16(x), int16(y+row), chunk, int16(w), int16(n)); err != nil {
			return err
		}
	}
	return nil
}
