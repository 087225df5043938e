package ui

import "image/color"

// Canvas is one scratch strip viewed in display coordinates. Drawing
// outside the strip is clipped, so a scene can paint itself in full every
// time and only the covered rows land in the strip.
//
// Canvas satisfies the Size/SetPixel/Display shape that tinyfont and the
// tinygo driver ecosystem draw through.
type Canvas struct {
	pix   []byte
	clip  Region
	dispW int
	dispH int
}

func newCanvas(pix []byte, clip Region, dispW, dispH int) *Canvas {
	return &Canvas{pix: pix, clip: clip, dispW: dispW, dispH: dispH}
}

// Size reports the full display size, not the strip size, so text layout
// sees the same geometry regardless of which strip is being rendered.
func (c *Canvas) Size() (x, y int16) {
	return int16(c.dispW), int16(c.dispH)
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.setRGB565(int(x), int(y), rgb565From888(col.R, col.G, col.B))
}

func (c *Canvas) Display() error { return nil }

func (c *Canvas) setRGB565(x, y int, p uint16) {
	if !c.clip.contains(x, y) {
		return
	}
	off := ((y-c.clip.Y)*c.clip.W + (x - c.clip.X)) * 2
	if off < 0 || off+1 >= len(c.pix) {
		return
	}
	c.pix[off] = byte(p)
	c.pix[off+1] = byte(p >> 8)
}

// Fill paints the entire strip with one color.
func (c *Canvas) Fill(col color.RGBA) {
	p := rgb565From888(col.R, col.G, col.B)
	lo := byte(p)
	hi := byte(p >> 8)
	n := c.clip.W * c.clip.H * 2
	if n > len(c.pix) {
		n = len(c.pix)
	}
	for i := 0; i+1 < n; i += 2 {
		c.pix[i] = lo
		c.pix[i+1] = hi
	}
}

// FillRect paints a rectangle given in display coordinates.
func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	p := rgb565From888(col.R, col.G, col.B)
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.setRGB565(xx, yy, p)
		}
	}
}

// Line draws a Bresenham line in display coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA) {
	p := rgb565From888(col.R, col.G, col.B)
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setRGB565(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
}
