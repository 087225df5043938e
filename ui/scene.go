package ui

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DialScene is the demo content: a dial with a rotating pointer, a title,
// and a status line fed from outside (typically the throughput counter).
type DialScene struct {
	w, h   int
	cx, cy int
	radius int

	angleDeg int
	step     int

	status     func() string
	statusText string
	statusAge  int

	font tinyfont.Fonter
}

// NewDialScene builds the demo scene for a w x h display. status may be
// nil; when set it is sampled about once a second for the overlay line.
func NewDialScene(w, h int, status func() string) *DialScene {
	r := minInt(w, h) * 2 / 5
	return &DialScene{
		w:      w,
		h:      h,
		cx:     w / 2,
		cy:     h / 2,
		radius: r,
		step:   3,
		status: status,
		font:   &proggy.TinySZ8pt7b,
	}
}

// dialBox is the square covering every pointer position.
func (s *DialScene) dialBox() Region {
	r := s.radius + 2
	return Region{X: s.cx - r, Y: s.cy - r, W: 2*r + 1, H: 2*r + 1}
}

func (s *DialScene) statusBar() Region {
	return Region{X: 0, Y: 0, W: s.w, H: 24}
}

func (s *DialScene) Advance() (Region, int) {
	s.angleDeg = (s.angleDeg + s.step) % 360

	dirty := s.dialBox()

	s.statusAge++
	if s.statusAge >= 60 || s.statusText == "" {
		s.statusAge = 0
		if s.status != nil {
			s.statusText = s.status()
		}
		dirty = dirty.union(s.statusBar())
	}

	return dirty, 5
}

func (s *DialScene) Draw(cv *Canvas) {
	cv.Fill(color.RGBA{A: 0xFF})

	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	gray := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	accent := color.RGBA{R: 0x4A, G: 0xD1, B: 0xFF, A: 0xFF}

	tinyfont.WriteLine(cv, s.font, 4, 12, "triplex", white)
	if s.statusText != "" {
		tinyfont.WriteLine(cv, s.font, 4, 22, s.statusText, gray)
	}

	s.drawDial(cv, gray)
	s.drawPointer(cv, accent)
}

func (s *DialScene) drawDial(cv *Canvas, col color.RGBA) {
	p := rgb565From888(col.R, col.G, col.B)
	x := s.radius
	y := 0
	err := 0
	for x >= y {
		cv.setRGB565(s.cx+x, s.cy+y, p)
		cv.setRGB565(s.cx+y, s.cy+x, p)
		cv.setRGB565(s.cx-x, s.cy+y, p)
		cv.setRGB565(s.cx-y, s.cy+x, p)
		cv.setRGB565(s.cx-x, s.cy-y, p)
		cv.setRGB565(s.cx-y, s.cy-x, p)
		cv.setRGB565(s.cx+x, s.cy-y, p)
		cv.setRGB565(s.cx+y, s.cy-x, p)
		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func (s *DialScene) drawPointer(cv *Canvas, col color.RGBA) {
	a := float64(s.angleDeg) * math.Pi / 180
	tipX := s.cx + int(math.Cos(a)*float64(s.radius-4))
	tipY := s.cy + int(math.Sin(a)*float64(s.radius-4))

	// Three parallel lines make the pointer readable at small sizes.
	cv.Line(s.cx, s.cy, tipX, tipY, col)
	cv.Line(s.cx+1, s.cy, tipX, tipY, col)
	cv.Line(s.cx, s.cy+1, tipX, tipY, col)
}
