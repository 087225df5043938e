package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"triplex/frame"
	"triplex/hal"
	"triplex/ui"
)

// Config selects the display geometry.
type Config struct {
	Width  int
	Height int
}

func (c *Config) applyDefaults() {
	if c.Width <= 0 {
		c.Width = 720
	}
	if c.Height <= 0 {
		c.Height = 720
	}
}

// New starts the pipeline with default config.
func New(h hal.HAL) (step func() error, stop func()) {
	return NewWithConfig(h, Config{})
}

// NewWithConfig brings the pipeline up and starts the render task. The
// returned step reports the first fatal error (nil while healthy); stop
// shuts the pipeline down and releases the buffers.
//
// Bring-up failures are fatal: nothing is presented and step returns the
// error on every call.
func NewWithConfig(h hal.HAL, cfg Config) (step func() error, stop func()) {
	sys, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("triplex: boot failed: " + err.Error())
		}
		return func() error { return err }, func() {}
	}
	return sys.step, sys.stop
}

// Run starts the pipeline and blocks forever (TinyGo entrypoint). The
// bare-metal target drives a 240x240 LCD.
func Run(h hal.HAL) {
	step, _ := NewWithConfig(h, Config{Width: 240, Height: 240})
	for {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("triplex: stopped: " + err.Error())
			}
			select {}
		}
		time.Sleep(time.Second)
	}
}

type system struct {
	cancel context.CancelFunc
	errc   chan error
	done   chan struct{}

	alloc   hal.Allocator
	engine  hal.CopyEngine
	store   *frame.Store
	scratch []byte

	stopOnce sync.Once
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	cfg.applyDefaults()
	log := h.Logger()
	alloc := h.Allocator()

	size := cfg.Width * cfg.Height * 2
	store, err := frame.NewStore(alloc, size)
	if err != nil {
		return nil, err
	}

	panel := h.Panel()
	if err := panel.Init(timingFor(cfg)); err != nil {
		store.Release()
		return nil, fmt.Errorf("panel init: %w", err)
	}

	// Show the zeroed front buffer before any rendering starts.
	if err := panel.Present(0, 0, cfg.Width, cfg.Height, store.Buffer(frame.RoleFront)); err != nil {
		store.Release()
		return nil, fmt.Errorf("first present: %w", err)
	}

	scratch, err := alloc.Alloc(cfg.Width*ui.ScratchLines*2, 4, hal.MemFast)
	if err != nil {
		store.Release()
		return nil, fmt.Errorf("render scratch: %w", err)
	}

	stats := frame.NewStats()
	engine := h.CopyEngine()
	pres := frame.NewPresenter(store, panel, cfg.Width, cfg.Height)
	comp := frame.NewCompositor(store, engine, pres, log, stats, cfg.Width, cfg.Height)

	scene := ui.NewDialScene(cfg.Width, cfg.Height, statusLine(stats))
	rend := ui.NewRenderer(cfg.Width, cfg.Height, scratch, scene)
	rend.SetFlush(func(x, y, w, hh int, pix []byte, last bool) {
		if err := comp.WriteTile(x, y, w, hh, pix, last); err != nil && log != nil {
			log.WriteLineString("triplex: flush rejected: " + err.Error())
		}
		rend.Ready()
	})

	sched := frame.NewScheduler(rend, log, stats)

	ctx, cancel := context.WithCancel(context.Background())
	sys := &system{
		cancel:  cancel,
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		alloc:   alloc,
		engine:  engine,
		store:   store,
		scratch: scratch,
	}

	go func() {
		defer close(sys.done)
		sys.errc <- runGuarded(ctx, sched, log)
	}()

	if log != nil {
		log.WriteLineString(fmt.Sprintf("triplex: display %dx%d RGB565, 3 buffers x %d KB",
			cfg.Width, cfg.Height, size/1024))
	}
	return sys, nil
}

func (s *system) step() error {
	select {
	case err := <-s.errc:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-s.done:
		return nil
	default:
		return nil
	}
}

func (s *system) stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done
		_ = s.engine.Close()
		s.alloc.Free(s.scratch)
		s.store.Release()
	})
}

func statusLine(stats *frame.Stats) func() string {
	var lastFrames uint64
	last := time.Now()
	return func() string {
		_, frames := stats.Snapshot()
		now := time.Now()
		elapsed := now.Sub(last)
		if elapsed <= 0 {
			return ""
		}
		fps := float64(frames-lastFrames) / elapsed.Seconds()
		lastFrames = frames
		last = now
		return fmt.Sprintf("%.0f fps", fps)
	}
}

// timingFor fills in the scan-out timing of the reference 24 MHz parallel
// RGB panel; SPI targets only look at the resolution.
func timingFor(cfg Config) hal.TimingConfig {
	return hal.TimingConfig{
		Width:           cfg.Width,
		Height:          cfg.Height,
		PixelHz:         24_000_000,
		HSyncBackPorch:  20,
		HSyncFrontPorch: 40,
		HSyncPulseWidth: 2,
		VSyncBackPorch:  8,
		VSyncFrontPorch: 20,
		VSyncPulseWidth: 2,
	}
}
