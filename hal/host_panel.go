//go:build !tinygo

package hal

import (
	"errors"
	"sync"
)

// hostPanel emulates a continuously-scanning RGB panel. Present copies the
// advertised buffer into a private shadow, which is what the host window
// "scans out". The pipeline never writes a buffer while it holds the front
// role, so the copy here observes a stable frame, as real scan-out would.
type hostPanel struct {
	mu     sync.Mutex
	width  int
	height int
	shadow []byte
	inited bool
}

func newHostPanel() *hostPanel {
	return &hostPanel{}
}

func (p *hostPanel) Init(cfg TimingConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("panel: invalid resolution")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.width = cfg.Width
	p.height = cfg.Height
	p.shadow = make([]byte, cfg.Width*cfg.Height*2)
	p.inited = true
	return nil
}

func (p *hostPanel) Present(x, y, w, h int, buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inited {
		return errors.New("panel: not initialized")
	}
	if x != 0 || y != 0 || w != p.width || h != p.height {
		return errors.New("panel: partial presents unsupported")
	}
	if len(buf) < len(p.shadow) {
		return errors.New("panel: short buffer")
	}

	copy(p.shadow, buf)
	return nil
}

func (p *hostPanel) snapshotRGB565(dst []byte) (w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(dst, p.shadow)
	return p.width, p.height
}

func (p *hostPanel) size() (w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}
