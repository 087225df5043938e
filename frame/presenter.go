package frame

import "triplex/hal"

// Presenter flips the back/front roles and advertises the new front
// buffer to the panel.
type Presenter struct {
	store  *Store
	panel  hal.Panel
	width  int
	height int
}

func NewPresenter(store *Store, panel hal.Panel, width, height int) *Presenter {
	return &Presenter{store: store, panel: panel, width: width, height: height}
}

// Flip exchanges the back and front roles and presents the new front
// buffer. It must only be called after the copy into the current back
// buffer has completed. The panel commits the address at its own next
// vertical sync; Flip does not wait for that.
func (p *Presenter) Flip() error {
	p.store.SwapBackFront()
	return p.panel.Present(0, 0, p.width, p.height, p.store.Buffer(RoleFront))
}
