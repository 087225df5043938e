//go:build tinygo && baremetal

package hal

import "machine"

// Pool budgets for the RP2350 target: frame data must fit in the 520 KB
// of SRAM next to everything else, so the bulk pool is kept tight.
const (
	tinyGoBulkBytes = 384 << 10
	tinyGoFastBytes = 32 << 10
)

type tinyGoHAL struct {
	logger *uartLogger
	alloc  Allocator
	engine CopyEngine
	panel  Panel
}

// New returns a Pico 2 (RP2350) HAL implementation with an ST7789 LCD
// on SPI1.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	var panel Panel
	if p, err := newSPIPanel(); err == nil {
		panel = p
	} else {
		panel = stubPanel{}
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		alloc:  NewAllocator(tinyGoBulkBytes, tinyGoFastBytes),
		engine: NewCopyEngine(),
		panel:  panel,
	}
}

func (h *tinyGoHAL) Logger() Logger         { return h.logger }
func (h *tinyGoHAL) Allocator() Allocator   { return h.alloc }
func (h *tinyGoHAL) CopyEngine() CopyEngine { return h.engine }
func (h *tinyGoHAL) Panel() Panel           { return h.panel }
