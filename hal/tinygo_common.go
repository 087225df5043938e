//go:build tinygo && baremetal

package hal

import "machine"

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// stubPanel swallows presents when no LCD responded at boot, so the
// pipeline can still run for UART-only bring-up.
type stubPanel struct{}

func (stubPanel) Init(cfg TimingConfig) error                 { return nil }
func (stubPanel) Present(x, y, w, h int, buf []byte) error    { return nil }
