package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"triplex/frame"
	"triplex/hal"
)

// runGuarded runs the scheduler and converts a render-task panic into a
// logged error instead of taking the whole process down, so the panel
// keeps showing the last good frame.
func runGuarded(ctx context.Context, s *frame.Scheduler, log hal.Logger) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if log != nil {
			log.WriteLineString(fmt.Sprintf("triplex: render task panic: %v", v))
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line == "" {
					continue
				}
				log.WriteLineString(line)
			}
		}
		err = fmt.Errorf("render task panic: %v", v)
	}()
	return s.Run(ctx)
}
