package frame

import (
	"context"
	"fmt"
	"time"

	"triplex/hal"
)

// TickSource is the rendering library's heartbeat. Each Tick may emit any
// number of tile flushes before returning a suggested delay in
// milliseconds until the next call.
type TickSource interface {
	Tick() int
}

// Delay clamp for the pacing loop: never spin faster than 1 ms, never
// sleep past 10 ms so animations stay smooth.
const (
	minTickDelay = 1 * time.Millisecond
	maxTickDelay = 10 * time.Millisecond
)

const reportPeriod = 5 * time.Second

// Scheduler drives the tick source in a cooperative loop, yielding to the
// runtime between iterations, and logs a throughput line periodically.
type Scheduler struct {
	src   TickSource
	log   hal.Logger
	stats *Stats

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

func NewScheduler(src TickSource, log hal.Logger, stats *Stats) *Scheduler {
	return &Scheduler{
		src:   src,
		log:   log,
		stats: stats,
		sleep: time.Sleep,
	}
}

// Run loops until ctx is canceled. Each iteration ticks the source once,
// then yields for the clamped suggested delay.
func (s *Scheduler) Run(ctx context.Context) error {
	lastReport := time.Now()
	lastTiles, lastFrames := s.stats.Snapshot()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		delay := s.src.Tick()

		if now := time.Now(); now.Sub(lastReport) >= reportPeriod {
			tiles, frames := s.stats.Snapshot()
			s.report(frames-lastFrames, tiles-lastTiles, now.Sub(lastReport))
			lastReport = now
			lastTiles, lastFrames = tiles, frames
		}

		s.sleep(clampDelay(delay))
	}
}

func (s *Scheduler) report(frames, tiles uint64, elapsed time.Duration) {
	if s.log == nil || elapsed <= 0 {
		return
	}
	fps := float64(frames) / elapsed.Seconds()
	s.log.WriteLineString(fmt.Sprintf("frame: %.1f fps (%d frames, %d tiles)", fps, frames, tiles))
}

func clampDelay(ms int) time.Duration {
	d := time.Duration(ms) * time.Millisecond
	if d < minTickDelay {
		return minTickDelay
	}
	if d > maxTickDelay {
		return maxTickDelay
	}
	return d
}
