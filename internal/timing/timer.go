// Package timing provides a small stopwatch used to log how long index
// loading takes at startup, grounded on the source
// system's utils::Timer but backed by zerolog instead of println!.
package timing

import (
	"time"

	"github.com/rs/zerolog"
)

// Timer measures elapsed time since its last reset and logs it.
type Timer struct {
	start time.Time
	log   zerolog.Logger
}

// New starts a timer that logs through log.
func New(log zerolog.Logger) *Timer {
	return &Timer{start: time.Now(), log: log}
}

// Reset restarts the clock without logging.
func (t *Timer) Reset() {
	t.start = time.Now()
}

// Print logs msg along with the elapsed time since the last New/Reset/
// Print call, then resets the clock.
func (t *Timer) Print(msg string) {
	elapsed := time.Since(t.start)
	t.log.Info().Dur("elapsed", elapsed).Msg(msg)
	t.Reset()
}
