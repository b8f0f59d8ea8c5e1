// This file is part of Retrobridge.
//
// Retrobridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retrobridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retrobridge.  If not, see <https://www.gnu.org/licenses/>.

// Package limiter paces a render loop to a number of frames per second.
package limiter

import (
	"sync"
	"sync/atomic"
	"time"
)

// Display is the display the limiter is pacing frames for.
type Display interface {
	// DisplayRate returns the refresh rate of the display in Hz
	DisplayRate() float64
}

// Off disables the limiter when passed to SetLimit().
const Off float32 = 0.0

// MatchRefreshRate sets the limit to the refresh rate of the display when
// passed to SetLimit().
const MatchRefreshRate float32 = -1.0

// the refresh rate to use if there is no display
const defaultRefreshRate = 60.0

// Limiter waits on a ticker at the end of each frame. The ticker is only
// consulted every few frames so that short stalls can be caught up on.
type Limiter struct {
	crit sync.Mutex

	// whether to wait each frame
	active atomic.Bool

	// the ideal number of frames per second. zero if the limiter is off
	ideal atomic.Value // float32

	// the value passed to SetLimit()
	requested float32

	pulse        *time.Ticker
	pulseCt      int
	pulseCtLimit int

	// the measured number of frames per second is the number of frames since
	// the previous measurement divided by the amount of time elapsed
	measuringPulse *time.Ticker
	measureTime    time.Time
	measureCt      int
	measured       atomic.Value // float32

	// nudge the limiter so that it doesn't wait for the specified number of
	// frames
	Nudge atomic.Int32

	display Display
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The limit will match the refresh rate of the display.
func NewLimiter(display Display) *Limiter {
	lmtr := &Limiter{
		display:        display,
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Second),
	}
	lmtr.ideal.Store(float32(0))
	lmtr.measured.Store(float32(0))
	lmtr.SetLimit(MatchRefreshRate)
	return lmtr
}

// Stop the limiter's tickers. The limiter should not be used after this.
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}

func (lmtr *Limiter) refreshRate() float32 {
	if lmtr.display == nil {
		return defaultRefreshRate
	}
	hz := float32(lmtr.display.DisplayRate())
	if hz <= 0 {
		return defaultRefreshRate
	}
	return hz
}

// SetLimit sets the number of frames per second. Use MatchRefreshRate for
// the display's refresh rate or Off to disable the limiter.
func (lmtr *Limiter) SetLimit(fps float32) {
	lmtr.crit.Lock()
	defer lmtr.crit.Unlock()

	lmtr.requested = fps

	if fps == Off {
		lmtr.active.Store(false)
		lmtr.ideal.Store(float32(0))
		return
	}

	if fps < 0 {
		fps = lmtr.refreshRate()
	}

	// quantise to the refresh rate of the display
	hz := lmtr.refreshRate()
	if fps >= hz*0.96 && fps <= hz*1.04 {
		fps = hz
	}

	lmtr.ideal.Store(fps)
	lmtr.active.Store(true)

	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// Requested returns the value most recently passed to SetLimit().
func (lmtr *Limiter) Requested() float32 {
	lmtr.crit.Lock()
	defer lmtr.crit.Unlock()
	return lmtr.requested
}

// Active returns true if the limiter is waiting each frame.
func (lmtr *Limiter) Active() bool {
	return lmtr.active.Load()
}

// IdealFPS returns the number of frames per second the limiter is aiming
// for. Zero if the limiter is off.
func (lmtr *Limiter) IdealFPS() float32 {
	return lmtr.ideal.Load().(float32)
}

// Measured returns the most recent measurement of frames per second.
func (lmtr *Limiter) Measured() float32 {
	return lmtr.measured.Load().(float32)
}

// CheckFrame should be called every frame. It will block until it is time for
// the next frame.
func (lmtr *Limiter) CheckFrame() {
	lmtr.crit.Lock()
	lmtr.measureCt++

	wait := false
	if nudge := lmtr.Nudge.Load(); nudge > 0 {
		lmtr.Nudge.Store(nudge - 1)
	} else if lmtr.active.Load() {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			wait = true
		}
	}
	pulse := lmtr.pulse
	lmtr.crit.Unlock()

	if wait {
		<-pulse.C
	}
}

// MeasureActual updates the measured frame rate if enough time has passed
// since the previous measurement.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		lmtr.crit.Lock()
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.measured.Store(m)
		lmtr.measureTime = t
		lmtr.measureCt = 0
		lmtr.crit.Unlock()
	default:
	}
}
