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

package watchdog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/retrobridge/govern"
	"github.com/jetsetilly/retrobridge/logger"
)

// Default thresholds.
const (
	DefaultPauseThreshold  = 100 * time.Millisecond
	DefaultResumeThreshold = 40 * time.Millisecond
	DefaultPollInterval    = 10 * time.Millisecond
)

// Emulator is the part of the emulator controlled by the watchdog.
type Emulator interface {
	IsRunning() bool
	IsPaused() bool

	// Pause must not block
	Pause()
	Resume()
}

// Transition is the result of a call to Check().
type Transition int

// List of valid Transition values.
const (
	NoTransition Transition = iota
	Paused
	Resumed
)

func (t Transition) String() string {
	switch t {
	case Paused:
		return "paused"
	case Resumed:
		return "resumed"
	}
	return "none"
}

// Watchdog watches the gap between ticks.
type Watchdog struct {
	emu Emulator
	now func() time.Time

	pauseThreshold  time.Duration
	resumeThreshold time.Duration
	pollInterval    time.Duration

	// unix nanoseconds of the latest tick. zero if there has been no tick
	lastTick atomic.Int64

	// the interval between the two latest ticks
	lastInterval atomic.Int64

	pausedByWatchdog atomic.Bool

	// OnTransition is called from the watchdog goroutine whenever the watchdog
	// pauses or resumes the emulator. it must be set before Start()
	OnTransition func(t Transition, gap time.Duration)

	// Logging controls whether transitions are logged. nil is the same as
	// logger.Allow
	Logging logger.Permission

	// guards start and stop
	crit    sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewWatchdog is the preferred method of initialisation for the Watchdog
// type. The default thresholds and the system clock are used.
func NewWatchdog(emu Emulator) *Watchdog {
	return &Watchdog{
		emu:             emu,
		now:             time.Now,
		pauseThreshold:  DefaultPauseThreshold,
		resumeThreshold: DefaultResumeThreshold,
		pollInterval:    DefaultPollInterval,
	}
}

// SetClock replaces the clock used by Tick() and by the watchdog goroutine.
// It must be called before Start().
func (wd *Watchdog) SetClock(now func() time.Time) {
	wd.now = now
}

// SetThresholds changes the pause and resume thresholds. The resume threshold
// is clamped so that it is never greater than the pause threshold. It must be
// called before Start().
func (wd *Watchdog) SetThresholds(pause time.Duration, resume time.Duration) {
	wd.pauseThreshold = pause
	wd.resumeThreshold = min(resume, pause)
}

// SetPollInterval changes how often the watchdog goroutine checks the gap. It
// must be called before Start().
func (wd *Watchdog) SetPollInterval(interval time.Duration) {
	if interval > 0 {
		wd.pollInterval = interval
	}
}

// Tick records that the run entry point has been called.
func (wd *Watchdog) Tick() {
	now := wd.now().UnixNano()
	if last := wd.lastTick.Swap(now); last != 0 {
		wd.lastInterval.Store(now - last)
	}
}

// Gap returns the gap used to decide whether to pause or resume.
func (wd *Watchdog) Gap(now time.Time) (time.Duration, bool) {
	last := wd.lastTick.Load()
	if last == 0 {
		return 0, false
	}
	since := time.Duration(now.UnixNano() - last)
	return max(since, time.Duration(wd.lastInterval.Load())), true
}

// Check the gap at the time given and pause or resume the emulator if
// necessary. It is called by the watchdog goroutine but is safe to call
// directly.
func (wd *Watchdog) Check(now time.Time) Transition {
	gap, ok := wd.Gap(now)
	if !ok {
		return NoTransition
	}

	if gap > wd.pauseThreshold {
		if !wd.pausedByWatchdog.Load() && wd.emu.IsRunning() {
			wd.emu.Pause()
			wd.pausedByWatchdog.Store(true)
			logger.Logf(wd.logging(), "watchdog", "pausing emulator (gap=%v)", gap)
			wd.notify(Paused, gap)
			return Paused
		}
	} else if gap < wd.resumeThreshold {
		if wd.pausedByWatchdog.Load() && wd.emu.IsPaused() {
			wd.emu.Resume()
			wd.pausedByWatchdog.Store(false)
			logger.Logf(wd.logging(), "watchdog", "resuming emulator (gap=%v)", gap)
			wd.notify(Resumed, gap)
			return Resumed
		}
	}

	return NoTransition
}

func (wd *Watchdog) logging() logger.Permission {
	if wd.Logging == nil {
		return logger.Allow
	}
	return wd.Logging
}

func (wd *Watchdog) notify(t Transition, gap time.Duration) {
	if wd.OnTransition != nil {
		wd.OnTransition(t, gap)
	}
}

// PausedByWatchdog returns true if the emulator is paused because of the
// watchdog.
func (wd *Watchdog) PausedByWatchdog() bool {
	return wd.pausedByWatchdog.Load()
}

// State returns the lifecycle state as seen by the watchdog.
func (wd *Watchdog) State() govern.State {
	wd.crit.Lock()
	defer wd.crit.Unlock()
	if !wd.running {
		return govern.Idle
	}
	if wd.pausedByWatchdog.Load() {
		return govern.RunningPausedByWatchdog
	}
	return govern.RunningUnpaused
}

// Running returns true if the watchdog goroutine has been started.
func (wd *Watchdog) Running() bool {
	wd.crit.Lock()
	defer wd.crit.Unlock()
	return wd.running
}

// Start the watchdog goroutine. Starting a watchdog that is already running
// has no effect. The time of the call counts as the first tick.
func (wd *Watchdog) Start() {
	wd.crit.Lock()
	defer wd.crit.Unlock()

	if wd.running {
		return
	}

	wd.pausedByWatchdog.Store(false)
	wd.lastInterval.Store(0)
	wd.lastTick.Store(wd.now().UnixNano())

	wd.stop = make(chan struct{})
	wd.done = make(chan struct{})
	wd.running = true

	go wd.loop(wd.stop, wd.done)
}

func (wd *Watchdog) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(wd.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			wd.Check(wd.now())
		}
	}
}

// Stop the watchdog goroutine and wait for it to end. Stopping a watchdog that
// is not running has no effect. The watchdog does not resume an emulator that
// it has paused.
func (wd *Watchdog) Stop() {
	wd.crit.Lock()
	defer wd.crit.Unlock()

	if !wd.running {
		return
	}

	close(wd.stop)
	<-wd.done
	wd.running = false

	wd.pausedByWatchdog.Store(false)
	wd.lastTick.Store(0)
	wd.lastInterval.Store(0)
}
