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

// Package framesignal implements the frame-ready signal between the render
// thread and the presentation thread.
//
// Two counters are maintained. The produced counter is incremented by the
// render thread once per logical frame. The consumed counter is set to the
// value of the produced counter by the presentation thread after a frame has
// been presented. A new frame is available when consumed is less than
// produced.
//
// HasNewFrame() and MarkConsumed() never touch the mutex. The mutex and
// condition variable exist so that Wait() can sleep instead of spin.
package framesignal

import (
	"sync"
	"sync/atomic"
	"time"
)

// Signal is the frame-ready signal. The zero value is ready to use with a
// flip cadence of one.
type Signal struct {
	produced atomic.Uint64
	consumed atomic.Uint64

	// number of flips per logical frame. zero is treated as one
	cadence atomic.Uint32
	flips   atomic.Uint64

	crit sync.Mutex
	cond *sync.Cond
}

func (sig *Signal) condition() *sync.Cond {
	// called with crit locked
	if sig.cond == nil {
		sig.cond = sync.NewCond(&sig.crit)
	}
	return sig.cond
}

// MarkProduced increments the produced counter and wakes any waiter. Called
// by the render thread once per logical frame.
func (sig *Signal) MarkProduced() {
	sig.produced.Add(1)
	sig.crit.Lock()
	sig.condition().Broadcast()
	sig.crit.Unlock()
}

// SetCadence sets the number of flips that make up one logical frame. Some
// renderers flip their internal buffers more than once per frame. Values
// less than one are treated as one. The flip count is reset only if the
// cadence changes.
func (sig *Signal) SetCadence(flipsPerFrame int) {
	n := uint32(max(1, flipsPerFrame))
	if max(1, sig.cadence.Swap(n)) == n {
		return
	}
	sig.flips.Store(0)
}

// Cadence returns the number of flips per logical frame.
func (sig *Signal) Cadence() int {
	return int(max(1, sig.cadence.Load()))
}

// Flip is called by the render thread on every flip of the renderer's
// buffers. It calls MarkProduced() on the presentation-relevant flip and
// returns true if it did so.
func (sig *Signal) Flip() bool {
	n := sig.flips.Add(1)
	if n%uint64(sig.Cadence()) != 0 {
		return false
	}
	sig.MarkProduced()
	return true
}

// HasNewFrame returns true if a frame has been produced that has not been
// consumed. It does not block.
func (sig *Signal) HasNewFrame() bool {
	// consumed must be loaded first. produced can only increase between the
	// two loads so the result is never a false negative for the frames that
	// existed when the call was made
	c := sig.consumed.Load()
	return c < sig.produced.Load()
}

// MarkConsumed sets the consumed counter to the current value of the
// produced counter. Called by the presentation thread after presenting.
func (sig *Signal) MarkConsumed() {
	sig.consumed.Store(sig.produced.Load())
}

// Counters returns the current value of the produced and consumed counters.
func (sig *Signal) Counters() (produced uint64, consumed uint64) {
	consumed = sig.consumed.Load()
	produced = sig.produced.Load()
	return produced, consumed
}

// Wait blocks until a new frame is available or until the timeout expires.
// A timeout of zero or less waits indefinitely. Returns true if a new frame
// is available.
func (sig *Signal) Wait(timeout time.Duration) bool {
	if sig.HasNewFrame() {
		return true
	}

	sig.crit.Lock()
	defer sig.crit.Unlock()
	cond := sig.condition()

	var expired atomic.Bool
	if timeout > 0 {
		t := time.AfterFunc(timeout, func() {
			expired.Store(true)
			sig.crit.Lock()
			cond.Broadcast()
			sig.crit.Unlock()
		})
		defer t.Stop()
	}

	for !sig.HasNewFrame() {
		if expired.Load() {
			return false
		}
		cond.Wait()
	}

	return true
}
