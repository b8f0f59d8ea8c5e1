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

package fence

import (
	"sync/atomic"
	"time"

	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
)

// DefaultTimeout is the amount of time the consumer will wait for a fence to
// be signaled. It is a small fraction of a 60Hz frame.
const DefaultTimeout = 4 * time.Millisecond

// Result of a call to WaitAndClear().
type Result int

// List of valid Result values.
const (
	// there was no fence in the slot
	NoFence Result = iota

	// the fence was signaled within the timeout
	Signaled

	// the fence was not signaled within the timeout
	TimedOut

	// the platform reported an error while waiting
	Failed

	// the platform does not support fences
	Disabled
)

func (r Result) String() string {
	switch r {
	case NoFence:
		return "no fence"
	case Signaled:
		return "signaled"
	case TimedOut:
		return "timed out"
	case Failed:
		return "failed"
	case Disabled:
		return "disabled"
	}
	return "unknown"
}

// a fence with the sequence number it was installed with
type pending struct {
	sync gpu.Sync
	seq  uint64
}

// Stats is a snapshot of the tracker's counters.
type Stats struct {
	Installed  uint64
	Superseded uint64
	Signaled   uint64
	TimedOut   uint64
	Failed     uint64
}

// Tracker is the single fence slot shared by the producer and the consumer.
type Tracker struct {
	gl      gpu.GL
	enabled bool

	slot atomic.Pointer[pending]
	seq  atomic.Uint64

	// nanoseconds
	timeout atomic.Int64

	superseded atomic.Uint64
	signaled   atomic.Uint64
	timedOut   atomic.Uint64
	failed     atomic.Uint64
}

// NewTracker is the preferred method of initialisation for the Tracker type.
// Support for fence objects is checked once, here.
func NewTracker(gl gpu.GL) *Tracker {
	t := &Tracker{
		gl:      gl,
		enabled: gl != nil && gl.SupportsSync(),
	}
	t.timeout.Store(int64(DefaultTimeout))
	if !t.enabled {
		logger.Log(logger.Allow, "fence", "fence objects not available: fencing disabled")
	}
	return t
}

// Enabled returns false if the platform does not support fence objects.
func (t *Tracker) Enabled() bool {
	return t.enabled
}

// SetTimeout changes the wait timeout. Values of zero or less are ignored.
func (t *Tracker) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	t.timeout.Store(int64(timeout))
}

// Timeout returns the current wait timeout.
func (t *Tracker) Timeout() time.Duration {
	return time.Duration(t.timeout.Load())
}

// Install a new fence in the slot. If a fence was already in the slot then
// it is deleted and returned. The returned fence must not be used for
// anything other than identification. Called by the producer only.
func (t *Tracker) Install(s gpu.Sync) gpu.Sync {
	if !t.enabled || s == 0 {
		return 0
	}

	n := &pending{sync: s, seq: t.seq.Add(1)}
	old := t.slot.Swap(n)
	if old == nil {
		return 0
	}

	t.gl.DeleteSync(old.sync)
	t.superseded.Add(1)
	return old.sync
}

// Submit creates a fence for all commands issued so far on the current
// context, flushes the command queue and installs the fence. Returns the new
// fence. Called by the producer only.
func (t *Tracker) Submit() gpu.Sync {
	if !t.enabled {
		return 0
	}
	s := t.gl.FenceSync()
	t.gl.Flush()
	t.Install(s)
	return s
}

// WaitAndClear takes the fence out of the slot and waits for it to be
// signaled, up to the timeout. The fence is deleted whatever the outcome.
// Called by the consumer only.
func (t *Tracker) WaitAndClear() Result {
	if !t.enabled {
		return Disabled
	}

	p := t.slot.Swap(nil)
	if p == nil {
		return NoFence
	}
	defer t.gl.DeleteSync(p.sync)

	r := t.gl.ClientWaitSync(p.sync, t.Timeout())
	switch {
	case r.Signaled():
		t.signaled.Add(1)
		return Signaled
	case r == gpu.TimeoutExpired:
		t.timedOut.Add(1)
		logger.Logf(logger.Allow, "fence", "wait for fence %d timed out after %v", p.seq, t.Timeout())
		return TimedOut
	}

	t.failed.Add(1)
	logger.Logf(logger.Allow, "fence", "wait for fence %d failed", p.seq)
	return Failed
}

// Discard deletes any fence still in the slot. Used when the session ends.
func (t *Tracker) Discard() {
	if !t.enabled {
		return
	}
	if p := t.slot.Swap(nil); p != nil {
		t.gl.DeleteSync(p.sync)
	}
}

// Stats returns the counters of the tracker.
func (t *Tracker) Stats() Stats {
	return Stats{
		Installed:  t.seq.Load(),
		Superseded: t.superseded.Load(),
		Signaled:   t.signaled.Load(),
		TimedOut:   t.timedOut.Load(),
		Failed:     t.failed.Load(),
	}
}
