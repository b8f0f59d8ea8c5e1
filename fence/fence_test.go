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

package fence_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/gpu/fakegl"
	"github.com/jetsetilly/retrobridge/test"
)

func TestNewestFenceWins(t *testing.T) {
	gl := fakegl.New()
	trk := fence.NewTracker(gl)
	test.DemandSuccess(t, trk.Enabled())

	f1 := gl.FenceSync()
	test.ExpectEquality(t, trk.Install(f1), gpu.Sync(0))
	test.ExpectEquality(t, trk.WaitAndClear(), fence.Signaled)
	test.ExpectEquality(t, gl.Waited()[0], f1)
	test.ExpectFailure(t, gl.IsSync(f1))

	// slot is now empty
	test.ExpectEquality(t, trk.WaitAndClear(), fence.NoFence)

	f2 := gl.FenceSync()
	f3 := gl.FenceSync()
	trk.Install(f2)
	test.ExpectEquality(t, trk.Install(f3), f2)

	// f2 was deleted by the second install. only f3 remains
	test.ExpectFailure(t, gl.IsSync(f2))
	test.ExpectSuccess(t, gl.IsSync(f3))
	test.ExpectEquality(t, len(gl.LiveSyncs()), 1)

	test.ExpectEquality(t, trk.WaitAndClear(), fence.Signaled)
	w := gl.Waited()
	test.ExpectEquality(t, w[len(w)-1], f3)
	test.ExpectEquality(t, len(gl.LiveSyncs()), 0)

	st := trk.Stats()
	test.ExpectEquality(t, st.Installed, uint64(3))
	test.ExpectEquality(t, st.Superseded, uint64(1))
	test.ExpectEquality(t, st.Signaled, uint64(2))
}

func TestTimeoutDeletesFence(t *testing.T) {
	gl := fakegl.New()
	gl.SetWaitResult(gpu.TimeoutExpired)
	trk := fence.NewTracker(gl)
	trk.SetTimeout(time.Millisecond)

	s := trk.Submit()
	test.ExpectEquality(t, trk.WaitAndClear(), fence.TimedOut)
	test.ExpectFailure(t, gl.IsSync(s))
	test.ExpectEquality(t, trk.Stats().TimedOut, uint64(1))

	// the timeout is passed to the wait
	calls := gl.Calls()
	test.ExpectEquality(t, calls[len(calls)-2], "ClientWaitSync 1 1ms")

	gl.SetWaitResult(gpu.WaitFailed)
	s = trk.Submit()
	test.ExpectEquality(t, trk.WaitAndClear(), fence.Failed)
	test.ExpectFailure(t, gl.IsSync(s))
}

func TestSubmitFlushes(t *testing.T) {
	gl := fakegl.New()
	trk := fence.NewTracker(gl)
	trk.Submit()
	test.ExpectEquality(t, gl.Calls()[0], "FenceSync 1")
	test.ExpectEquality(t, gl.Calls()[1], "Flush")
}

func TestTimeout(t *testing.T) {
	trk := fence.NewTracker(fakegl.New())
	test.ExpectEquality(t, trk.Timeout(), fence.DefaultTimeout)
	trk.SetTimeout(8 * time.Millisecond)
	test.ExpectEquality(t, trk.Timeout(), 8*time.Millisecond)
	trk.SetTimeout(0)
	test.ExpectEquality(t, trk.Timeout(), 8*time.Millisecond)
}

func TestDisabled(t *testing.T) {
	gl := fakegl.NewWithoutSync()
	trk := fence.NewTracker(gl)
	test.ExpectFailure(t, trk.Enabled())

	// none of these should call the sync functions of the GL
	test.ExpectEquality(t, trk.Submit(), gpu.Sync(0))
	test.ExpectEquality(t, trk.WaitAndClear(), fence.Disabled)
	trk.Discard()
	test.ExpectEquality(t, len(gl.Calls()), 0)
}

func TestDiscard(t *testing.T) {
	gl := fakegl.New()
	trk := fence.NewTracker(gl)
	trk.Submit()
	trk.Discard()
	test.ExpectEquality(t, len(gl.LiveSyncs()), 0)
	test.ExpectEquality(t, trk.WaitAndClear(), fence.NoFence)
}

// the consumer must never wait on a fence older than the newest fence
// installed before the wait began
func TestConcurrentInstall(t *testing.T) {
	gl := fakegl.New()
	trk := fence.NewTracker(gl)

	const frames = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range frames {
			trk.Submit()
		}
	}()

	var last gpu.Sync
	for range frames {
		trk.WaitAndClear()
		w := gl.Waited()
		if len(w) > 0 {
			test.ExpectSuccess(t, w[len(w)-1] >= last)
			last = w[len(w)-1]
		}
	}
	wg.Wait()
	trk.WaitAndClear()

	// every fence has been deleted
	test.ExpectEquality(t, len(gl.LiveSyncs()), 0)
}
