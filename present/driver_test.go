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

package present_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/framebuffer"
	"github.com/jetsetilly/retrobridge/framesignal"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/gpu/fakegl"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/present"
	"github.com/jetsetilly/retrobridge/test"
)

type host struct {
	events  []string
	updated bool
	fbo     uint32
	frames  []bool
	audio   int
	buttons uint16
}

func (h *host) VariablesUpdated() bool {
	h.events = append(h.events, "variables")
	u := h.updated
	h.updated = false
	return u
}

func (h *host) PollInput() {
	h.events = append(h.events, "poll")
}

func (h *host) InputState(port uint, device uint, index uint, id uint) int16 {
	if port == 0 && device == input.DeviceJoypad && id < 16 && h.buttons&(1<<id) != 0 {
		return 1
	}
	return 0
}

func (h *host) AudioBatch(samples []int16, frames int) int {
	h.events = append(h.events, "audio")
	h.audio += frames
	return frames
}

func (h *host) VideoRefresh(valid bool, width uint, height uint, pitch uint) {
	h.events = append(h.events, fmt.Sprintf("video %v %dx%d", valid, width, height))
	h.frames = append(h.frames, valid)
}

func (h *host) CurrentFramebuffer() uint32 {
	return h.fbo
}

type watchdog struct {
	ticks int
}

func (w *watchdog) Tick() {
	w.ticks++
}

type samples struct {
	frames int
}

func (s *samples) GetSamples(dst []int16, maxFrames int) int {
	n := min(s.frames, maxFrames)
	s.frames -= n
	return n
}

type harness struct {
	host   *host
	wd     *watchdog
	gl     *fakegl.GL
	sig    *framesignal.Signal
	fence  *fence.Tracker
	shared *framebuffer.Shared
	drv    *present.Driver
	poller *input.Poller
	pads   *input.PadHandler
	audio  *samples
	opts   int
}

func newHarness(attach bool) *harness {
	h := &harness{
		host:  &host{fbo: 99},
		wd:    &watchdog{},
		gl:    fakegl.New(),
		sig:   &framesignal.Signal{},
		audio: &samples{},
	}
	h.fence = fence.NewTracker(h.gl)
	h.shared = framebuffer.NewShared(h.gl)
	h.poller = input.NewPoller()
	h.pads = input.NewPadHandler(h.poller)

	h.drv = present.NewDriver(present.Config{
		Host:     h.host,
		Signal:   h.sig,
		Watchdog: h.wd,
		Poller:   h.poller,
		Pads:     h.pads,
		Audio:    h.audio,
		ApplyOptions: func() {
			h.opts++
		},
	})

	if attach {
		h.drv.AttachVideo(&present.Video{GL: h.gl, Fence: h.fence, Shared: h.shared})
	}

	return h
}

// simulate the producer rendering and flipping a frame
func (h *harness) produce() {
	h.shared.ProducerTarget()
	h.fence.Submit()
	h.sig.Flip()
}

func TestDupeWithoutFrame(t *testing.T) {
	h := newHarness(true)

	r := h.drv.Tick()
	test.ExpectFailure(t, r.Presented)
	test.ExpectEquality(t, r.Fence, fence.NoFence)
	test.ExpectSuccess(t, r.Video)
	test.DemandEquality(t, len(h.host.frames), 1)
	test.ExpectFailure(t, h.host.frames[0])
	test.ExpectEquality(t, len(h.gl.Blits()), 0)
	test.ExpectEquality(t, h.wd.ticks, 1)
}

func TestPresentNewFrame(t *testing.T) {
	h := newHarness(true)

	h.produce()
	h.gl.ClearCalls()

	r := h.drv.Tick()
	test.ExpectSuccess(t, r.Presented)
	test.ExpectSuccess(t, r.Blitted)
	test.ExpectEquality(t, r.Fence, fence.Signaled)
	test.ExpectEquality(t, h.host.events[len(h.host.events)-1], "video true 1280x720")

	blits := h.gl.Blits()
	test.DemandEquality(t, len(blits), 1)
	test.ExpectEquality(t, blits[0].Dst, uint32(99))
	test.ExpectEquality(t, blits[0].Texture, h.shared.Texture())

	// frame has been consumed so the next tick is a dupe
	produced, consumed := h.sig.Counters()
	test.ExpectEquality(t, produced, consumed)
	r = h.drv.Tick()
	test.ExpectFailure(t, r.Presented)
	test.ExpectEquality(t, h.host.events[len(h.host.events)-1], "video false 1280x720")
}

// the GL work happens in a fixed order on the host's context
func TestGLOrder(t *testing.T) {
	h := newHarness(true)
	h.produce()
	h.gl.ClearCalls()

	// leave the host context in a dirty state
	h.gl.BindFramebuffer(5)
	h.gl.UseProgram(7)

	h.drv.Tick()

	calls := h.gl.Calls()
	bind := slices.Index(calls, "BindFramebuffer 0")
	program := slices.Index(calls, "UseProgram 0")
	wait := slices.IndexFunc(calls, func(s string) bool {
		return len(s) > 14 && s[:14] == "ClientWaitSync"
	})
	blit := slices.IndexFunc(calls, func(s string) bool {
		return len(s) > 15 && s[:15] == "BlitFramebuffer"
	})

	test.ExpectSuccess(t, bind >= 0 && program > bind, calls)
	test.ExpectSuccess(t, wait > program, calls)
	test.ExpectSuccess(t, blit > wait, calls)

	// the fence has been deleted
	test.ExpectEquality(t, len(h.gl.LiveSyncs()), 0)
}

func TestHostOrder(t *testing.T) {
	h := newHarness(true)
	h.host.updated = true
	h.audio.frames = 100
	h.produce()

	r := h.drv.Tick()
	test.ExpectSuccess(t, r.VariablesUpdated)
	test.ExpectEquality(t, h.opts, 1)
	test.ExpectEquality(t, r.AudioFrames, 100)
	test.ExpectEquality(t, r.AudioBatches, 1)
	test.ExpectEquality(t, h.host.audio, 100)

	expected := []string{"variables", "poll", "audio", "video true 1280x720"}
	test.DemandEquality(t, len(h.host.events), len(expected))
	for i := range expected {
		test.ExpectEquality(t, h.host.events[i], expected[i])
	}

	// options are only reapplied when the host says so
	h.drv.Tick()
	test.ExpectEquality(t, h.opts, 1)
}

func TestInputPublished(t *testing.T) {
	h := newHarness(true)
	h.host.buttons = 1 << input.JoypadStart

	test.ExpectFailure(t, h.pads.Pad(0).Pressed(int(input.JoypadStart)))
	h.drv.Tick()
	test.ExpectSuccess(t, h.pads.Pad(0).Pressed(int(input.JoypadStart)))
	test.ExpectEquality(t, h.pads.Pad(0).Pressure[input.JoypadStart], uint8(255))
}

func TestNoVideo(t *testing.T) {
	h := newHarness(false)
	h.produce()

	r := h.drv.Tick()
	test.ExpectFailure(t, r.Video)
	test.ExpectFailure(t, r.Presented)
	test.ExpectEquality(t, len(h.gl.Blits()), 0)
	test.ExpectFailure(t, h.host.frames[0])

	// the frame is presented once video is attached
	h.drv.AttachVideo(&present.Video{GL: h.gl, Fence: h.fence, Shared: h.shared})
	r = h.drv.Tick()
	test.ExpectSuccess(t, r.Presented)

	v := h.drv.DetachVideo()
	test.ExpectInequality(t, v, nil)
	test.ExpectEquality(t, h.drv.Video(), nil)
}

// a fence that times out does not prevent the frame from being presented
func TestFenceTimeout(t *testing.T) {
	h := newHarness(true)
	h.gl.SetWaitResult(gpu.TimeoutExpired)
	h.produce()

	r := h.drv.Tick()
	test.ExpectEquality(t, r.Fence, fence.TimedOut)
	test.ExpectSuccess(t, r.Presented)
	test.ExpectEquality(t, len(h.gl.LiveSyncs()), 0)
}

// a frame signalled before the render target exists is not presented
func TestNoRenderTarget(t *testing.T) {
	h := newHarness(true)
	h.sig.Flip()

	r := h.drv.Tick()
	test.ExpectFailure(t, r.Blitted)
	test.ExpectFailure(t, r.Presented)
	test.ExpectEquality(t, len(h.gl.Blits()), 0)
	test.ExpectEquality(t, h.host.events[len(h.host.events)-1], "video false 1280x720")

	// the frame is still waiting to be presented
	test.ExpectSuccess(t, h.sig.HasNewFrame())
	h.produce()
	r = h.drv.Tick()
	test.ExpectSuccess(t, r.Presented)
	test.ExpectFailure(t, h.sig.HasNewFrame())
}

// many flips between ticks result in one presented frame
func TestMultipleFlips(t *testing.T) {
	h := newHarness(true)
	for range 5 {
		h.produce()
	}

	test.ExpectEquality(t, len(h.gl.LiveSyncs()), 1)

	test.ExpectSuccess(t, h.drv.Tick().Presented)
	test.ExpectFailure(t, h.drv.Tick().Presented)
	test.ExpectEquality(t, len(h.gl.Blits()), 1)
}
