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

package present

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/framebuffer"
	"github.com/jetsetilly/retrobridge/framesignal"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/metrics"
)

// Nominal frame size given to the host with every frame. The host uses the
// framebuffer size for presentation.
const (
	NominalWidth  = 1280
	NominalHeight = 720
)

// Host is the part of the host used during a tick.
type Host interface {
	// VariablesUpdated returns true if core options have changed since the
	// previous call
	VariablesUpdated() bool

	PollInput()
	InputState(port uint, device uint, index uint, id uint) int16

	AudioBatch(samples []int16, frames int) int

	// VideoRefresh submits a frame. If valid is false the host reuses the
	// previous frame
	VideoRefresh(valid bool, width uint, height uint, pitch uint)

	// CurrentFramebuffer returns the framebuffer the host wants the frame in
	CurrentFramebuffer() uint32
}

// Ticker is told about every tick. Satisfied by the watchdog.
type Ticker interface {
	Tick()
}

// Video is the set of resources on the host's context. It is attached once
// the host's context is ready.
type Video struct {
	GL     gpu.GL
	Fence  *fence.Tracker
	Shared *framebuffer.Shared
}

// Config is the set of components used by the driver. Fields other than Host
// and Signal are optional.
type Config struct {
	Host     Host
	Signal   *framesignal.Signal
	Watchdog Ticker
	Poller   *input.Poller
	Pads     *input.PadHandler
	Audio    audio.Source

	// called when the host says the core options have changed
	ApplyOptions func()

	// records drained audio. in addition to the host
	AudioTap audio.Sink
}

// Report describes what happened during a tick.
type Report struct {
	Tick uint64

	VariablesUpdated bool

	AudioFrames  int
	AudioBatches int

	// false if there was no video attached
	Video bool

	Fence     fence.Result
	Presented bool
	Blitted   bool

	Duration time.Duration
}

func (r Report) String() string {
	outcome := "dupe"
	if r.Presented {
		outcome = "present"
	}
	return fmt.Sprintf("tick %d: %s (fence %s, audio %d frames)", r.Tick, outcome, r.Fence, r.AudioFrames)
}

// Driver performs the tick.
type Driver struct {
	cfg     Config
	drainer audio.Drainer
	video   atomic.Pointer[Video]
	ticks   uint64
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(cfg Config) *Driver {
	drv := &Driver{cfg: cfg}
	drv.drainer.Tap = cfg.AudioTap
	return drv
}

// AttachVideo makes the video resources available to the driver.
func (drv *Driver) AttachVideo(v *Video) {
	drv.video.Store(v)
}

// DetachVideo removes the video resources. Ticks will reuse the previous
// frame until video is attached again.
func (drv *Driver) DetachVideo() *Video {
	return drv.video.Swap(nil)
}

// Video returns the attached video resources. Nil if none are attached.
func (drv *Driver) Video() *Video {
	return drv.video.Load()
}

// Tick must be called once per call to the run entry point, on the host's
// thread.
func (drv *Driver) Tick() Report {
	start := time.Now()

	drv.ticks++
	r := Report{Tick: drv.ticks}

	if drv.cfg.Watchdog != nil {
		drv.cfg.Watchdog.Tick()
	}

	host := drv.cfg.Host

	if host.VariablesUpdated() {
		r.VariablesUpdated = true
		if drv.cfg.ApplyOptions != nil {
			drv.cfg.ApplyOptions()
		}
	}

	host.PollInput()
	if drv.cfg.Poller != nil {
		drv.cfg.Poller.Poll(host.InputState)
	}
	if drv.cfg.Pads != nil {
		drv.cfg.Pads.Process()
	}

	if drv.cfg.Audio != nil {
		r.AudioFrames, r.AudioBatches = drv.drainer.Drain(drv.cfg.Audio, host.AudioBatch)
	}

	if v := drv.video.Load(); v != nil {
		r.Video = true

		// the host expects to find its context as it left it
		v.GL.BindFramebuffer(0)
		v.GL.UseProgram(0)

		r.Fence = v.Fence.WaitAndClear()

		if drv.cfg.Signal.HasNewFrame() {
			// nothing is presented if there is no render target to blit from
			r.Blitted = v.Shared.PresentBlit(host.CurrentFramebuffer())
			r.Presented = r.Blitted
		}
	} else {
		r.Fence = fence.NoFence
	}

	if r.Presented {
		host.VideoRefresh(true, NominalWidth, NominalHeight, 0)
		drv.cfg.Signal.MarkConsumed()
	} else {
		host.VideoRefresh(false, NominalWidth, NominalHeight, 0)
	}

	r.Duration = time.Since(start)
	drv.record(r)

	return r
}

func (drv *Driver) record(r Report) {
	metrics.Frame(r.Presented)
	if r.Video {
		metrics.Fence(r.Fence.String())
	}
	if r.AudioFrames > 0 {
		metrics.Audio(r.AudioFrames)
	}
	metrics.Tick(r.Duration)
}
