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

// Package surface implements the emulator.Surface interface. It ties the
// emulator's renderer to the frame handoff machinery: contexts come from the
// context pool, the render target is the producer side of the shared
// framebuffer and a flip installs a fence and raises the frame-ready signal.
package surface

import (
	"sync/atomic"

	"github.com/jetsetilly/retrobridge/contextpool"
	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/framebuffer"
	"github.com/jetsetilly/retrobridge/framesignal"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
)

// the refresh rate reported to the renderer
const displayRate = 60.0

// Resources are the parts of the frame handoff used by the surface.
type Resources struct {
	GL       gpu.GL
	Platform contextpool.Platform
	Pool     *contextpool.Pool
	Fence    *fence.Tracker
	Signal   *framesignal.Signal
	Shared   *framebuffer.Shared
}

// Surface is the render surface given to the emulator.
type Surface struct {
	res Resources

	shown   atomic.Bool
	flips   atomic.Uint64
	skipped atomic.Uint64
}

// NewSurface is the preferred method of initialisation for the Surface type.
func NewSurface(res Resources) *Surface {
	return &Surface{res: res}
}

// MakeContext checks out a context from the pool.
func (srf *Surface) MakeContext() (gpu.Context, error) {
	return srf.res.Pool.Checkout()
}

// SetCurrent makes the context current on the calling thread.
func (srf *Surface) SetCurrent(ctx gpu.Context) error {
	return srf.res.Platform.MakeCurrent(ctx)
}

// DeleteContext returns the context to the pool.
func (srf *Surface) DeleteContext(ctx gpu.Context) {
	if err := srf.res.Pool.Release(ctx); err != nil {
		logger.Log(logger.Allow, "surface", err)
	}
}

// GL returns the GL implementation.
func (srf *Surface) GL() gpu.GL {
	return srf.res.GL
}

// Target returns the producer framebuffer of the shared render target.
func (srf *Surface) Target() uint32 {
	return srf.res.Shared.ProducerTarget()
}

// EnsureSize makes sure the shared render target is at least the given size.
func (srf *Surface) EnsureSize(width int32, height int32) {
	srf.res.Shared.EnsureCapacity(width, height)
}

// Flip is called by the renderer after finishing a frame. Unless the frame is
// skipped, a fence is installed for the frame and the frame-ready signal is
// raised on the presentation-relevant flip.
func (srf *Surface) Flip(skip bool) {
	if skip {
		srf.skipped.Add(1)
		return
	}
	srf.flips.Add(1)

	// the fence must be installed before the signal is raised. the consumer
	// waits on the fence only after seeing the signal
	srf.res.Fence.Submit()
	srf.res.Signal.Flip()
}

// Flips returns the number of flips and the number of skipped flips.
func (srf *Surface) Flips() (flips uint64, skipped uint64) {
	return srf.flips.Load(), srf.skipped.Load()
}

// ClientWidth returns the width of the shared render target.
func (srf *Surface) ClientWidth() int32 {
	w, _ := srf.res.Shared.Dimensions()
	if w == 0 {
		return framebuffer.DefaultWidth
	}
	return w
}

// ClientHeight returns the height of the shared render target.
func (srf *Surface) ClientHeight() int32 {
	_, h := srf.res.Shared.Dimensions()
	if h == 0 {
		return framebuffer.DefaultHeight
	}
	return h
}

// DisplayRate returns the refresh rate of the display.
func (srf *Surface) DisplayRate() float64 {
	return displayRate
}

// HasAlpha returns false. The host ignores the alpha channel.
func (srf *Surface) HasAlpha() bool {
	return false
}

// Show records that the renderer wants the surface to be visible. The host
// owns the window so there is nothing more to do.
func (srf *Surface) Show() {
	srf.shown.Store(true)
}

// Hide records that the renderer wants the surface to be hidden.
func (srf *Surface) Hide() {
	srf.shown.Store(false)
}

// Shown returns the visibility requested by the renderer.
func (srf *Surface) Shown() bool {
	return srf.shown.Load()
}
