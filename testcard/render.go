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

package testcard

import (
	"runtime"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/limiter"
	"github.com/jetsetilly/retrobridge/logger"
)

// colour bars in the order they appear with a rotation of zero
var bars = [...][3]float32{
	{0.75, 0.75, 0.75},
	{0.75, 0.75, 0.00},
	{0.00, 0.75, 0.75},
	{0.00, 0.75, 0.00},
	{0.75, 0.00, 0.75},
	{0.75, 0.00, 0.00},
	{0.00, 0.00, 0.75},
}

// size of the analog marker and the sparkle in pixels
const (
	markerSize  = 32
	sparkleSize = 8
)

type pattern struct {
	rotate int
	speed  uint64
}

func newPattern(seed uint32) pattern {
	return pattern{
		rotate: int(seed % uint32(len(bars))),
		speed:  1 + uint64(seed>>8)%4,
	}
}

// tint returns the colour the bars are mixed with and whether the bars
// should be tinted at all
func tint(pad emulator.PadState) ([3]float32, bool) {
	switch {
	case pad.Pressed(int(input.JoypadA)):
		return [3]float32{1, 0, 0}, true
	case pad.Pressed(int(input.JoypadB)):
		return [3]float32{0, 1, 0}, true
	case pad.Pressed(int(input.JoypadX)):
		return [3]float32{0, 0, 1}, true
	case pad.Pressed(int(input.JoypadY)):
		return [3]float32{1, 1, 1}, true
	}
	return [3]float32{}, false
}

// render is the loop that produces frames. it returns when the emulator is
// stopping
func (emu *Emulator) render(stop <-chan struct{}) {
	lmtr := limiter.NewLimiter(emu.env.Surface)
	defer lmtr.Stop()

	if emu.env.Config.FrameLimit > 0 {
		lmtr.SetLimit(float32(emu.env.Config.FrameLimit))
	} else {
		lmtr.SetLimit(limiter.MatchRefreshRate)
	}

	if emu.env.Config.Renderer == emulator.OpenGL {
		if emu.renderGL(lmtr) {
			return
		}
		logger.Log(logger.Allow, logTag, "continuing without video")
	}

	emu.renderNull(lmtr)
}

// renderNull advances the frame number without drawing anything
func (emu *Emulator) renderNull(lmtr *limiter.Limiter) {
	for emu.wait() {
		emu.frame.Add(1)
		lmtr.CheckFrame()
		lmtr.MeasureActual()
	}
}

// renderGL draws to the surface until the emulator is stopping. returns
// false if drawing could not begin
func (emu *Emulator) renderGL(lmtr *limiter.Limiter) bool {
	srf := emu.env.Surface

	// the context must stay on this thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx, err := srf.MakeContext()
	if err != nil {
		logger.Logf(logger.Allow, logTag, "no render context: %v", err)
		return false
	}
	defer srf.DeleteContext(ctx)

	if err := srf.SetCurrent(ctx); err != nil {
		logger.Logf(logger.Allow, logTag, "cannot make render context current: %v", err)
		return false
	}
	defer func() {
		if err := srf.SetCurrent(0); err != nil {
			logger.Log(logger.Allow, logTag, err)
		}
	}()

	width := int32(emu.env.Config.Width)
	height := int32(emu.env.Config.Height)
	srf.EnsureSize(width, height)

	srf.Show()
	defer srf.Hide()

	gl := srf.GL()
	for emu.wait() {
		emu.draw(gl, srf.Target(), width, height)
		srf.Flip(false)
		emu.frame.Add(1)
		lmtr.CheckFrame()
		lmtr.MeasureActual()
	}

	return true
}

// draw one frame of the test pattern to the framebuffer
func (emu *Emulator) draw(gl gpu.GL, fbo uint32, width int32, height int32) {
	gl.BindFramebuffer(fbo)
	gl.Viewport(0, 0, width, height)

	pad := emu.env.Input.Pad(0)
	tc, tinted := tint(pad)

	n := int32(len(bars))
	barWidth := (width + n - 1) / n
	offset := int32((emu.frame.Load() * emu.pattern.speed) % uint64(width))

	for i := range n {
		c := bars[(int(i)+emu.pattern.rotate)%len(bars)]
		if tinted {
			for j := range c {
				c[j] = (c[j] + tc[j]) / 2
			}
		}

		// bars that cross the right edge wrap around to the left
		x := (i*barWidth + offset) % width
		gl.FillRect(x, 0, min(barWidth, width-x), height, c[0], c[1], c[2])
		if x+barWidth > width {
			gl.FillRect(0, 0, x+barWidth-width, height, c[0], c[1], c[2])
		}
	}

	if pad.Connected {
		x := int32(pad.Analog[emulator.LeftX].Byte) * (width - markerSize) / 255
		y := int32(pad.Analog[emulator.LeftY].Byte) * (height - markerSize) / 255
		gl.FillRect(x, y, markerSize, markerSize, 1, 1, 1)
	}

	// the sparkle moves once per frame
	if emu.env.Random != nil {
		x := int32(emu.env.Random.Frame(int(width - sparkleSize)))
		y := int32(emu.env.Random.Frame(int(height - sparkleSize)))
		gl.FillRect(x, y, sparkleSize, sparkleSize, 1, 1, 1)
	}
}
