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

package emulator

import (
	"github.com/go-audio/audio"

	"github.com/jetsetilly/retrobridge/gpu"
)

// Surface is the render surface given to the emulator's renderer. The
// renderer creates a context with MakeContext(), makes it current on its own
// thread with SetCurrent() and draws to the framebuffer returned by Target().
// Flip() is called when the renderer has finished a frame.
type Surface interface {
	MakeContext() (gpu.Context, error)
	SetCurrent(ctx gpu.Context) error
	DeleteContext(ctx gpu.Context)

	// GL returns the GL implementation to use while a context from
	// MakeContext() is current
	GL() gpu.GL

	// Target returns the framebuffer to draw to
	Target() uint32

	// EnsureSize makes sure the render target is at least the given size
	EnsureSize(width int32, height int32)

	// Flip indicates that the renderer has finished drawing. If skip is true
	// then the frame is not to be presented
	Flip(skip bool)

	ClientWidth() int32
	ClientHeight() int32
	DisplayRate() float64
	HasAlpha() bool

	Show()
	Hide()
}

// SampleFormat is the format of samples written to an AudioDevice.
type SampleFormat int

// List of valid SampleFormat values.
const (
	SampleS16 SampleFormat = iota
	SampleF32
)

// Size returns the number of bytes in one sample.
func (f SampleFormat) Size() int {
	if f == SampleF32 {
		return 4
	}
	return 2
}

// AudioState is passed to the audio state callback.
type AudioState int

// List of valid AudioState values.
const (
	AudioPlaying AudioState = iota
	AudioPaused
	AudioClosed
)

// AudioDevice is the audio output given to the emulator. The emulator does
// not push samples. Instead it sets a write callback that the device calls
// when it needs more data.
type AudioDevice interface {
	Open(format *audio.Format, sample SampleFormat) error
	Close()

	// the write callback fills the buffer with interleaved samples in the
	// format given to Open() and returns the number of bytes written
	SetWriteCallback(f func(buf []byte) int)
	SetStateCallback(f func(state AudioState))

	Play()
	Pause()
	IsPlaying() bool

	// CallbackFrameLen is the length of time, in seconds, represented by one
	// call to the write callback
	CallbackFrameLen() float64
}

// Number of pads and buttons.
const (
	MaxPads       = 7
	PadButtons    = 16
	PadAnalogAxes = 4
)

// Axis is the state of one analog axis. Neg and Pos are the directional
// values 0 to 255 on either side of the centre. Byte is the whole axis mapped
// to 0 to 255 with 128 at the centre.
type Axis struct {
	Neg  uint8
	Pos  uint8
	Byte uint8
}

// Analog axis indexes.
const (
	LeftX = iota
	LeftY
	RightX
	RightY
)

// PadState is the state of one controller.
type PadState struct {
	Connected bool

	// bit N is set if button N is pressed. buttons are numbered as the
	// libretro joypad ids
	Buttons uint16

	// pressure for each button. either 0 or 255
	Pressure [PadButtons]uint8

	Analog [PadAnalogAxes]Axis
}

// Pressed returns true if the numbered button is pressed.
func (p PadState) Pressed(button int) bool {
	return p.Buttons&(1<<button) != 0
}

// MouseState is the state of the mouse. X and Y are relative movement since
// the previous poll. PointerX and PointerY are absolute positions in the
// range -32767 to 32767.
type MouseState struct {
	X, Y               int16
	PointerX, PointerY int16
	Left, Right        bool
	Middle             bool
	Button4, Button5   bool
	WheelUp, WheelDown bool
}

// InputSource provides the emulator with the state of the controllers.
type InputSource interface {
	Pad(port int) PadState
	Mouse() MouseState

	// Keys returns the key codes of the keys that are currently pressed
	Keys() []uint16
}
