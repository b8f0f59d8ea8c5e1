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

package libretro

import (
	"unsafe"

	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/input"
)

// LogLevel is the severity of a message sent to the host's log.
type LogLevel int

// List of valid LogLevel values. The values are the same as the C API.
const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// LogFunc writes a message to the host's log.
type LogFunc func(level LogLevel, msg string)

// HWContextType is the type of hardware context requested from the host.
type HWContextType int

// List of valid HWContextType values. The values are the same as the C API.
const (
	HWContextNone       HWContextType = 0
	HWContextOpenGL     HWContextType = 1
	HWContextOpenGLCore HWContextType = 3
)

func (t HWContextType) String() string {
	switch t {
	case HWContextOpenGL:
		return "OpenGL compatibility"
	case HWContextOpenGLCore:
		return "OpenGL core"
	}
	return "none"
}

// HWRender is the hardware render request. The core fills in the request and
// the callbacks for context reset and destroy. The host fills in the
// framebuffer and proc address functions if it accepts the request.
type HWRender struct {
	ContextType  HWContextType
	VersionMajor uint
	VersionMinor uint

	Depth            bool
	Stencil          bool
	BottomLeftOrigin bool
	CacheContext     bool
	Debug            bool

	ContextReset   func()
	ContextDestroy func()

	GetCurrentFramebuffer func() uint32
	GetProcAddress        func(name string) unsafe.Pointer
}

// Environment is the set of environment commands used by the core. Every
// method returns false if the host does not support the command.
type Environment interface {
	GetLogInterface() (LogFunc, bool)

	SetVariables(vars []coreopts.Variable) bool
	GetVariable(key string) (string, bool)
	GetVariableUpdate() bool

	SetSupportNoGame(support bool) bool
	SetInputDescriptors(desc []input.Descriptor) bool
	SetControllerInfo(info [][]input.ControllerDescription) bool
	GetInputBitmasks() bool

	GetSystemDirectory() (string, bool)
	GetSaveDirectory() (string, bool)

	GetCanDupe() bool
	SetHWRender(hw *HWRender) bool

	// SetMessage shows a message on screen for the number of frames
	SetMessage(msg string, frames uint) bool
}

// Callbacks that are registered with the core separately from the
// environment. Any callback can be re-registered at any time.
type (
	VideoRefreshFunc     func(valid bool, width uint, height uint, pitch uint)
	AudioSampleFunc      func(left int16, right int16)
	AudioSampleBatchFunc func(data []int16, frames int) int
	InputPollFunc        func()
	InputStateFunc       func(port uint, device uint, index uint, id uint) int16
)

// SystemInfo describes the core to the host.
type SystemInfo struct {
	Name         string
	Version      string
	Extensions   string
	NeedFullpath bool
	BlockExtract bool
}

// GameGeometry is the size of the frames given to the host.
type GameGeometry struct {
	BaseWidth   uint
	BaseHeight  uint
	MaxWidth    uint
	MaxHeight   uint
	AspectRatio float32
}

// SystemTiming is the frame rate and audio sample rate.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo is the audio and video information given to the host after
// content has been loaded.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// Region of the content.
type Region uint

// List of valid Region values.
const (
	RegionNTSC Region = iota
	RegionPAL
)
