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

package sdlhost

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/retrobridge/contextpool"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/libretro"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/version"
)

// Stats of a completed run.
type Stats struct {
	Frames    int
	Presented int
	Duped     int
	Dropped   int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d frames: %d presented, %d duped, %d audio batches dropped", s.Frames, s.Presented, s.Duped, s.Dropped)
}

// Host runs a libretro.Core in an SDL window.
type Host struct {
	Env *Environment

	core *libretro.Core

	window *sdl.Window
	plt    *platform

	audio       sdl.AudioDeviceID
	audioQueued uint32

	pads pads
	keys []uint8

	stats   Stats
	swap    bool
	titled  int
	stopped bool

	// set by Stop(). checked once per frame
	stopRequest atomic.Bool
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost(env *Environment) *Host {
	return &Host{Env: env}
}

// Platform returns the context platform for the core. It is only available
// once the window has been created.
func (h *Host) Platform() (contextpool.Platform, error) {
	if h.plt == nil {
		return nil, fmt.Errorf("sdlhost: no window")
	}
	return h.plt, nil
}

// Stop the run loop. Safe to call from any goroutine.
func (h *Host) Stop() {
	h.stopRequest.Store(true)
}

// Attach registers the host's environment and callbacks with the core.
func (h *Host) Attach(core *libretro.Core) {
	h.core = core
	core.SetEnvironment(h.Env)
	core.SetVideoRefresh(h.videoRefresh)
	core.SetAudioSampleBatch(h.audioBatch)
	core.SetInputPoll(h.inputPoll)
	core.SetInputState(h.inputState)
}

// Run loads the content and runs the core until the window is closed or the
// number of frames has been reached. A frame count of zero runs until the
// window is closed.
func (h *Host) Run(path string, frames int) (Stats, error) {
	if h.core == nil {
		return Stats{}, fmt.Errorf("sdlhost: no core attached")
	}

	// SDL and the main GL context belong to this thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_GAMECONTROLLER); err != nil {
		return Stats{}, fmt.Errorf("sdl: %w", err)
	}
	defer sdl.Quit()

	var v sdl.Version
	sdl.VERSION(&v)
	logger.Logf(logger.Allow, logTag, "SDL version %d.%d.%d", v.Major, v.Minor, v.Patch)

	h.pads.open()
	defer h.pads.close()

	h.core.Init()
	defer h.core.Deinit()

	if !h.core.LoadGame(path) {
		return h.stats, fmt.Errorf("sdlhost: cannot load %s", path)
	}
	defer h.unload()

	h.openAudio()

	if hw := h.Env.HWRender(); hw != nil {
		if err := h.openVideo(hw); err != nil {
			return h.stats, err
		}
		h.plt.sharing.Store(true)
		hw.ContextReset()
		h.plt.sharing.Store(false)
	}

	for frames == 0 || h.stats.Frames < frames {
		h.service()
		if h.stopped || h.stopRequest.Load() {
			break // for loop
		}

		h.swap = false
		h.core.Run()
		h.stats.Frames++

		if h.window != nil {
			if h.swap {
				h.window.GLSwap()
			}
			h.updateTitle()
		}
	}

	return h.stats, nil
}

// unload the content and release the window and audio device
func (h *Host) unload() {
	h.core.UnloadGame()

	if hw := h.Env.HWRender(); hw != nil && hw.ContextDestroy != nil {
		hw.ContextDestroy()
	}
	h.Env.resetHWRender()
	h.Env.procAddr = nil

	if h.plt != nil {
		_ = h.plt.window.GLMakeCurrent(nil)
		sdl.GLDeleteContext(h.plt.main)
		_ = h.plt.offscreen.Destroy()
		h.plt = nil
	}
	if h.window != nil {
		_ = h.window.Destroy()
		h.window = nil
	}
	if h.audio != 0 {
		sdl.CloseAudioDevice(h.audio)
		h.audio = 0
	}
}

type glAttr struct {
	attr  sdl.GLattr
	value int
}

// openVideo creates the window and the main context to match the accepted
// hardware render request
func (h *Host) openVideo(hw *libretro.HWRender) error {
	attrs := []glAttr{
		{sdl.GL_CONTEXT_MAJOR_VERSION, int(hw.VersionMajor)},
		{sdl.GL_CONTEXT_MINOR_VERSION, int(hw.VersionMinor)},
		{sdl.GL_SHARE_WITH_CURRENT_CONTEXT, 0},
	}
	if hw.ContextType == libretro.HWContextOpenGLCore {
		attrs = append(attrs,
			glAttr{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
			glAttr{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		)
	} else {
		attrs = append(attrs, glAttr{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY})
	}
	if hw.Depth {
		attrs = append(attrs, glAttr{sdl.GL_DEPTH_SIZE, 24})
	}
	if hw.Stencil {
		attrs = append(attrs, glAttr{sdl.GL_STENCIL_SIZE, 8})
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
	}

	av := h.core.SystemAVInfo()

	var err error
	h.window, err = sdl.CreateWindow(version.ApplicationName,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(av.Geometry.BaseWidth), int32(av.Geometry.BaseHeight),
		sdl.WINDOW_OPENGL)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	offscreen, err := sdl.CreateWindow("", 0, 0, 1, 1, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	main, err := h.window.GLCreateContext()
	if err != nil {
		_ = offscreen.Destroy()
		return fmt.Errorf("sdl: %w", err)
	}
	if err := h.window.GLMakeCurrent(main); err != nil {
		sdl.GLDeleteContext(main)
		_ = offscreen.Destroy()
		return fmt.Errorf("sdl: %w", err)
	}

	if err := sdl.GLSetSwapInterval(1); err != nil {
		logger.Logf(logger.Allow, logTag, "vsync: %v", err)
	}

	h.plt = &platform{
		window:    h.window,
		offscreen: offscreen,
		main:      main,
	}
	h.Env.procAddr = sdl.GLGetProcAddress

	logger.Logf(logger.Allow, logTag, "window %dx%d for %s %d.%d", av.Geometry.BaseWidth, av.Geometry.BaseHeight,
		hw.ContextType, hw.VersionMajor, hw.VersionMinor)

	return nil
}

// the most audio queued before batches are dropped
const maxQueuedSeconds = 0.25

func (h *Host) openAudio() {
	av := h.core.SystemAVInfo()
	rate := int32(av.Timing.SampleRate)

	spec := &sdl.AudioSpec{
		Freq:     rate,
		Format:   sdl.AUDIO_S16SYS,
		Channels: 2,
		Samples:  1024,
	}

	var err error
	h.audio, err = sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		logger.Logf(logger.Allow, logTag, "audio: %v", err)
		h.audio = 0
		return
	}
	h.audioQueued = uint32(float64(rate)*maxQueuedSeconds) * 4
	sdl.PauseAudioDevice(h.audio, false)
}

// service the SDL event queue
func (h *Host) service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			h.stopped = true
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				continue // for loop
			}
			switch ev.Keysym.Sym {
			case sdl.K_ESCAPE:
				h.stopped = true
			case sdl.K_F1:
				logger.Log(logger.Allow, logTag, "reset")
				h.core.Reset()
			}
		case *sdl.ControllerDeviceEvent:
			if ev.Type == sdl.CONTROLLERDEVICEADDED || ev.Type == sdl.CONTROLLERDEVICEREMOVED {
				h.pads.close()
				h.pads.open()
			}
		}
	}
}

// show the most recent message in the window title
func (h *Host) updateTitle() {
	msgs := h.Env.Messages()
	if len(msgs) == h.titled {
		return
	}
	h.titled = len(msgs)
	h.window.SetTitle(fmt.Sprintf("%s: %s", version.ApplicationName, msgs[len(msgs)-1]))
}

func (h *Host) videoRefresh(valid bool, width uint, height uint, pitch uint) {
	if valid {
		h.stats.Presented++
		h.swap = true
	} else {
		h.stats.Duped++
	}
}

func (h *Host) audioBatch(data []int16, frames int) int {
	if h.audio == 0 || frames == 0 || len(data) < frames*2 {
		return frames
	}
	if sdl.GetQueuedAudioSize(h.audio) > h.audioQueued {
		h.stats.Dropped++
		return frames
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), frames*4)
	if err := sdl.QueueAudio(h.audio, b); err != nil {
		logger.Logf(logger.Allow, logTag, "audio: %v", err)
	}
	return frames
}

func (h *Host) inputPoll() {
	h.keys = sdl.GetKeyboardState()
}

func (h *Host) inputState(port uint, device uint, index uint, id uint) int16 {
	switch device {
	case input.DeviceJoypad:
		mask := h.pads.mask(port)
		if port == 0 {
			mask |= keyboardMask(h.keys)
		}
		if id == input.JoypadMask {
			return int16(mask)
		}
		if id >= 16 {
			return 0
		}
		return int16(mask >> id & 1)

	case input.DeviceAnalog:
		return h.pads.axis(port, index, id)

	case input.DeviceKeyboard:
		if port != 0 {
			return 0
		}
		k, ok := keycode(id)
		if !ok {
			return 0
		}
		sc := sdl.GetScancodeFromKey(k)
		if int(sc) < len(h.keys) && h.keys[sc] != 0 {
			return 1
		}
	}

	return 0
}
