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

// Package main is the libretro core built as a shared library:
//
//	go build -buildmode=c-shared -o retrobridge_libretro.so ./libretro/capi
//
// Every retro_* entry point is a thin wrapper around libretro.Core. Panics
// do not cross the C boundary.
package main

// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"unsafe"

	"github.com/jetsetilly/retrobridge/contextpool"
	"github.com/jetsetilly/retrobridge/libretro"
	"github.com/jetsetilly/retrobridge/logger"
)

const logTag = "capi"

var (
	env  = &environment{}
	core = libretro.NewCore(libretro.Config{
		Platform: func() (contextpool.Platform, error) {
			plt, err := newEGLPlatform(env.hw)
			if err != nil {
				return nil, err
			}
			return plt, nil
		},
	})
)

// the system info strings are never freed
var systemInfo struct {
	name       *C.char
	version    *C.char
	extensions *C.char
}

func init() {
	info := core.SystemInfo()
	systemInfo.name = C.CString(info.Name)
	systemInfo.version = C.CString(info.Version)
	systemInfo.extensions = C.CString(info.Extensions)
}

func main() {}

func recoverPanic(entry string) {
	if r := recover(); r != nil {
		logger.Logf(logger.Allow, logTag, "panic in %s: %v", entry, r)
	}
}

//export goContextReset
func goContextReset() {
	defer recoverPanic("context_reset")
	if env.hw != nil && env.hw.ContextReset != nil {
		env.hw.ContextReset()
	}
}

//export goContextDestroy
func goContextDestroy() {
	defer recoverPanic("context_destroy")
	if env.hw != nil && env.hw.ContextDestroy != nil {
		env.hw.ContextDestroy()
	}
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	defer recoverPanic("retro_set_environment")
	env.cb = cb
	core.SetEnvironment(env)
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	core.SetVideoRefresh(func(valid bool, width uint, height uint, pitch uint) {
		C.bridge_video_refresh(cb, C.bool(valid), C.uint(width), C.uint(height), C.size_t(pitch))
	})
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	core.SetAudioSample(func(left int16, right int16) {
		C.bridge_audio_sample(cb, C.int16_t(left), C.int16_t(right))
	})
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	if cb == nil {
		core.SetAudioSampleBatch(nil)
		return
	}
	core.SetAudioSampleBatch(func(data []int16, frames int) int {
		if frames == 0 || len(data) == 0 {
			return 0
		}
		return int(C.bridge_audio_sample_batch(cb, (*C.int16_t)(unsafe.Pointer(&data[0])), C.size_t(frames)))
	})
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	core.SetInputPoll(func() {
		C.bridge_input_poll(cb)
	})
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	core.SetInputState(func(port uint, device uint, index uint, id uint) int16 {
		return int16(C.bridge_input_state(cb, C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
	})
}

//export retro_init
func retro_init() {
	defer recoverPanic("retro_init")
	core.Init()
}

//export retro_deinit
func retro_deinit() {
	defer recoverPanic("retro_deinit")
	core.Deinit()
	env.free()
	env.hw = nil
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.uint(core.APIVersion())
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	if info == nil {
		return
	}
	si := core.SystemInfo()
	info.library_name = systemInfo.name
	info.library_version = systemInfo.version
	info.valid_extensions = systemInfo.extensions
	info.need_fullpath = C.bool(si.NeedFullpath)
	info.block_extract = C.bool(si.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	if info == nil {
		return
	}
	av := core.SystemAVInfo()
	info.geometry.base_width = C.uint(av.Geometry.BaseWidth)
	info.geometry.base_height = C.uint(av.Geometry.BaseHeight)
	info.geometry.max_width = C.uint(av.Geometry.MaxWidth)
	info.geometry.max_height = C.uint(av.Geometry.MaxHeight)
	info.geometry.aspect_ratio = C.float(av.Geometry.AspectRatio)
	info.timing.fps = C.double(av.Timing.FPS)
	info.timing.sample_rate = C.double(av.Timing.SampleRate)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	defer recoverPanic("retro_set_controller_port_device")
	core.SetControllerPortDevice(uint(port), uint(device))
}

//export retro_reset
func retro_reset() {
	defer recoverPanic("retro_reset")
	core.Reset()
}

//export retro_run
func retro_run() {
	defer recoverPanic("retro_run")
	core.Run()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return C.size_t(core.SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	if data == nil || size == 0 {
		return false
	}
	return C.bool(core.Serialize(unsafe.Slice((*byte)(data), int(size))))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	if data == nil || size == 0 {
		return false
	}
	return C.bool(core.Unserialize(unsafe.Slice((*byte)(data), int(size))))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	core.CheatReset()
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
	var s string
	if code != nil {
		s = C.GoString(code)
	}
	core.CheatSet(uint(index), bool(enabled), s)
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	defer recoverPanic("retro_load_game")

	var path string
	if game != nil && game.path != nil {
		path = C.GoString(game.path)
	}
	return C.bool(core.LoadGame(path))
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, num C.size_t) C.bool {
	var paths []string
	if info != nil {
		for _, g := range unsafe.Slice(info, int(num)) {
			if g.path != nil {
				paths = append(paths, C.GoString(g.path))
			}
		}
	}
	return C.bool(core.LoadGameSpecial(uint(gameType), paths))
}

//export retro_unload_game
func retro_unload_game() {
	defer recoverPanic("retro_unload_game")
	core.UnloadGame()
}

//export retro_get_region
func retro_get_region() C.uint {
	return C.uint(core.Region())
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	data := core.MemoryData(uint(id))
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	return C.size_t(core.MemorySize(uint(id)))
}
