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

package main

// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"unsafe"

	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/libretro"
)

// allocs is a list of C allocations that must outlive the call that created
// them
type allocs []unsafe.Pointer

func (s *allocs) add(str string) *C.char {
	c := C.CString(str)
	*s = append(*s, unsafe.Pointer(c))
	return c
}

func (s *allocs) alloc(size C.size_t) unsafe.Pointer {
	p := C.calloc(1, size)
	*s = append(*s, p)
	return p
}

func (s *allocs) free() {
	for _, p := range *s {
		C.free(p)
	}
	*s = nil
}

// environment implements libretro.Environment with the host's environment
// callback
type environment struct {
	cb C.retro_environment_t

	// the variables and input descriptions remain allocated until they are
	// replaced or the core is unloaded
	variables   allocs
	descriptors allocs
	controllers allocs

	// the hardware render request accepted by the host
	hw *libretro.HWRender
}

func (env *environment) call(cmd C.uint, data unsafe.Pointer) bool {
	return bool(C.bridge_environment(env.cb, cmd, data))
}

func (env *environment) free() {
	env.variables.free()
	env.descriptors.free()
	env.controllers.free()
}

func (env *environment) GetLogInterface() (libretro.LogFunc, bool) {
	var cb C.struct_retro_log_callback
	if !env.call(C.RETRO_ENVIRONMENT_GET_LOG_INTERFACE, unsafe.Pointer(&cb)) || cb.log == nil {
		return nil, false
	}
	log := cb.log
	return func(level libretro.LogLevel, msg string) {
		cmsg := C.CString(msg)
		defer C.free(unsafe.Pointer(cmsg))
		C.bridge_log(log, C.enum_retro_log_level(level), cmsg)
	}, true
}

func (env *environment) SetVariables(vars []coreopts.Variable) bool {
	env.variables.free()

	sz := C.size_t(unsafe.Sizeof(C.struct_retro_variable{}))
	p := env.variables.alloc(sz * C.size_t(len(vars)+1))
	cvars := unsafe.Slice((*C.struct_retro_variable)(p), len(vars)+1)
	for i, v := range vars {
		cvars[i].key = env.variables.add(v.Key)
		cvars[i].value = env.variables.add(v.Definition())
	}

	return env.call(C.RETRO_ENVIRONMENT_SET_VARIABLES, p)
}

func (env *environment) GetVariable(key string) (string, bool) {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))

	v := C.struct_retro_variable{key: ckey}
	if !env.call(C.RETRO_ENVIRONMENT_GET_VARIABLE, unsafe.Pointer(&v)) || v.value == nil {
		return "", false
	}
	return C.GoString(v.value), true
}

func (env *environment) GetVariableUpdate() bool {
	var updated C.bool
	return env.call(C.RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE, unsafe.Pointer(&updated)) && bool(updated)
}

func (env *environment) SetSupportNoGame(support bool) bool {
	v := C.bool(support)
	return env.call(C.RETRO_ENVIRONMENT_SET_SUPPORT_NO_GAME, unsafe.Pointer(&v))
}

func (env *environment) SetInputDescriptors(desc []input.Descriptor) bool {
	env.descriptors.free()

	sz := C.size_t(unsafe.Sizeof(C.struct_retro_input_descriptor{}))
	p := env.descriptors.alloc(sz * C.size_t(len(desc)+1))
	cdesc := unsafe.Slice((*C.struct_retro_input_descriptor)(p), len(desc)+1)
	for i, d := range desc {
		cdesc[i].port = C.uint(d.Port)
		cdesc[i].device = C.uint(d.Device)
		cdesc[i].index = C.uint(d.Index)
		cdesc[i].id = C.uint(d.ID)
		cdesc[i].description = env.descriptors.add(d.Description)
	}

	return env.call(C.RETRO_ENVIRONMENT_SET_INPUT_DESCRIPTORS, p)
}

func (env *environment) SetControllerInfo(info [][]input.ControllerDescription) bool {
	env.controllers.free()

	sz := C.size_t(unsafe.Sizeof(C.struct_retro_controller_info{}))
	p := env.controllers.alloc(sz * C.size_t(len(info)+1))
	cinfo := unsafe.Slice((*C.struct_retro_controller_info)(p), len(info)+1)

	tsz := C.size_t(unsafe.Sizeof(C.struct_retro_controller_description{}))
	for i, port := range info {
		t := env.controllers.alloc(tsz * C.size_t(len(port)))
		types := unsafe.Slice((*C.struct_retro_controller_description)(t), len(port))
		for j, d := range port {
			types[j].desc = env.controllers.add(d.Description)
			types[j].id = C.uint(d.ID)
		}
		cinfo[i].types = (*C.struct_retro_controller_description)(t)
		cinfo[i].num_types = C.uint(len(port))
	}

	return env.call(C.RETRO_ENVIRONMENT_SET_CONTROLLER_INFO, p)
}

func (env *environment) GetInputBitmasks() bool {
	return env.call(C.RETRO_ENVIRONMENT_GET_INPUT_BITMASKS, nil)
}

func (env *environment) directory(cmd C.uint) (string, bool) {
	var dir *C.char
	if !env.call(cmd, unsafe.Pointer(&dir)) || dir == nil {
		return "", false
	}
	return C.GoString(dir), true
}

func (env *environment) GetSystemDirectory() (string, bool) {
	return env.directory(C.RETRO_ENVIRONMENT_GET_SYSTEM_DIRECTORY)
}

func (env *environment) GetSaveDirectory() (string, bool) {
	return env.directory(C.RETRO_ENVIRONMENT_GET_SAVE_DIRECTORY)
}

func (env *environment) GetCanDupe() bool {
	var dupe C.bool
	return env.call(C.RETRO_ENVIRONMENT_GET_CAN_DUPE, unsafe.Pointer(&dupe)) && bool(dupe)
}

func (env *environment) SetHWRender(hw *libretro.HWRender) bool {
	cb := C.struct_retro_hw_render_callback{
		context_type:       C.uint(hw.ContextType),
		context_reset:      C.retro_hw_context_reset_t(C.bridge_context_reset),
		context_destroy:    C.retro_hw_context_reset_t(C.bridge_context_destroy),
		depth:              C.bool(hw.Depth),
		stencil:            C.bool(hw.Stencil),
		bottom_left_origin: C.bool(hw.BottomLeftOrigin),
		version_major:      C.uint(hw.VersionMajor),
		version_minor:      C.uint(hw.VersionMinor),
		cache_context:      C.bool(hw.CacheContext),
		debug_context:      C.bool(hw.Debug),
	}

	if !env.call(C.RETRO_ENVIRONMENT_SET_HW_RENDER, unsafe.Pointer(&cb)) {
		return false
	}

	fb := cb.get_current_framebuffer
	hw.GetCurrentFramebuffer = func() uint32 {
		return uint32(C.bridge_current_framebuffer(fb))
	}

	proc := cb.get_proc_address
	hw.GetProcAddress = func(name string) unsafe.Pointer {
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))
		return C.bridge_proc_address(proc, cname)
	}

	env.hw = hw

	return true
}

func (env *environment) SetMessage(msg string, frames uint) bool {
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))

	m := C.struct_retro_message{msg: cmsg, frames: C.uint(frames)}
	return env.call(C.RETRO_ENVIRONMENT_SET_MESSAGE, unsafe.Pointer(&m))
}
