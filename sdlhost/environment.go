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
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/libretro"
	"github.com/jetsetilly/retrobridge/logger"
)

const logTag = "sdlhost"

// Profile restricts the hardware contexts the host accepts.
type Profile int

// List of valid Profile values.
const (
	ProfileAny Profile = iota
	ProfileCore
	ProfileCompatibility
)

// ParseProfile returns the Profile for "any", "core" or "compat".
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return ProfileAny, nil
	case "core":
		return ProfileCore, nil
	case "compat", "compatibility":
		return ProfileCompatibility, nil
	}
	return ProfileAny, fmt.Errorf("sdlhost: unknown profile: %s", s)
}

// Environment implements libretro.Environment for the harness. It does not
// use SDL.
type Environment struct {
	Variables *coreopts.Options

	SystemDir string
	SaveDir   string

	// the hardware contexts accepted. a MaxMajor of zero accepts any version
	Profile  Profile
	MaxMajor uint
	MaxMinor uint

	// the host's log. the default is stderr
	LogOutput io.Writer

	// returns the address of a GL function. set by the Host when the window
	// is created
	procAddr func(name string) unsafe.Pointer

	crit        sync.Mutex
	definitions []coreopts.Variable
	descriptors []input.Descriptor
	controllers [][]input.ControllerDescription
	messages    []string
	requests    []libretro.HWRenderRequest
	hw          *libretro.HWRender

	updated atomic.Bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(vars *coreopts.Options) *Environment {
	return &Environment{
		Variables: vars,
		LogOutput: os.Stderr,
	}
}

var levelNames = map[libretro.LogLevel]string{
	libretro.LogDebug: "debug",
	libretro.LogInfo:  "info",
	libretro.LogWarn:  "warn",
	libretro.LogError: "error",
}

func (env *Environment) GetLogInterface() (libretro.LogFunc, bool) {
	var crit sync.Mutex
	return func(level libretro.LogLevel, msg string) {
		crit.Lock()
		defer crit.Unlock()
		fmt.Fprintf(env.LogOutput, "[%s] %s", levelNames[level], msg)
	}, true
}

func (env *Environment) SetVariables(vars []coreopts.Variable) bool {
	env.crit.Lock()
	defer env.crit.Unlock()
	env.definitions = vars
	return true
}

// Definitions returns the variables given by the core.
func (env *Environment) Definitions() []coreopts.Variable {
	env.crit.Lock()
	defer env.crit.Unlock()
	return env.definitions
}

func (env *Environment) GetVariable(key string) (string, bool) {
	if env.Variables == nil {
		return "", false
	}
	v := env.Variables.Get(key)
	return v, v != ""
}

// SetVariable changes a variable. The core sees the change the next time it
// checks for updated variables.
func (env *Environment) SetVariable(key string, value string) error {
	if env.Variables == nil {
		return fmt.Errorf("sdlhost: no variables")
	}
	if err := env.Variables.Set(key, value); err != nil {
		return err
	}
	env.updated.Store(true)
	return nil
}

func (env *Environment) GetVariableUpdate() bool {
	return env.updated.Swap(false)
}

func (env *Environment) SetSupportNoGame(support bool) bool {
	return true
}

func (env *Environment) SetInputDescriptors(desc []input.Descriptor) bool {
	env.crit.Lock()
	defer env.crit.Unlock()
	env.descriptors = desc
	return true
}

// Descriptors returns the input descriptors given by the core.
func (env *Environment) Descriptors() []input.Descriptor {
	env.crit.Lock()
	defer env.crit.Unlock()
	return env.descriptors
}

func (env *Environment) SetControllerInfo(info [][]input.ControllerDescription) bool {
	env.crit.Lock()
	defer env.crit.Unlock()
	env.controllers = info
	return true
}

func (env *Environment) GetInputBitmasks() bool {
	return true
}

func (env *Environment) GetSystemDirectory() (string, bool) {
	return env.SystemDir, env.SystemDir != ""
}

func (env *Environment) GetSaveDirectory() (string, bool) {
	return env.SaveDir, env.SaveDir != ""
}

func (env *Environment) GetCanDupe() bool {
	return true
}

// accepts returns true if the request is allowed by the profile and maximum
// version
func (env *Environment) accepts(hw *libretro.HWRender) bool {
	switch hw.ContextType {
	case libretro.HWContextOpenGLCore:
		if env.Profile == ProfileCompatibility {
			return false
		}
	case libretro.HWContextOpenGL:
		if env.Profile == ProfileCore {
			return false
		}
	default:
		return false
	}

	if env.MaxMajor == 0 {
		return true
	}
	if hw.VersionMajor != env.MaxMajor {
		return hw.VersionMajor < env.MaxMajor
	}
	return hw.VersionMinor <= env.MaxMinor
}

func (env *Environment) SetHWRender(hw *libretro.HWRender) bool {
	env.crit.Lock()
	defer env.crit.Unlock()

	req := libretro.HWRenderRequest{
		ContextType:  hw.ContextType,
		VersionMajor: hw.VersionMajor,
		VersionMinor: hw.VersionMinor,
	}
	env.requests = append(env.requests, req)

	if !env.accepts(hw) {
		logger.Logf(logger.Allow, logTag, "rejected %s", req)
		return false
	}
	logger.Logf(logger.Allow, logTag, "accepted %s", req)

	// the core always renders to the window's default framebuffer
	hw.GetCurrentFramebuffer = func() uint32 {
		return 0
	}
	hw.GetProcAddress = func(name string) unsafe.Pointer {
		if env.procAddr == nil {
			return nil
		}
		return env.procAddr(name)
	}
	env.hw = hw

	return true
}

// HWRender returns the accepted hardware render request. Nil if no request
// has been accepted.
func (env *Environment) HWRender() *libretro.HWRender {
	env.crit.Lock()
	defer env.crit.Unlock()
	return env.hw
}

// Requests returns every hardware render request made by the core, in
// order.
func (env *Environment) Requests() []libretro.HWRenderRequest {
	env.crit.Lock()
	defer env.crit.Unlock()
	return env.requests
}

// forget the accepted request. called when the content is unloaded
func (env *Environment) resetHWRender() {
	env.crit.Lock()
	defer env.crit.Unlock()
	env.hw = nil
	env.requests = nil
}

func (env *Environment) SetMessage(msg string, frames uint) bool {
	env.crit.Lock()
	defer env.crit.Unlock()
	env.messages = append(env.messages, msg)
	logger.Logf(logger.Allow, logTag, "message: %s", msg)
	return true
}

// Messages returns every message shown by the core.
func (env *Environment) Messages() []string {
	env.crit.Lock()
	defer env.crit.Unlock()
	return env.messages
}
