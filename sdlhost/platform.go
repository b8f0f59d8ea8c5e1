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
	"sync/atomic"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
)

// platform implements contextpool.Platform with SDL
type platform struct {
	window    *sdl.Window
	offscreen *sdl.Window
	main      sdl.GLContext

	// shared contexts can only be created while sharing is true
	sharing atomic.Bool
}

func toContext(ctx sdl.GLContext) gpu.Context {
	return gpu.Context(uintptr(unsafe.Pointer(ctx)))
}

func fromContext(ctx gpu.Context) sdl.GLContext {
	return sdl.GLContext(unsafe.Pointer(uintptr(ctx)))
}

func (plt *platform) Main() gpu.Context {
	return toContext(plt.main)
}

func (plt *platform) CreateShared() (gpu.Context, error) {
	if !plt.sharing.Load() {
		return 0, fmt.Errorf("sdl: main context is in use")
	}

	// the new context shares with whatever context is current
	if err := plt.offscreen.GLMakeCurrent(plt.main); err != nil {
		return 0, fmt.Errorf("sdl: %w", err)
	}
	defer func() {
		_ = plt.offscreen.GLMakeCurrent(nil)
	}()

	if err := sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, 1); err != nil {
		return 0, fmt.Errorf("sdl: %w", err)
	}
	ctx, err := plt.offscreen.GLCreateContext()
	if err != nil {
		return 0, fmt.Errorf("sdl: %w", err)
	}

	return toContext(ctx), nil
}

func (plt *platform) CreateUnshared() (gpu.Context, error) {
	if err := sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, 0); err != nil {
		return 0, fmt.Errorf("sdl: %w", err)
	}
	ctx, err := plt.offscreen.GLCreateContext()
	if err != nil {
		return 0, fmt.Errorf("sdl: %w", err)
	}
	_ = plt.offscreen.GLMakeCurrent(nil)

	logger.Log(logger.Allow, logTag, "created unshared context")

	return toContext(ctx), nil
}

func (plt *platform) MakeCurrent(ctx gpu.Context) error {
	var err error
	switch ctx {
	case 0:
		err = plt.window.GLMakeCurrent(nil)
	case plt.Main():
		err = plt.window.GLMakeCurrent(plt.main)
	default:
		err = plt.offscreen.GLMakeCurrent(fromContext(ctx))
	}
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	return nil
}

func (plt *platform) Delete(ctx gpu.Context) error {
	if ctx == 0 || ctx == plt.Main() {
		return nil
	}
	sdl.GLDeleteContext(fromContext(ctx))
	return nil
}
