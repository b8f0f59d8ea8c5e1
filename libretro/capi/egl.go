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

// #cgo LDFLAGS: -lEGL
// #include <EGL/egl.h>
// #include <EGL/eglext.h>
import "C"

import (
	"strings"
	"unsafe"

	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/libretro"
	"github.com/jetsetilly/retrobridge/logger"
)

// eglPlatform creates contexts that share objects with the host's context.
// the contexts have no surface. the producer always renders to a
// framebuffer object
type eglPlatform struct {
	display C.EGLDisplay
	config  C.EGLConfig
	main    C.EGLContext
	attribs []C.EGLint

	// the host's surfaces. the main context is always made current with these
	draw C.EGLSurface
	read C.EGLSurface
}

// newEGLPlatform must be called with the host's context current. the
// contexts created by the platform have the same version and profile as the
// accepted hardware render request
func newEGLPlatform(hw *libretro.HWRender) (*eglPlatform, error) {
	plt := &eglPlatform{
		display: C.eglGetCurrentDisplay(),
		main:    C.eglGetCurrentContext(),
		draw:    C.eglGetCurrentSurface(C.EGL_DRAW),
		read:    C.eglGetCurrentSurface(C.EGL_READ),
	}

	if plt.display == 0 || plt.main == nil {
		return nil, curated.Errorf("egl: host context is not an EGL context")
	}

	ext := C.GoString(C.eglQueryString(plt.display, C.EGL_EXTENSIONS))
	if !strings.Contains(ext, "EGL_KHR_surfaceless_context") {
		return nil, curated.Errorf("egl: surfaceless contexts not supported")
	}

	var id C.EGLint
	if C.eglQueryContext(plt.display, plt.main, C.EGL_CONFIG_ID, &id) == C.EGL_FALSE {
		return nil, curated.Errorf("egl: %v", eglError())
	}

	// a host context created without a config has an ID of zero
	if id != 0 {
		attr := []C.EGLint{C.EGL_CONFIG_ID, id, C.EGL_NONE}
		var n C.EGLint
		if C.eglChooseConfig(plt.display, &attr[0], &plt.config, 1, &n) == C.EGL_FALSE || n == 0 {
			return nil, curated.Errorf("egl: no config for host context: %v", eglError())
		}
	}

	plt.attribs = []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION_KHR, C.EGLint(3),
		C.EGL_CONTEXT_MINOR_VERSION_KHR, C.EGLint(0),
	}
	if hw != nil {
		plt.attribs[1] = C.EGLint(hw.VersionMajor)
		plt.attribs[3] = C.EGLint(hw.VersionMinor)
		if hw.ContextType == libretro.HWContextOpenGLCore {
			plt.attribs = append(plt.attribs, C.EGL_CONTEXT_OPENGL_PROFILE_MASK_KHR, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT_KHR)
		}
	}
	plt.attribs = append(plt.attribs, C.EGL_NONE)

	logger.Logf(logger.Allow, logTag, "EGL platform: config %d, GL %d.%d, host surface %v", id, plt.attribs[1], plt.attribs[3], plt.draw != nil)

	return plt, nil
}

type eglErrorCode C.EGLint

func (e eglErrorCode) Error() string {
	switch e {
	case C.EGL_BAD_ACCESS:
		return "bad access"
	case C.EGL_BAD_ALLOC:
		return "bad alloc"
	case C.EGL_BAD_ATTRIBUTE:
		return "bad attribute"
	case C.EGL_BAD_CONFIG:
		return "bad config"
	case C.EGL_BAD_CONTEXT:
		return "bad context"
	case C.EGL_BAD_DISPLAY:
		return "bad display"
	case C.EGL_BAD_MATCH:
		return "bad match"
	}
	return "unknown error"
}

func eglError() error {
	return eglErrorCode(C.eglGetError())
}

func (plt *eglPlatform) create(share C.EGLContext) (gpu.Context, error) {
	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		return 0, curated.Errorf("egl: %v", eglError())
	}
	ctx := C.eglCreateContext(plt.display, plt.config, share, &plt.attribs[0])
	if ctx == nil {
		return 0, curated.Errorf("egl: %v", eglError())
	}
	return gpu.Context(uintptr(unsafe.Pointer(ctx))), nil
}

func (plt *eglPlatform) Main() gpu.Context {
	return gpu.Context(uintptr(unsafe.Pointer(plt.main)))
}

func (plt *eglPlatform) CreateShared() (gpu.Context, error) {
	return plt.create(plt.main)
}

func (plt *eglPlatform) CreateUnshared() (gpu.Context, error) {
	return plt.create(nil)
}

func (plt *eglPlatform) MakeCurrent(ctx gpu.Context) error {
	c := C.EGLContext(unsafe.Pointer(uintptr(ctx)))
	draw, read := surfaces(c, plt.main, plt.draw, plt.read)
	if C.eglMakeCurrent(plt.display, draw, read, c) == C.EGL_FALSE {
		return curated.Errorf("egl: %v", eglError())
	}
	return nil
}

// surfaces returns the draw and read surfaces to bind with a context. the
// host's context gets the host's surfaces back. every other context, and the
// detach request, is bound without a surface
func surfaces[Ctx comparable, Surf comparable](ctx Ctx, main Ctx, draw Surf, read Surf) (Surf, Surf) {
	var none Surf
	if ctx == main {
		return draw, read
	}
	return none, none
}

func (plt *eglPlatform) Delete(ctx gpu.Context) error {
	if ctx == 0 || ctx == plt.Main() {
		return nil
	}
	c := C.EGLContext(unsafe.Pointer(uintptr(ctx)))
	if C.eglDestroyContext(plt.display, c) == C.EGL_FALSE {
		return curated.Errorf("egl: %v", eglError())
	}
	return nil
}
