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

// Package gl32 implements the gpu.GL interface with the OpenGL 3.2 core
// bindings from go-gl.
//
// The bindings are global to the process and are loaded once with a proc
// address function supplied by the host. All contexts that use the bindings
// must be compatible with the context that was current when they were
// loaded.
package gl32

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
)

// ProcAddrFunc returns the address of the named GL function. It returns nil
// if the function is not available.
type ProcAddrFunc func(name string) unsafe.Pointer

// the bindings are loaded only once
var load struct {
	once         sync.Once
	err          error
	supportsSync bool
}

type gl32 struct {
	supportsSync bool
}

// New loads the GL bindings (on first call only) using the proc address
// function and returns an implementation of gpu.GL. A GL context must be
// current on the calling thread.
func New(procAddr ProcAddrFunc) (gpu.GL, error) {
	load.once.Do(func() {
		if err := gl.InitWithProcAddrFunc(procAddr); err != nil {
			load.err = err
			return
		}
		load.supportsSync = procAddr("glFenceSync") != nil &&
			procAddr("glClientWaitSync") != nil &&
			procAddr("glDeleteSync") != nil

		logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
		logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
		logger.Logf(logger.Allow, "gl32", "version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
		if !load.supportsSync {
			logger.Log(logger.Allow, "gl32", "fence objects not supported")
		}
	})

	if load.err != nil {
		return nil, fmt.Errorf("gl32: %w", load.err)
	}

	return &gl32{supportsSync: load.supportsSync}, nil
}

func (g *gl32) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

func (g *gl32) TexStorage(tex uint32, width int32, height int32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (g *gl32) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (g *gl32) GenRenderbuffer() uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return rb
}

func (g *gl32) RenderbufferStorage(rb uint32, width int32, height int32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, rb)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (g *gl32) DeleteRenderbuffer(rb uint32) {
	gl.DeleteRenderbuffers(1, &rb)
}

func (g *gl32) GenFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return fbo
}

func (g *gl32) FramebufferTexture(fbo uint32, tex uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
}

func (g *gl32) FramebufferRenderbuffer(fbo uint32, rb uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, rb)
}

func (g *gl32) CheckFramebufferStatus(fbo uint32) gpu.FramebufferStatus {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	return gpu.FramebufferStatus(gl.CheckFramebufferStatus(gl.FRAMEBUFFER))
}

func (g *gl32) DeleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
}

func (g *gl32) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (g *gl32) BlitFramebuffer(src uint32, dst uint32, width int32, height int32) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, src)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst)
	gl.BlitFramebuffer(0, 0, width, height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, dst)
}

func (g *gl32) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (g *gl32) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (g *gl32) GetViewport() (x, y, width, height int32) {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return v[0], v[1], v[2], v[3]
}

func (g *gl32) FillRect(x, y, width, height int32, red, green, blue float32) {
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, width, height)
	gl.ClearColor(red, green, blue, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

func (g *gl32) SupportsSync() bool {
	return g.supportsSync
}

func (g *gl32) FenceSync() gpu.Sync {
	return gpu.Sync(gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0))
}

func (g *gl32) ClientWaitSync(s gpu.Sync, timeout time.Duration) gpu.WaitResult {
	switch gl.ClientWaitSync(uintptr(s), gl.SYNC_FLUSH_COMMANDS_BIT, uint64(timeout.Nanoseconds())) {
	case gl.ALREADY_SIGNALED:
		return gpu.AlreadySignaled
	case gl.CONDITION_SATISFIED:
		return gpu.ConditionSatisfied
	case gl.TIMEOUT_EXPIRED:
		return gpu.TimeoutExpired
	}
	return gpu.WaitFailed
}

func (g *gl32) DeleteSync(s gpu.Sync) {
	gl.DeleteSync(uintptr(s))
}

func (g *gl32) Flush() {
	gl.Flush()
}
