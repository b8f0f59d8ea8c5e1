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

package gpu

import "time"

// Sync is a handle to a GPU fence object.
type Sync uintptr

// Context is a handle to a GL context. What the value refers to depends on
// the platform that created it.
type Context uintptr

// WaitResult is returned by ClientWaitSync.
type WaitResult int

// List of possible WaitResult values.
const (
	AlreadySignaled WaitResult = iota
	ConditionSatisfied
	TimeoutExpired
	WaitFailed
)

func (r WaitResult) String() string {
	switch r {
	case AlreadySignaled:
		return "already signaled"
	case ConditionSatisfied:
		return "condition satisfied"
	case TimeoutExpired:
		return "timeout expired"
	case WaitFailed:
		return "wait failed"
	}
	return "unknown"
}

// Signaled returns true if the result means that the fence was signaled.
func (r WaitResult) Signaled() bool {
	return r == AlreadySignaled || r == ConditionSatisfied
}

// FramebufferStatus is the result of a framebuffer completeness check.
type FramebufferStatus uint32

// FramebufferComplete is the only status that indicates a usable framebuffer.
// It has the same value as GL_FRAMEBUFFER_COMPLETE.
const FramebufferComplete FramebufferStatus = 0x8cd5

// GL is the set of OpenGL operations needed by the bridge. Every function
// operates on the context that is current on the calling thread.
type GL interface {
	// textures are always RGBA8 with nearest filtering. TexStorage
	// (re)allocates storage for the texture with undefined content
	GenTexture() uint32
	TexStorage(tex uint32, width int32, height int32)
	DeleteTexture(tex uint32)

	// renderbuffers are always depth24/stencil8
	GenRenderbuffer() uint32
	RenderbufferStorage(rb uint32, width int32, height int32)
	DeleteRenderbuffer(rb uint32)

	// the framebuffer functions leave the framebuffer bound as the draw and
	// read framebuffer
	GenFramebuffer() uint32
	FramebufferTexture(fbo uint32, tex uint32)
	FramebufferRenderbuffer(fbo uint32, rb uint32)
	CheckFramebufferStatus(fbo uint32) FramebufferStatus
	DeleteFramebuffer(fbo uint32)

	// BindFramebuffer binds the framebuffer as the draw and read framebuffer.
	// framebuffer zero is the default framebuffer of the context
	BindFramebuffer(fbo uint32)

	// BlitFramebuffer copies the color buffer of the src framebuffer to the
	// dst framebuffer without scaling
	BlitFramebuffer(src uint32, dst uint32, width int32, height int32)

	UseProgram(program uint32)
	Viewport(x, y, width, height int32)
	GetViewport() (x, y, width, height int32)

	// FillRect fills the rectangle of the bound framebuffer with a color
	FillRect(x, y, width, height int32, r, g, b float32)

	// SupportsSync returns false if the platform does not have fence objects.
	// the other sync functions must not be called if this is false
	SupportsSync() bool
	FenceSync() Sync
	ClientWaitSync(s Sync, timeout time.Duration) WaitResult
	DeleteSync(s Sync)

	Flush()
}
