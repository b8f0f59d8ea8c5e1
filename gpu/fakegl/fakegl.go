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

// Package fakegl is an in-memory implementation of gpu.GL for testing. It
// tracks the lifetime of every object and records the calls made to it so
// that tests can check the order of operations.
//
// Unlike a real GL implementation, a single fakegl.GL can be used from any
// goroutine and stands in for every context in a test.
package fakegl

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jetsetilly/retrobridge/gpu"
)

// Framebuffer records the attachments of a framebuffer object.
type Framebuffer struct {
	Texture      uint32
	Renderbuffer uint32
}

// Blit records a call to BlitFramebuffer.
type Blit struct {
	Src    uint32
	Dst    uint32
	Width  int32
	Height int32

	// the texture attached to the src framebuffer at the time of the blit
	Texture uint32
}

// GL is the fake implementation of gpu.GL.
type GL struct {
	crit sync.Mutex

	noSync     bool
	waitResult gpu.WaitResult
	incomplete bool

	nextObject uint32
	nextSync   gpu.Sync

	textures      map[uint32][2]int32
	renderbuffers map[uint32][2]int32
	framebuffers  map[uint32]*Framebuffer
	syncs         map[gpu.Sync]bool

	bound    uint32
	program  uint32
	viewport [4]int32

	calls  []string
	blits  []Blit
	waited []gpu.Sync
	fills  int
}

// New creates a fake GL with support for fence objects.
func New() *GL {
	return &GL{
		textures:      make(map[uint32][2]int32),
		renderbuffers: make(map[uint32][2]int32),
		framebuffers:  make(map[uint32]*Framebuffer),
		syncs:         make(map[gpu.Sync]bool),
		program:       1,
		viewport:      [4]int32{0, 0, 1280, 720},
	}
}

// NewWithoutSync creates a fake GL without support for fence objects.
func NewWithoutSync() *GL {
	g := New()
	g.noSync = true
	return g
}

func (g *GL) record(pattern string, args ...any) {
	g.calls = append(g.calls, fmt.Sprintf(pattern, args...))
}

func (g *GL) object() uint32 {
	g.nextObject++
	return g.nextObject
}

func (g *GL) GenTexture() uint32 {
	g.crit.Lock()
	defer g.crit.Unlock()
	tex := g.object()
	g.textures[tex] = [2]int32{}
	g.record("GenTexture %d", tex)
	return tex
}

func (g *GL) TexStorage(tex uint32, width int32, height int32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	if _, ok := g.textures[tex]; ok {
		g.textures[tex] = [2]int32{width, height}
	}
	g.record("TexStorage %d %dx%d", tex, width, height)
}

func (g *GL) DeleteTexture(tex uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	delete(g.textures, tex)
	g.record("DeleteTexture %d", tex)
}

func (g *GL) GenRenderbuffer() uint32 {
	g.crit.Lock()
	defer g.crit.Unlock()
	rb := g.object()
	g.renderbuffers[rb] = [2]int32{}
	g.record("GenRenderbuffer %d", rb)
	return rb
}

func (g *GL) RenderbufferStorage(rb uint32, width int32, height int32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	if _, ok := g.renderbuffers[rb]; ok {
		g.renderbuffers[rb] = [2]int32{width, height}
	}
	g.record("RenderbufferStorage %d %dx%d", rb, width, height)
}

func (g *GL) DeleteRenderbuffer(rb uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	delete(g.renderbuffers, rb)
	g.record("DeleteRenderbuffer %d", rb)
}

func (g *GL) GenFramebuffer() uint32 {
	g.crit.Lock()
	defer g.crit.Unlock()
	fbo := g.object()
	g.framebuffers[fbo] = &Framebuffer{}
	g.record("GenFramebuffer %d", fbo)
	return fbo
}

func (g *GL) FramebufferTexture(fbo uint32, tex uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	if f, ok := g.framebuffers[fbo]; ok {
		f.Texture = tex
	}
	g.bound = fbo
	g.record("FramebufferTexture %d %d", fbo, tex)
}

func (g *GL) FramebufferRenderbuffer(fbo uint32, rb uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	if f, ok := g.framebuffers[fbo]; ok {
		f.Renderbuffer = rb
	}
	g.bound = fbo
	g.record("FramebufferRenderbuffer %d %d", fbo, rb)
}

func (g *GL) CheckFramebufferStatus(fbo uint32) gpu.FramebufferStatus {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.bound = fbo
	g.record("CheckFramebufferStatus %d", fbo)
	f, ok := g.framebuffers[fbo]
	if g.incomplete || !ok || f.Texture == 0 {
		return gpu.FramebufferStatus(0x8cd6)
	}
	return gpu.FramebufferComplete
}

func (g *GL) DeleteFramebuffer(fbo uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	delete(g.framebuffers, fbo)
	g.record("DeleteFramebuffer %d", fbo)
}

func (g *GL) BindFramebuffer(fbo uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.bound = fbo
	g.record("BindFramebuffer %d", fbo)
}

func (g *GL) BlitFramebuffer(src uint32, dst uint32, width int32, height int32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	b := Blit{Src: src, Dst: dst, Width: width, Height: height}
	if f, ok := g.framebuffers[src]; ok {
		b.Texture = f.Texture
	}
	g.blits = append(g.blits, b)
	g.bound = dst
	g.record("BlitFramebuffer %d %d %dx%d", src, dst, width, height)
}

func (g *GL) UseProgram(program uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.program = program
	g.record("UseProgram %d", program)
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.viewport = [4]int32{x, y, width, height}
	g.record("Viewport %d %d %d %d", x, y, width, height)
}

func (g *GL) GetViewport() (x, y, width, height int32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.viewport[0], g.viewport[1], g.viewport[2], g.viewport[3]
}

func (g *GL) FillRect(x, y, width, height int32, red, green, blue float32) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.fills++
}

func (g *GL) SupportsSync() bool {
	return !g.noSync
}

func (g *GL) FenceSync() gpu.Sync {
	g.crit.Lock()
	defer g.crit.Unlock()
	if g.noSync {
		panic("fakegl: FenceSync() called without sync support")
	}
	g.nextSync++
	g.syncs[g.nextSync] = true
	g.record("FenceSync %d", g.nextSync)
	return g.nextSync
}

func (g *GL) ClientWaitSync(s gpu.Sync, timeout time.Duration) gpu.WaitResult {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.record("ClientWaitSync %d %v", s, timeout)
	g.waited = append(g.waited, s)
	if _, ok := g.syncs[s]; !ok {
		return gpu.WaitFailed
	}
	return g.waitResult
}

func (g *GL) DeleteSync(s gpu.Sync) {
	g.crit.Lock()
	defer g.crit.Unlock()
	delete(g.syncs, s)
	g.record("DeleteSync %d", s)
}

func (g *GL) Flush() {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.record("Flush")
}

// SetWaitResult changes the result of ClientWaitSync() for live fences. The
// default is gpu.AlreadySignaled.
func (g *GL) SetWaitResult(r gpu.WaitResult) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.waitResult = r
}

// SetIncomplete causes CheckFramebufferStatus() to report every framebuffer
// as incomplete.
func (g *GL) SetIncomplete(incomplete bool) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.incomplete = incomplete
}

// Calls returns a copy of the recorded calls.
func (g *GL) Calls() []string {
	g.crit.Lock()
	defer g.crit.Unlock()
	return slices.Clone(g.calls)
}

// ClearCalls forgets the recorded calls, blits, waits and fills.
func (g *GL) ClearCalls() {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.calls = g.calls[:0]
	g.blits = g.blits[:0]
	g.waited = g.waited[:0]
	g.fills = 0
}

// Blits returns a copy of the recorded blits.
func (g *GL) Blits() []Blit {
	g.crit.Lock()
	defer g.crit.Unlock()
	return slices.Clone(g.blits)
}

// Waited returns the fences passed to ClientWaitSync() in order.
func (g *GL) Waited() []gpu.Sync {
	g.crit.Lock()
	defer g.crit.Unlock()
	return slices.Clone(g.waited)
}

// Fills returns the number of calls to FillRect().
func (g *GL) Fills() int {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.fills
}

// LiveSyncs returns the fences that have been created and not yet deleted,
// in creation order.
func (g *GL) LiveSyncs() []gpu.Sync {
	g.crit.Lock()
	defer g.crit.Unlock()
	s := make([]gpu.Sync, 0, len(g.syncs))
	for k := range g.syncs {
		s = append(s, k)
	}
	slices.Sort(s)
	return s
}

// IsSync returns true if the fence exists and has not been deleted.
func (g *GL) IsSync(s gpu.Sync) bool {
	g.crit.Lock()
	defer g.crit.Unlock()
	_, ok := g.syncs[s]
	return ok
}

// TextureSize returns the size of the texture storage. The ok value is false
// if the texture does not exist.
func (g *GL) TextureSize(tex uint32) (width int32, height int32, ok bool) {
	g.crit.Lock()
	defer g.crit.Unlock()
	sz, ok := g.textures[tex]
	return sz[0], sz[1], ok
}

// RenderbufferSize returns the size of the renderbuffer storage. The ok value
// is false if the renderbuffer does not exist.
func (g *GL) RenderbufferSize(rb uint32) (width int32, height int32, ok bool) {
	g.crit.Lock()
	defer g.crit.Unlock()
	sz, ok := g.renderbuffers[rb]
	return sz[0], sz[1], ok
}

// Framebuffer returns the attachments of the framebuffer. The ok value is
// false if the framebuffer does not exist.
func (g *GL) Framebuffer(fbo uint32) (Framebuffer, bool) {
	g.crit.Lock()
	defer g.crit.Unlock()
	f, ok := g.framebuffers[fbo]
	if !ok {
		return Framebuffer{}, false
	}
	return *f, true
}

// Live returns the number of textures, renderbuffers and framebuffers that
// have not been deleted.
func (g *GL) Live() (textures int, renderbuffers int, framebuffers int) {
	g.crit.Lock()
	defer g.crit.Unlock()
	return len(g.textures), len(g.renderbuffers), len(g.framebuffers)
}

// Bound returns the currently bound framebuffer.
func (g *GL) Bound() uint32 {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.bound
}

// Program returns the current shader program. The initial value is one so
// that tests can see it being reset to zero.
func (g *GL) Program() uint32 {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.program
}
