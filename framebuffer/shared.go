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

package framebuffer

import (
	"sync/atomic"

	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
)

// Default size of the shared render target if it is created by
// ProducerTarget() before any call to EnsureCapacity().
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// IncompleteFramebuffer is the pattern of the error logged when a
// framebuffer fails the completeness check.
const IncompleteFramebuffer = "framebuffer: %s framebuffer incomplete: %#x"

// Shared is the shared render target and the two framebuffers that refer to
// it.
type Shared struct {
	gl gpu.GL

	defaultWidth  int32
	defaultHeight int32

	// the shared texture. read by the consumer so it is atomic
	texture atomic.Uint32

	// width in the upper 32 bits and height in the lower. packed so that the
	// consumer never sees the width of one size with the height of another
	size atomic.Uint64

	// incremented on creation, on every resize and on destruction. the
	// consumer compares its own copy to this value to decide whether its
	// framebuffer is stale
	epoch atomic.Uint64

	// producer side
	producer     uint32
	renderbuffer uint32

	// consumer side
	consumer      uint32
	consumerEpoch uint64
}

// NewShared is the preferred method of initialisation for the Shared type.
// No GL objects are created until the first call to EnsureCapacity() or
// ProducerTarget().
func NewShared(gl gpu.GL) *Shared {
	return &Shared{
		gl:            gl,
		defaultWidth:  DefaultWidth,
		defaultHeight: DefaultHeight,
	}
}

// SetDefaultSize changes the size used by ProducerTarget() when it creates
// the render target. It has no effect once the target has been created.
func (sh *Shared) SetDefaultSize(width int32, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	sh.defaultWidth = width
	sh.defaultHeight = height
}

// EnsureCapacity makes sure that the render target is at least the requested
// size. The first call creates the texture, the producer framebuffer and its
// renderbuffer. Later calls grow the storage of the existing objects if
// either dimension is larger than the current size. The target never
// shrinks.
//
// Returns true if the target was created or resized.
func (sh *Shared) EnsureCapacity(width int32, height int32) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	if sh.texture.Load() == 0 {
		sh.create(width, height)
		return true
	}

	w, h := sh.Dimensions()
	if width <= w && height <= h {
		return false
	}

	w = max(w, width)
	h = max(h, height)

	// same handles, new storage
	sh.gl.TexStorage(sh.texture.Load(), w, h)
	sh.gl.RenderbufferStorage(sh.renderbuffer, w, h)
	sh.setDimensions(w, h)
	sh.epoch.Add(1)

	logger.Logf(logger.Allow, "framebuffer", "resized to %dx%d", w, h)

	return true
}

func (sh *Shared) create(width int32, height int32) {
	tex := sh.gl.GenTexture()
	sh.gl.TexStorage(tex, width, height)

	sh.renderbuffer = sh.gl.GenRenderbuffer()
	sh.gl.RenderbufferStorage(sh.renderbuffer, width, height)

	sh.producer = sh.gl.GenFramebuffer()
	sh.gl.FramebufferTexture(sh.producer, tex)
	sh.gl.FramebufferRenderbuffer(sh.producer, sh.renderbuffer)
	if status := sh.gl.CheckFramebufferStatus(sh.producer); status != gpu.FramebufferComplete {
		logger.Log(logger.Allow, "framebuffer", curated.Errorf(IncompleteFramebuffer, "producer", uint32(status)))
	}
	sh.gl.BindFramebuffer(0)

	sh.setDimensions(width, height)
	sh.epoch.Add(1)

	// the texture is stored last. the consumer will not use the render target
	// until it sees a non-zero texture
	sh.texture.Store(tex)

	logger.Logf(logger.Allow, "framebuffer", "created at %dx%d", width, height)
}

// ProducerTarget returns the producer framebuffer, creating the render target
// at the default size if necessary.
func (sh *Shared) ProducerTarget() uint32 {
	if sh.texture.Load() == 0 {
		sh.EnsureCapacity(sh.defaultWidth, sh.defaultHeight)
	}
	return sh.producer
}

// DestroyProducer deletes the texture, the producer framebuffer and the
// renderbuffer. The render target can be created again with
// EnsureCapacity().
func (sh *Shared) DestroyProducer() {
	tex := sh.texture.Swap(0)
	if tex == 0 {
		return
	}

	// the consumer will see a zero texture and stop using the render target
	sh.epoch.Add(1)

	sh.gl.DeleteFramebuffer(sh.producer)
	sh.gl.DeleteRenderbuffer(sh.renderbuffer)
	sh.producer = 0
	sh.renderbuffer = 0
	sh.gl.DeleteTexture(tex)
	sh.setDimensions(0, 0)
}

// ConsumerView returns the consumer framebuffer. The framebuffer is created
// on first use and recreated if the render target has been resized since it
// was created. Returns zero if the render target does not exist.
func (sh *Shared) ConsumerView() uint32 {
	tex := sh.texture.Load()
	if tex == 0 {
		return 0
	}
	epoch := sh.epoch.Load()

	if sh.consumer != 0 && sh.consumerEpoch == epoch {
		return sh.consumer
	}

	if sh.consumer != 0 {
		sh.gl.DeleteFramebuffer(sh.consumer)
	}

	sh.consumer = sh.gl.GenFramebuffer()
	sh.consumerEpoch = epoch
	sh.gl.FramebufferTexture(sh.consumer, tex)
	if status := sh.gl.CheckFramebufferStatus(sh.consumer); status != gpu.FramebufferComplete {
		logger.Log(logger.Allow, "framebuffer", curated.Errorf(IncompleteFramebuffer, "consumer", uint32(status)))
	}

	return sh.consumer
}

// PresentBlit copies the render target to the destination framebuffer
// without scaling. Returns false and does nothing if the render target does
// not exist.
func (sh *Shared) PresentBlit(dst uint32) bool {
	view := sh.ConsumerView()
	if view == 0 {
		return false
	}
	w, h := sh.Dimensions()
	sh.gl.BlitFramebuffer(view, dst, w, h)
	return true
}

// DestroyConsumer deletes the consumer framebuffer.
func (sh *Shared) DestroyConsumer() {
	if sh.consumer == 0 {
		return
	}
	sh.gl.DeleteFramebuffer(sh.consumer)
	sh.consumer = 0
	sh.consumerEpoch = 0
}

// Dimensions returns the size of the render target. Zero if it has not been
// created.
func (sh *Shared) Dimensions() (width int32, height int32) {
	v := sh.size.Load()
	return int32(v >> 32), int32(v & 0xffffffff)
}

func (sh *Shared) setDimensions(width int32, height int32) {
	sh.size.Store(uint64(uint32(width))<<32 | uint64(uint32(height)))
}

// Epoch returns the number of times the render target has been created,
// resized or destroyed.
func (sh *Shared) Epoch() uint64 {
	return sh.epoch.Load()
}

// Texture returns the shared texture. Zero if it does not exist.
func (sh *Shared) Texture() uint32 {
	return sh.texture.Load()
}
