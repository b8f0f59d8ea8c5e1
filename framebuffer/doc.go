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

// Package framebuffer manages the shared render target that carries frames
// from the emulator's render context to the host's presentation context.
//
// Framebuffer objects cannot be shared between GL contexts but textures can.
// The Shared type therefore owns a single texture and two framebuffer
// objects, one for each context, both with the texture as the color
// attachment. The producer framebuffer also has a depth/stencil
// renderbuffer.
//
// Functions are divided by the thread that may call them. The producer
// functions (EnsureCapacity, ProducerTarget and DestroyProducer) must only be
// called by the render thread with the producer context current. The
// consumer functions (ConsumerView, PresentBlit and DestroyConsumer) must only
// be called by the presentation thread with the host context current.
package framebuffer
