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

// Package gpu defines the subset of OpenGL used by the bridge. The GL
// interface is implemented by the gl32 package for real contexts and by the
// fakegl package for testing.
//
// Only texture, renderbuffer and sync objects are shared between contexts.
// Framebuffer objects belong to the context that created them and must only
// be used while that context is current. The framebuffer package arranges
// for this.
//
// Sync and Context are opaque handles. The zero value of either means "no
// object".
package gpu
