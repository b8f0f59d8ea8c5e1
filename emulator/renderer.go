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

package emulator

import "strings"

// Renderer selects how the emulator draws. The renderer is selected once when
// content is loaded and does not change until the content is unloaded.
type Renderer int

// List of valid Renderer values.
const (
	// draw with OpenGL to the shared render target. requires a hardware
	// context from the host
	OpenGL Renderer = iota

	// do not draw anything. the host is told every frame is a duplicate
	Null
)

func (r Renderer) String() string {
	switch r {
	case OpenGL:
		return "opengl"
	case Null:
		return "null"
	}
	return "unknown"
}

// ParseRenderer returns the Renderer named by the string. Comparison is case
// insensitive.
func ParseRenderer(s string) (Renderer, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opengl":
		return OpenGL, true
	case "null":
		return Null, true
	}
	return OpenGL, false
}

// NeedsContext returns true if the renderer needs a hardware context from the
// host before content can be booted.
func (r Renderer) NeedsContext() bool {
	return r == OpenGL
}

// FlipsPerFrame returns the number of times the renderer flips its buffers
// for every frame it produces.
func (r Renderer) FlipsPerFrame() int {
	return 1
}
