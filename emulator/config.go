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

import "fmt"

// Config is the part of the emulator's configuration that the host can
// change through core options.
type Config struct {
	Renderer Renderer

	// resolution of the render target
	Width  int
	Height int

	// frames per second. zero means no limit
	FrameLimit float64

	// the host controls presentation so vsync is always off in practice
	VSync bool

	CPUDecoder         string
	CoprocessorDecoder string
}

// DefaultConfig returns the configuration used before the host's options are
// applied.
func DefaultConfig() Config {
	return Config{
		Renderer:           OpenGL,
		Width:              1280,
		Height:             720,
		CPUDecoder:         "Recompiler (LLVM)",
		CoprocessorDecoder: "Recompiler (LLVM)",
	}
}

func (c Config) String() string {
	limit := "unlimited"
	if c.FrameLimit > 0 {
		limit = fmt.Sprintf("%gfps", c.FrameLimit)
	}
	return fmt.Sprintf("%s %dx%d %s", c.Renderer, c.Width, c.Height, limit)
}
