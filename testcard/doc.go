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

// Package testcard is a small emulator that implements the emulator.Emulator
// interface. It does not emulate anything. It draws scrolling colour bars to
// the render surface and plays a tone, which is enough to exercise every part
// of the bridge.
//
// Any non-empty file can be booted. The colours of the bars are seeded from
// the content of the file. An mp3 file is played as the soundtrack in place
// of the tone.
//
// The bars are tinted by the state of the first controller. The A, B, X and Y
// buttons tint the bars red, green, blue and white respectively. The left
// analog stick moves a marker around the screen.
package testcard
