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

// Package audio connects the emulator's audio output to the host.
//
// The Backend type is the audio device given to the emulator. The emulator
// sets a write callback and the backend pulls samples from it into a ring
// buffer when the host asks for samples with GetSamples(). Samples are
// always returned to the host as signed 16bit interleaved stereo.
//
// Drain() is used by the presentation driver to move samples from the
// backend to the host in bounded batches.
package audio
