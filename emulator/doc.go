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

// Package emulator defines the boundary between the bridge and the emulator
// it exposes to the host. The emulator is a black box that is booted with a
// content path and then run, paused and resumed through the Emulator
// interface.
//
// The emulator is given the services it needs through interfaces defined in
// this package. Surface is the render target and the GL contexts. AudioDevice
// receives sound. InputSource provides controller state. Capabilities is a
// table of optional hooks for everything else (dialogs, trophies, etc.), each
// of which can be nil.
package emulator
