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

// Package present implements the per-tick work done on the host's thread
// each time the run entry point is called.
//
// The order of work in a tick is fixed:
//
//  1. record the tick with the watchdog
//  2. reapply the core options if the host says they have changed
//  3. poll input and publish pad state to the emulator
//  4. drain audio to the host
//  5. reset the host context's framebuffer and program bindings
//  6. wait for the most recent frame fence
//  7. present the new frame, or tell the host to reuse the previous one
//
// Steps 5 to 7 require the video resources that exist only after the host's
// context has been reset. Until then every tick reuses the previous frame.
package present
