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

// Package input polls the host for the state of controllers, the mouse and
// the keyboard.
//
// The Poller type asks the host for input state through a StateFunc, once
// per presentation tick. The PadHandler converts the raw state into the
// emulator.PadState values read by the emulator. Pad values are published
// atomically with respect to the emulator so the emulator can read them from
// any goroutine.
//
// Descriptors() and ControllerInfo() describe the supported controllers and
// their button labels for the host.
package input
