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

package input

// Device types.
const (
	DeviceNone     uint = 0
	DeviceJoypad   uint = 1
	DeviceMouse    uint = 2
	DeviceKeyboard uint = 3
	DeviceAnalog   uint = 5
	DevicePointer  uint = 6
)

// Joypad button IDs.
const (
	JoypadB uint = iota
	JoypadY
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
	JoypadA
	JoypadX
	JoypadL
	JoypadR
	JoypadL2
	JoypadR2
	JoypadL3
	JoypadR3

	// requests all buttons as a bitmask in a single call
	JoypadMask
)

// Analog stick indexes and axis IDs.
const (
	AnalogLeft  uint = 0
	AnalogRight uint = 1
	AnalogX     uint = 0
	AnalogY     uint = 1
)

// Mouse IDs.
const (
	MouseX uint = iota
	MouseY
	MouseLeft
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseMiddle
	MouseHorizWheelUp
	MouseHorizWheelDown
	MouseButton4
	MouseButton5
)

// Pointer IDs.
const (
	PointerX uint = 0
	PointerY uint = 1
)

// MaxKeys is the number of key codes tracked.
const MaxKeys = 320

// the keys polled each tick. a subset of the full range of key codes
var polledKeys = []uint16{
	8, 9, 13, 27, 32, // backspace, tab, return, escape, space
	48, 49, 50, 51, 52, 53, 54, 55, 56, 57, // 0 to 9
	97, 98, 99, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109, // a to m
	110, 111, 112, 113, 114, 115, 116, 117, 118, 119, 120, 121, 122, // n to z
	127,                // delete
	273, 274, 275, 276, // up, down, right, left
	277, 278, 279, 280, 281, // insert, home, end, page up, page down
	282, 283, 284, 285, 286, 287, 288, 289, 290, 291, 292, 293, // F1 to F12
	303, 304, 305, 306, 307, 308, // right/left shift, ctrl and alt
}
