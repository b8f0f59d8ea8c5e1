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

import "github.com/jetsetilly/retrobridge/emulator"

// Descriptor labels one input for the host.
type Descriptor struct {
	Port        uint
	Device      uint
	Index       uint
	ID          uint
	Description string
}

var buttonLabels = []struct {
	id    uint
	label string
}{
	{JoypadB, "Cross"},
	{JoypadY, "Square"},
	{JoypadSelect, "Select"},
	{JoypadStart, "Start"},
	{JoypadUp, "D-Pad Up"},
	{JoypadDown, "D-Pad Down"},
	{JoypadLeft, "D-Pad Left"},
	{JoypadRight, "D-Pad Right"},
	{JoypadA, "Circle"},
	{JoypadX, "Triangle"},
	{JoypadL, "L1"},
	{JoypadR, "R1"},
	{JoypadL2, "L2"},
	{JoypadR2, "R2"},
	{JoypadL3, "L3"},
	{JoypadR3, "R3"},
}

// Descriptors returns the input descriptors for the first two ports.
func Descriptors() []Descriptor {
	var d []Descriptor
	for port := range uint(2) {
		for _, b := range buttonLabels {
			d = append(d, Descriptor{Port: port, Device: DeviceJoypad, ID: b.id, Description: b.label})
		}
		d = append(d,
			Descriptor{Port: port, Device: DeviceAnalog, Index: AnalogLeft, ID: AnalogX, Description: "Left Analog X"},
			Descriptor{Port: port, Device: DeviceAnalog, Index: AnalogLeft, ID: AnalogY, Description: "Left Analog Y"},
			Descriptor{Port: port, Device: DeviceAnalog, Index: AnalogRight, ID: AnalogX, Description: "Right Analog X"},
			Descriptor{Port: port, Device: DeviceAnalog, Index: AnalogRight, ID: AnalogY, Description: "Right Analog Y"},
		)
	}
	return d
}

// ControllerDescription names a device type.
type ControllerDescription struct {
	Description string
	ID          uint
}

// ControllerInfo returns the device types supported by each port.
func ControllerInfo() [][]ControllerDescription {
	info := make([][]ControllerDescription, emulator.MaxPads)
	for i := range info {
		info[i] = []ControllerDescription{
			{Description: "RetroPad", ID: DeviceJoypad},
			{Description: "None", ID: DeviceNone},
		}
	}
	return info
}
