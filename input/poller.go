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

import (
	"sync"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/logger"
)

// StateFunc is the host's input state query.
type StateFunc func(port uint, device uint, index uint, id uint) int16

// Raw is the state of one port as reported by the host.
type Raw struct {
	Connected bool

	// one bit per button, numbered by the Joypad IDs
	Buttons uint16

	// left X, left Y, right X, right Y in the range -32768 to 32767
	Analog [emulator.PadAnalogAxes]int16
}

// Poller queries the host for input state.
type Poller struct {
	crit sync.Mutex

	bitmask bool
	devices [emulator.MaxPads]uint
	raw     [emulator.MaxPads]Raw
	mouse   emulator.MouseState
	keys    [MaxKeys]bool
}

// NewPoller is the preferred method of initialisation for the Poller type.
// All ports start with a joypad connected.
func NewPoller() *Poller {
	p := &Poller{}
	for i := range p.devices {
		p.devices[i] = DeviceJoypad
		p.raw[i].Connected = true
	}
	return p
}

// SetBitmaskSupported sets whether the host can report all buttons in a
// single query.
func (p *Poller) SetBitmaskSupported(supported bool) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.bitmask = supported
}

// BitmaskSupported returns the value set by SetBitmaskSupported().
func (p *Poller) BitmaskSupported() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.bitmask
}

// SetController sets the device type for a port. Out of range ports are
// ignored.
func (p *Poller) SetController(port uint, device uint) {
	if port >= emulator.MaxPads {
		logger.Logf(logger.Allow, "input", "ignoring controller for port %d", port)
		return
	}

	p.crit.Lock()
	defer p.crit.Unlock()
	p.devices[port] = device
	p.raw[port].Connected = device != DeviceNone
}

// Controller returns the device type for a port.
func (p *Poller) Controller(port uint) uint {
	if port >= emulator.MaxPads {
		return DeviceNone
	}
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.devices[port]
}

// Poll the host for the current input state.
func (p *Poller) Poll(state StateFunc) {
	if state == nil {
		return
	}

	p.crit.Lock()
	defer p.crit.Unlock()

	for port := range uint(emulator.MaxPads) {
		raw := &p.raw[port]

		if p.devices[port] == DeviceNone {
			raw.Connected = false
			continue
		}
		raw.Connected = true

		if p.bitmask {
			raw.Buttons = uint16(state(port, DeviceJoypad, 0, JoypadMask))
		} else {
			raw.Buttons = 0
			for b := range uint(emulator.PadButtons) {
				if state(port, DeviceJoypad, 0, b) != 0 {
					raw.Buttons |= 1 << b
				}
			}
		}

		raw.Analog[emulator.LeftX] = state(port, DeviceAnalog, AnalogLeft, AnalogX)
		raw.Analog[emulator.LeftY] = state(port, DeviceAnalog, AnalogLeft, AnalogY)
		raw.Analog[emulator.RightX] = state(port, DeviceAnalog, AnalogRight, AnalogX)
		raw.Analog[emulator.RightY] = state(port, DeviceAnalog, AnalogRight, AnalogY)
	}

	// mouse and pointer are always on port zero
	pressed := func(device uint, id uint) bool {
		return state(0, device, 0, id) != 0
	}

	p.mouse = emulator.MouseState{
		X:         state(0, DeviceMouse, 0, MouseX),
		Y:         state(0, DeviceMouse, 0, MouseY),
		PointerX:  state(0, DevicePointer, 0, PointerX),
		PointerY:  state(0, DevicePointer, 0, PointerY),
		Left:      pressed(DeviceMouse, MouseLeft),
		Right:     pressed(DeviceMouse, MouseRight),
		Middle:    pressed(DeviceMouse, MouseMiddle),
		Button4:   pressed(DeviceMouse, MouseButton4),
		Button5:   pressed(DeviceMouse, MouseButton5),
		WheelUp:   pressed(DeviceMouse, MouseWheelUp),
		WheelDown: pressed(DeviceMouse, MouseWheelDown),
	}

	for _, k := range polledKeys {
		p.keys[k] = pressed(DeviceKeyboard, uint(k))
	}
}

// Raw returns the state of a port. Out of range ports return the zero value.
func (p *Poller) Raw(port uint) Raw {
	if port >= emulator.MaxPads {
		return Raw{}
	}
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.raw[port]
}

// Button returns true if the button is pressed on the port.
func (p *Poller) Button(port uint, button uint) bool {
	if button >= emulator.PadButtons {
		return false
	}
	return p.Raw(port).Buttons&(1<<button) != 0
}

// Analog returns the value of an analog axis. The index selects the stick
// and the id selects the axis.
func (p *Poller) Analog(port uint, index uint, id uint) int16 {
	axis := index*2 + id
	if axis >= emulator.PadAnalogAxes {
		return 0
	}
	return p.Raw(port).Analog[axis]
}

// Mouse returns the most recently polled mouse state.
func (p *Poller) Mouse() emulator.MouseState {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.mouse
}

// KeyPressed returns true if the key was pressed at the most recent poll.
func (p *Poller) KeyPressed(code uint16) bool {
	if int(code) >= MaxKeys {
		return false
	}
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.keys[code]
}

// Keys returns the codes of all keys pressed at the most recent poll.
func (p *Poller) Keys() []uint16 {
	p.crit.Lock()
	defer p.crit.Unlock()

	var keys []uint16
	for _, k := range polledKeys {
		if p.keys[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
