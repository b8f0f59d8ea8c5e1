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

package sdlhost

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/logger"
)

// keyboard layout for the first port
var keyboardButtons = map[sdl.Scancode]uint{
	sdl.SCANCODE_Z:      input.JoypadB,
	sdl.SCANCODE_X:      input.JoypadA,
	sdl.SCANCODE_A:      input.JoypadY,
	sdl.SCANCODE_S:      input.JoypadX,
	sdl.SCANCODE_Q:      input.JoypadL,
	sdl.SCANCODE_W:      input.JoypadR,
	sdl.SCANCODE_RETURN: input.JoypadStart,
	sdl.SCANCODE_RSHIFT: input.JoypadSelect,
	sdl.SCANCODE_UP:     input.JoypadUp,
	sdl.SCANCODE_DOWN:   input.JoypadDown,
	sdl.SCANCODE_LEFT:   input.JoypadLeft,
	sdl.SCANCODE_RIGHT:  input.JoypadRight,
}

var padButtons = map[sdl.GameControllerButton]uint{
	sdl.CONTROLLER_BUTTON_A:             input.JoypadB,
	sdl.CONTROLLER_BUTTON_B:             input.JoypadA,
	sdl.CONTROLLER_BUTTON_X:             input.JoypadY,
	sdl.CONTROLLER_BUTTON_Y:             input.JoypadX,
	sdl.CONTROLLER_BUTTON_BACK:          input.JoypadSelect,
	sdl.CONTROLLER_BUTTON_START:         input.JoypadStart,
	sdl.CONTROLLER_BUTTON_DPAD_UP:       input.JoypadUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:     input.JoypadDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:     input.JoypadLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    input.JoypadRight,
	sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  input.JoypadL,
	sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: input.JoypadR,
	sdl.CONTROLLER_BUTTON_LEFTSTICK:     input.JoypadL3,
	sdl.CONTROLLER_BUTTON_RIGHTSTICK:    input.JoypadR3,
}

// keyboardMask returns the joypad buttons held on the keyboard. state is
// indexed by scancode
func keyboardMask(state []uint8) uint16 {
	var mask uint16
	for sc, b := range keyboardButtons {
		if int(sc) < len(state) && state[sc] != 0 {
			mask |= 1 << b
		}
	}
	return mask
}

// retro key codes that differ from SDL key codes
var specialKeys = map[uint]sdl.Keycode{
	273: sdl.K_UP,
	274: sdl.K_DOWN,
	275: sdl.K_RIGHT,
	276: sdl.K_LEFT,
	277: sdl.K_INSERT,
	278: sdl.K_HOME,
	279: sdl.K_END,
	280: sdl.K_PAGEUP,
	281: sdl.K_PAGEDOWN,
	303: sdl.K_RSHIFT,
	304: sdl.K_LSHIFT,
	305: sdl.K_RCTRL,
	306: sdl.K_LCTRL,
	307: sdl.K_RALT,
	308: sdl.K_LALT,
}

// keycode converts a retro key code to an SDL key code. the printable range
// is the same in both
func keycode(id uint) (sdl.Keycode, bool) {
	if k, ok := specialKeys[id]; ok {
		return k, true
	}
	if id >= 282 && id <= 293 {
		return sdl.K_F1 + sdl.Keycode(id-282), true
	}
	if id < 128 {
		return sdl.Keycode(id), true
	}
	return 0, false
}

// pads is the set of open game controllers, one per port
type pads [emulator.MaxPads]*sdl.GameController

func (p *pads) open() {
	for i := range sdl.NumJoysticks() {
		if !sdl.IsGameController(i) {
			continue
		}
		for port := range p {
			if p[port] == nil {
				p[port] = sdl.GameControllerOpen(i)
				break // for loop
			}
		}
	}
	for port, pad := range p {
		if pad != nil {
			logger.Logf(logger.Allow, logTag, "port %d: %s", port, pad.Name())
		}
	}
}

func (p *pads) close() {
	for port, pad := range p {
		if pad != nil {
			pad.Close()
			p[port] = nil
		}
	}
}

func (p *pads) mask(port uint) uint16 {
	if port >= uint(len(p)) || p[port] == nil {
		return 0
	}
	var mask uint16
	for b, id := range padButtons {
		if p[port].Button(b) != 0 {
			mask |= 1 << id
		}
	}
	if p[port].Axis(sdl.CONTROLLER_AXIS_TRIGGERLEFT) > 0x4000 {
		mask |= 1 << input.JoypadL2
	}
	if p[port].Axis(sdl.CONTROLLER_AXIS_TRIGGERRIGHT) > 0x4000 {
		mask |= 1 << input.JoypadR2
	}
	return mask
}

func (p *pads) axis(port uint, index uint, id uint) int16 {
	if port >= uint(len(p)) || p[port] == nil {
		return 0
	}
	var axis sdl.GameControllerAxis
	switch {
	case index == input.AnalogLeft && id == input.AnalogX:
		axis = sdl.CONTROLLER_AXIS_LEFTX
	case index == input.AnalogLeft && id == input.AnalogY:
		axis = sdl.CONTROLLER_AXIS_LEFTY
	case index == input.AnalogRight && id == input.AnalogX:
		axis = sdl.CONTROLLER_AXIS_RIGHTX
	case index == input.AnalogRight && id == input.AnalogY:
		axis = sdl.CONTROLLER_AXIS_RIGHTY
	default:
		return 0
	}
	return p[port].Axis(axis)
}
