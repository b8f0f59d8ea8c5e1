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
)

// AnalogToByte maps an axis value in the range -32768 to 32767 to the range
// 0 to 255.
func AnalogToByte(v int16) uint8 {
	return uint8((int(v) + 32768) * 255 / 65535)
}

// AnalogToAxis splits an axis value into its negative and positive
// directional values.
func AnalogToAxis(v int16) emulator.Axis {
	a := emulator.Axis{Byte: AnalogToByte(v)}
	if v < 0 {
		a.Neg = uint8(-int(v) * 255 / 32768)
	} else if v > 0 {
		a.Pos = uint8(int(v) * 255 / 32767)
	}
	return a
}

// PadHandler converts the polled state into the pad state read by the
// emulator. It implements the emulator.InputSource interface.
type PadHandler struct {
	poller *Poller

	crit sync.RWMutex
	pads [emulator.MaxPads]emulator.PadState
}

// NewPadHandler is the preferred method of initialisation for the PadHandler
// type.
func NewPadHandler(poller *Poller) *PadHandler {
	return &PadHandler{poller: poller}
}

// Process the most recent poll and publish it to the emulator.
func (h *PadHandler) Process() {
	var pads [emulator.MaxPads]emulator.PadState

	for port := range uint(emulator.MaxPads) {
		raw := h.poller.Raw(port)
		pad := &pads[port]

		pad.Connected = raw.Connected
		if !raw.Connected {
			continue
		}

		pad.Buttons = raw.Buttons
		for b := range emulator.PadButtons {
			if pad.Pressed(b) {
				pad.Pressure[b] = 255
			}
		}

		for a := range emulator.PadAnalogAxes {
			pad.Analog[a] = AnalogToAxis(raw.Analog[a])
		}
	}

	h.crit.Lock()
	h.pads = pads
	h.crit.Unlock()
}

// Pad returns the state of the pad in the port. Out of range ports return
// a disconnected pad.
func (h *PadHandler) Pad(port int) emulator.PadState {
	if port < 0 || port >= emulator.MaxPads {
		return emulator.PadState{}
	}
	h.crit.RLock()
	defer h.crit.RUnlock()
	return h.pads[port]
}

// Mouse returns the mouse state.
func (h *PadHandler) Mouse() emulator.MouseState {
	return h.poller.Mouse()
}

// Keys returns the key codes of pressed keys.
func (h *PadHandler) Keys() []uint16 {
	return h.poller.Keys()
}
