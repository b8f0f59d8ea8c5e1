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
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/test"
)

func TestKeyboardMask(t *testing.T) {
	state := make([]uint8, sdl.NUM_SCANCODES)
	test.ExpectEquality(t, keyboardMask(state), 0)

	state[sdl.SCANCODE_X] = 1
	state[sdl.SCANCODE_UP] = 1
	test.ExpectEquality(t, keyboardMask(state), uint16(1<<input.JoypadA|1<<input.JoypadUp))

	// a short state never panics
	test.ExpectEquality(t, keyboardMask(state[:4]), 0)
}

func TestKeycode(t *testing.T) {
	k, ok := keycode('a')
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, k, sdl.Keycode(sdl.K_a))

	k, ok = keycode(273)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, k, sdl.Keycode(sdl.K_UP))

	k, ok = keycode(284)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, k, sdl.Keycode(sdl.K_F3))

	_, ok = keycode(500)
	test.ExpectFailure(t, ok)
}
