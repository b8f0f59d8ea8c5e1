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

package emulator_test

import (
	"testing"

	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/test"
)

func TestBootResult(t *testing.T) {
	test.ExpectSuccess(t, emulator.NoErrors.Err())
	test.ExpectEquality(t, emulator.FirmwareMissing.String(), "firmware_missing")
	test.ExpectEquality(t, emulator.CurrentlyRestricted.String(), "currently_restricted")

	err := emulator.FirmwareMissing.Err()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, emulator.BootFailed))
	test.ExpectEquality(t, err.Error(), "boot failed: the firmware is missing and must be installed")

	// every result has a name and a message
	for r := emulator.NoErrors; r <= emulator.CurrentlyRestricted; r++ {
		test.ExpectInequality(t, r.String(), "unknown", int(r))
		test.ExpectInequality(t, r.Message(), "", int(r))
	}

	// unknown results are treated as generic errors
	test.ExpectEquality(t, emulator.BootResult(100).Message(), emulator.GenericError.Message())
}

func TestStatus(t *testing.T) {
	usable := []emulator.Status{emulator.Running, emulator.Paused, emulator.Ready, emulator.Frozen}
	unusable := []emulator.Status{emulator.Stopped, emulator.Loading, emulator.Starting}
	for _, s := range usable {
		test.ExpectSuccess(t, s.Usable(), s)
	}
	for _, s := range unusable {
		test.ExpectFailure(t, s.Usable(), s)
	}
}

func TestRenderer(t *testing.T) {
	r, ok := emulator.ParseRenderer("OpenGL")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r, emulator.OpenGL)
	test.ExpectSuccess(t, r.NeedsContext())

	r, ok = emulator.ParseRenderer("null")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r, emulator.Null)
	test.ExpectFailure(t, r.NeedsContext())

	_, ok = emulator.ParseRenderer("vulkan")
	test.ExpectFailure(t, ok)
}

func TestAbsentCapabilities(t *testing.T) {
	var c *emulator.Capabilities
	test.ExpectEquality(t, c.Message(emulator.DialogYesNo, "continue?"), emulator.DialogNone)
	s, ok := c.OnScreenKeyboard("name", "player")
	test.ExpectEquality(t, s, "player")
	test.ExpectFailure(t, ok)
	slot, ok := c.Save("save", []string{"a"})
	test.ExpectEquality(t, slot, -1)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, c.CameraAvailable())
	test.ExpectFailure(t, c.PlayMusic("music.at3"))
	test.ExpectEquality(t, c.Localized("msg_id"), "msg_id")
	test.ExpectFailure(t, c.DisplaySleep())
	c.Raise(emulator.EventRun)
	c.Trophy("trophy", "gold")

	c = &emulator.Capabilities{}
	test.ExpectEquality(t, c.Message(emulator.DialogInfo, "hello"), emulator.DialogNone)
	c.Raise(emulator.EventStop)
}

func TestPresentCapabilities(t *testing.T) {
	var events []emulator.Event
	c := &emulator.Capabilities{
		MsgDialog: func(kind emulator.DialogKind, text string) emulator.DialogResult {
			return emulator.DialogYes
		},
		OnRun:   func() { events = append(events, emulator.EventRun) },
		OnReady: func() { events = append(events, emulator.EventReady) },
	}

	test.ExpectEquality(t, c.Message(emulator.DialogYesNo, "continue?"), emulator.DialogYes)
	c.Raise(emulator.EventReady)
	c.Raise(emulator.EventPause)
	c.Raise(emulator.EventRun)
	test.DemandEquality(t, len(events), 2)
	test.ExpectEquality(t, events[0], emulator.EventReady)
	test.ExpectEquality(t, events[1], emulator.EventRun)
}

func TestPadState(t *testing.T) {
	p := emulator.PadState{Buttons: 1<<3 | 1<<8}
	test.ExpectSuccess(t, p.Pressed(3))
	test.ExpectSuccess(t, p.Pressed(8))
	test.ExpectFailure(t, p.Pressed(0))
}
