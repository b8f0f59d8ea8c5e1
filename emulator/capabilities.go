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

package emulator

// DialogKind is the type of message dialog requested by the emulator.
type DialogKind int

// List of valid DialogKind values.
const (
	DialogInfo DialogKind = iota
	DialogYesNo
	DialogError
)

// DialogResult is the answer to a message dialog.
type DialogResult int

// List of valid DialogResult values.
const (
	DialogNone DialogResult = iota
	DialogOK
	DialogYes
	DialogNo
)

// Capabilities is the table of optional services the emulator can ask the
// host for. Any hook can be nil. The emulator must call the methods of the
// table and not the hooks directly. The methods document the value returned
// when the hook is absent.
type Capabilities struct {
	MsgDialog          func(kind DialogKind, text string) DialogResult
	OskDialog          func(title string, initial string) (string, bool)
	SaveDialog         func(title string, entries []string) (int, bool)
	TrophyNotification func(name string, grade string)
	Camera             func() bool
	Music              func(path string) bool
	PlaySound          func(path string)
	LocalizedString    func(id string) string

	DisplaySleepSupported func() bool
	EnableDisplaySleep    func(enabled bool)
	TaskbarProgress       func(value int, total int)

	OnRun             func()
	OnPause           func()
	OnResume          func()
	OnStop            func()
	OnReady           func()
	OnMissingFirmware func()
}

// Message shows a dialog. Absent: DialogNone.
func (c *Capabilities) Message(kind DialogKind, text string) DialogResult {
	if c == nil || c.MsgDialog == nil {
		return DialogNone
	}
	return c.MsgDialog(kind, text)
}

// OnScreenKeyboard asks for text input. Absent: the initial text is returned
// with a false value.
func (c *Capabilities) OnScreenKeyboard(title string, initial string) (string, bool) {
	if c == nil || c.OskDialog == nil {
		return initial, false
	}
	return c.OskDialog(title, initial)
}

// Save asks the user to choose a save slot. Absent: -1 and false.
func (c *Capabilities) Save(title string, entries []string) (int, bool) {
	if c == nil || c.SaveDialog == nil {
		return -1, false
	}
	return c.SaveDialog(title, entries)
}

// Trophy notifies the user of an unlocked trophy. Absent: nothing happens.
func (c *Capabilities) Trophy(name string, grade string) {
	if c == nil || c.TrophyNotification == nil {
		return
	}
	c.TrophyNotification(name, grade)
}

// CameraAvailable opens the camera. Absent: false.
func (c *Capabilities) CameraAvailable() bool {
	if c == nil || c.Camera == nil {
		return false
	}
	return c.Camera()
}

// PlayMusic plays a music file. Absent: false.
func (c *Capabilities) PlayMusic(path string) bool {
	if c == nil || c.Music == nil {
		return false
	}
	return c.Music(path)
}

// Sound plays a sound file. Absent: nothing happens.
func (c *Capabilities) Sound(path string) {
	if c == nil || c.PlaySound == nil {
		return
	}
	c.PlaySound(path)
}

// Localized returns the localized string for the id. Absent: the id.
func (c *Capabilities) Localized(id string) string {
	if c == nil || c.LocalizedString == nil {
		return id
	}
	return c.LocalizedString(id)
}

// DisplaySleep returns true if the display sleep setting can be changed.
// Absent: false.
func (c *Capabilities) DisplaySleep() bool {
	if c == nil || c.DisplaySleepSupported == nil {
		return false
	}
	return c.DisplaySleepSupported()
}

// SetDisplaySleep enables or disables display sleep. Absent: nothing happens.
func (c *Capabilities) SetDisplaySleep(enabled bool) {
	if c == nil || c.EnableDisplaySleep == nil {
		return
	}
	c.EnableDisplaySleep(enabled)
}

// Progress reports the progress of a long operation. Absent: nothing
// happens.
func (c *Capabilities) Progress(value int, total int) {
	if c == nil || c.TaskbarProgress == nil {
		return
	}
	c.TaskbarProgress(value, total)
}

// Lifecycle event.
type Event int

// List of valid Event values.
const (
	EventRun Event = iota
	EventPause
	EventResume
	EventStop
	EventReady
	EventMissingFirmware
)

// Raise calls the hook for the lifecycle event. Absent: nothing happens.
func (c *Capabilities) Raise(ev Event) {
	if c == nil {
		return
	}

	var f func()
	switch ev {
	case EventRun:
		f = c.OnRun
	case EventPause:
		f = c.OnPause
	case EventResume:
		f = c.OnResume
	case EventStop:
		f = c.OnStop
	case EventReady:
		f = c.OnReady
	case EventMissingFirmware:
		f = c.OnMissingFirmware
	}

	if f != nil {
		f()
	}
}
