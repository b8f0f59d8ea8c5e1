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

package notifications

import "fmt"

// Notice describes events that somehow change the presentation of the
// emulation. These notifications can be used to present additional
// information to the user.
type Notice string

// List of defined notifications.
const (
	// content has booted and is running. argument is the content path
	NotifyContentLoaded Notice = "NotifyContentLoaded"

	// content has failed to boot. argument is the boot result message
	NotifyBootFailed Notice = "NotifyBootFailed"

	// content has been unloaded
	NotifyContentUnloaded Notice = "NotifyContentUnloaded"

	// the watchdog has paused or resumed the emulator because the host has
	// stopped or restarted calling the run entry point
	NotifyWatchdogPause  Notice = "NotifyWatchdogPause"
	NotifyWatchdogResume Notice = "NotifyWatchdogResume"

	// the emulator needs firmware that has not been installed
	NotifyFirmwareMissing Notice = "NotifyFirmwareMissing"

	// the host could not provide any of the requested GL contexts
	NotifyNoHardwareContext Notice = "NotifyNoHardwareContext"

	// the emulator wants to show a message dialog. argument is the message
	NotifyMessage Notice = "NotifyMessage"
)

// Message returns a short description of the notice suitable for displaying
// to the user. Arguments are appended to the description.
func (n Notice) Message(args ...any) string {
	var s string
	switch n {
	case NotifyContentLoaded:
		s = "content loaded"
	case NotifyBootFailed:
		s = "boot failed"
	case NotifyContentUnloaded:
		s = "content unloaded"
	case NotifyWatchdogPause:
		s = "paused"
	case NotifyWatchdogResume:
		s = "resumed"
	case NotifyFirmwareMissing:
		s = "firmware missing"
	case NotifyNoHardwareContext:
		s = "no suitable OpenGL context"
	case NotifyMessage:
		s = ""
	default:
		s = string(n)
	}

	if len(args) == 0 {
		return s
	}

	a := fmt.Sprint(args...)
	if s == "" {
		return a
	}
	return fmt.Sprintf("%s: %s", s, a)
}

// Notify is used for direct communication between the bridge and the host.
type Notify interface {
	Notify(notice Notice, args ...any) error
}
