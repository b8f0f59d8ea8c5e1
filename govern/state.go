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

package govern

// State indicates the lifecycle state of the session.
type State int

// List of possible lifecycle states.
const (
	// no content is loaded, or content has been unloaded
	Idle State = iota

	// content has booted and the emulator is not paused by the watchdog. the
	// emulator may still be paused by the user
	RunningUnpaused

	// the watchdog has paused the emulator because the host has stopped
	// calling the run entry point
	RunningPausedByWatchdog
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case RunningUnpaused:
		return "Running-Unpaused"
	case RunningPausedByWatchdog:
		return "Running-PausedByWatchdog"
	}
	return ""
}

// Running returns true if the state is one of the running states.
func (s State) Running() bool {
	return s == RunningUnpaused || s == RunningPausedByWatchdog
}

// ValidTransition returns true if moving from one state to another is
// allowed. Any state can move to Idle. Moving to the same state is not a
// transition.
func ValidTransition(from State, to State) bool {
	switch to {
	case Idle:
		return from != Idle
	case RunningUnpaused:
		return from == Idle || from == RunningPausedByWatchdog
	case RunningPausedByWatchdog:
		return from == RunningUnpaused
	}
	return false
}
