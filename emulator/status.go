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

// Status of the emulator.
type Status int

// List of valid Status values.
const (
	Stopped Status = iota
	Loading
	Starting
	Ready
	Running
	Paused
	Frozen
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Loading:
		return "loading"
	case Starting:
		return "starting"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Frozen:
		return "frozen"
	}
	return "unknown"
}

// Usable returns true if the status indicates that booting has progressed far
// enough for the emulator to be run.
func (s Status) Usable() bool {
	switch s {
	case Running, Paused, Ready, Frozen:
		return true
	}
	return false
}
