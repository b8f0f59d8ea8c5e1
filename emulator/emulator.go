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

// Emulator is the interface to the emulator core. Apart from Boot(), none of
// the functions block for longer than it takes to change state.
type Emulator interface {
	Info() Info

	// Boot starts loading the content at path. The emulator may still be
	// loading when the function returns and the Status() should be checked
	Boot(path string) BootResult

	Status() Status
	IsRunning() bool
	IsPaused() bool

	// Run starts emulation after the emulator has reached the Ready status
	Run()

	// Pause is a non-blocking request to pause emulation
	Pause()

	// Resume emulation from the Paused or Frozen status
	Resume()

	// FinalizeRun completes a boot that stopped at the Starting status
	FinalizeRun()

	// Restart the loaded content from the beginning
	Restart() error

	// Shutdown stops emulation and releases all resources. The emulator
	// cannot be booted again
	Shutdown()
}

// Info describes an emulator implementation.
type Info struct {
	Name       string
	Version    string
	Extensions []string
}
