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

// Package watchdog infers that the host has paused from the gap between
// calls to the run entry point, and pauses the emulator to match.
//
// Some hosts stop calling the run entry point when the user pauses, without
// telling the core. The watchdog goroutine compares the time since the
// latest Tick() with a pause threshold and pauses the emulator when it is
// exceeded. It resumes the emulator when the gap drops below a lower resume
// threshold, but only if it was the watchdog that paused it.
//
// The gap is the larger of the time since the latest tick and the interval
// between the two latest ticks. Using the interval means that the first tick
// after a long stall does not resume the emulator on its own. Resumption
// happens once ticks are arriving regularly again.
package watchdog
