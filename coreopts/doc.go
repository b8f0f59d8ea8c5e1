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

// Package coreopts maps the host's core option variables to the emulator's
// configuration and to the bridge's tunables.
//
// Each variable is a prefs.String. Setting a variable, either from the host
// with Apply() or from the harness through a prefs.Disk, updates the derived
// values through the pref's post hook.
package coreopts
