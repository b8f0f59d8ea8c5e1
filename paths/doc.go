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

// Package paths contains functions to prepare paths for the bridge's
// resources.
//
// The plugin is given a system directory and a save directory by the host.
// EmulatorDir() and DetailedLogPath() build paths relative to those.
//
// The harness has no host to ask and uses ResourcePath() instead. The
// resource path is the ".retrobridge" directory in the current working
// directory if it exists, otherwise the "retrobridge" directory in the user's
// configuration directory.
package paths
