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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given with NewArgs() and then parsed with Parse(), which
// takes no arguments. Once parsed, the selected mode is returned by Mode()
// and any non-flag arguments are available through RemainingArgs() and
// GetArg().
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "INFO", "VERSION")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
// The first sub-mode in the list is the default mode. It is selected when
// the first argument does not name a mode. Sub-mode comparisons are case
// insensitive.
//
// After a mode has been selected NewMode() prepares the Modes instance for
// the flags of that mode. Calling Parse() again parses the arguments that
// follow the mode name.
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		wav := md.AddString("wav", "", "record audio to file")
//		md.Parse()
//	}
//
// Help is printed to Output when the -help or -h flag is used and Parse()
// returns ParseHelp.
package modalflag
