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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// particular pattern. For example:
//
//	e := curated.Errorf("framebuffer: incomplete: %#x", status)
//
//	if curated.Is(e, "framebuffer: incomplete: %#x") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("boot: %v", emulator.FirmwareMissing.Err())
//
//	if curated.Has(e, emulator.BootFailedPattern) {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference between curated and
// uncurated errors as being 'expected' and 'unexpected'.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For the purposes of this package we think of
// chains as being composed of parts separated by the sub-string ": ". For
// example, wrapping a "libretro: load failed" error in another "libretro: %v"
// error results in the message:
//
//	libretro: load failed
//
// and not:
//
//	libretro: libretro: load failed
//
// Curated errors implement Unwrap() so the errors package in the standard
// library can be used as normal.
//
// Sentinel patterns should be stored as a const string, suitably named and
// commented.
package curated
