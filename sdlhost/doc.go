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

// Package sdlhost is a minimal libretro host that runs the core in an SDL
// window. It is used by the harness to exercise the core without a full
// frontend.
//
// The host owns the main GL context. Contexts for the core's render thread
// are created on a hidden window so that they never touch the visible
// window's default framebuffer. Shared contexts can only be created while the
// host is not using the main context, which is during ContextReset(). At any
// other time the platform reports that sharing is unavailable and the
// context pool falls back to an unshared context.
//
// Variables are supplied from a coreopts.Options instance that can be loaded
// from and saved to disk with the prefs package.
package sdlhost
