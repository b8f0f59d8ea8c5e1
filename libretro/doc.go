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

// Package libretro is the plugin core. Each entry point of the plugin API is
// a method of the Core type. The capi package exports the entry points as C
// functions. The harness calls them directly.
//
// Content is loaded into a Session. For the OpenGL renderer the content is
// not booted until the host's context is ready, which is signalled by the
// host calling the context reset callback given to it during LoadGame(). The
// null renderer boots immediately.
//
// All entry points must be called from the host's thread. The host's GL
// context is current during Run() and during the context callbacks.
package libretro
