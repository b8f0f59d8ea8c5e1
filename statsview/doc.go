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

// Package statsview runs a local HTTP server with runtime statistics of the
// harness. The server is provided by "github.com/go-echarts/statsview" and is
// only built when the statsview build tag is present. Without the tag
// Launch() reports that the server is unavailable.
//
// Charts are served at:
//
//	localhost:12600/debug/statsview
//
// The standard pprof endpoints are served at:
//
//	localhost:12600/debug/pprof/
package statsview
