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

package libretro

import (
	"fmt"

	"github.com/jetsetilly/retrobridge/logger"
)

// HWRenderRequest is one step of the ladder of context requests.
type HWRenderRequest struct {
	ContextType  HWContextType
	VersionMajor uint
	VersionMinor uint
}

func (r HWRenderRequest) String() string {
	return fmt.Sprintf("%s %d.%d", r.ContextType, r.VersionMajor, r.VersionMinor)
}

// HWRenderLadder is the list of context requests, in the order they are
// made. The first request accepted by the host is used.
var HWRenderLadder = []HWRenderRequest{
	{HWContextOpenGLCore, 4, 3},
	{HWContextOpenGLCore, 3, 3},
	{HWContextOpenGL, 3, 0},
}

// negotiateHWRender makes each request in the ladder until one is accepted.
// the reset and destroy callbacks are the same for every request
func negotiateHWRender(env Environment, reset func(), destroy func()) (*HWRender, bool) {
	for i, req := range HWRenderLadder {
		hw := &HWRender{
			ContextType:      req.ContextType,
			VersionMajor:     req.VersionMajor,
			VersionMinor:     req.VersionMinor,
			Depth:            true,
			Stencil:          true,
			BottomLeftOrigin: true,
			CacheContext:     true,
			ContextReset:     reset,
			ContextDestroy:   destroy,
		}

		if env.SetHWRender(hw) {
			logger.Logf(logger.Allow, logTag, "%s context request accepted", req)
			return hw, true
		}

		if i < len(HWRenderLadder)-1 {
			logger.Logf(logger.Allow, logTag, "%s not available, trying %s", req, HWRenderLadder[i+1])
		}
	}

	logger.Log(logger.Allow, logTag, "no suitable OpenGL context available")
	return nil, false
}
