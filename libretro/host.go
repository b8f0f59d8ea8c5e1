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

// host presents the core's registered callbacks to the presentation driver.
// the callbacks are looked up on every call because the host can replace
// them at any time
type host struct {
	core *Core
}

func (h host) VariablesUpdated() bool {
	if h.core.env == nil {
		return false
	}
	return h.core.env.GetVariableUpdate()
}

func (h host) PollInput() {
	if h.core.inputPoll != nil {
		h.core.inputPoll()
	}
}

func (h host) InputState(port uint, device uint, index uint, id uint) int16 {
	if h.core.inputState == nil {
		return 0
	}
	return h.core.inputState(port, device, index, id)
}

func (h host) AudioBatch(samples []int16, frames int) int {
	if h.core.audioBatch != nil {
		return h.core.audioBatch(samples, frames)
	}

	if h.core.audioSample != nil {
		for i := range frames {
			h.core.audioSample(samples[i*2], samples[i*2+1])
		}
		return frames
	}

	return 0
}

func (h host) VideoRefresh(valid bool, width uint, height uint, pitch uint) {
	if h.core.videoRefresh != nil {
		h.core.videoRefresh(valid, width, height, pitch)
	}
}

func (h host) CurrentFramebuffer() uint32 {
	if h.core.hw == nil || h.core.hw.GetCurrentFramebuffer == nil {
		return 0
	}
	return h.core.hw.GetCurrentFramebuffer()
}
