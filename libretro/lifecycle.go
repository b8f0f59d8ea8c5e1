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
	"time"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/gpu/gl32"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/notifications"
	"github.com/jetsetilly/retrobridge/present"
)

// LoadGame creates a session for the content. For the OpenGL renderer a
// hardware context is requested from the host and the content is booted
// when the context is ready. For the null renderer the content is booted
// immediately.
func (c *Core) LoadGame(path string) bool {
	logger.Log(logger.Allow, logTag, "load game")

	if path == "" {
		logger.Log(logger.Allow, logTag, "no content path provided")
		return false
	}
	if c.env == nil {
		logger.Log(logger.Allow, logTag, "no environment")
		return false
	}

	if c.session != nil {
		c.UnloadGame()
	}

	c.canDupe = c.env.GetCanDupe()
	if c.canDupe {
		logger.Log(logger.Allow, logTag, "frame duping supported by host")
	} else {
		logger.Log(logger.Allow, logTag, "frame duping not supported by host")
	}

	c.options.Apply(c.env)
	cfg := c.options.Config()
	logger.Logf(logger.Allow, logTag, "configuration: %s", cfg)

	s := c.newSession(path, cfg)

	if cfg.Renderer.NeedsContext() {
		hw, ok := negotiateHWRender(c.env, c.contextReset, c.contextDestroy)
		if !ok {
			_ = c.Notify(notifications.NotifyNoHardwareContext)
			c.deliverMessages()
			s.shutdown()
			return false
		}
		c.hw = hw
		c.session = s
		s.pendingBoot = true
		logger.Log(logger.Allow, logTag, "boot deferred until the host's context is ready")
		return true
	}

	c.hw = nil
	c.session = s
	if !c.boot() {
		c.UnloadGame()
		return false
	}

	return true
}

// LoadGameSpecial is not supported.
func (c *Core) LoadGameSpecial(gameType uint, paths []string) bool {
	return false
}

// contextReset is called by the host when its context is ready or has been
// recreated
func (c *Core) contextReset() {
	logger.Log(logger.Allow, logTag, "context reset")

	s := c.session
	if s == nil {
		logger.Log(logger.Allow, logTag, "context reset without a session")
		return
	}

	var procAddr gl32.ProcAddrFunc
	if c.hw != nil {
		procAddr = c.hw.GetProcAddress
	}
	gl, err := c.cfg.LoadGL(procAddr)
	if err != nil {
		logger.Logf(logger.Allow, logTag, "cannot load GL: %v", err)
		c.videoUnavailable(s)
		return
	}

	x, y, w, h := gl.GetViewport()
	logger.Logf(logger.Allow, logTag, "host viewport: %d %d %dx%d", x, y, w, h)

	if err := s.attachVideo(c, gl); err != nil {
		logger.Logf(logger.Allow, logTag, "cannot create video resources: %v", err)
		c.videoUnavailable(s)
		return
	}

	if s.pendingBoot {
		c.boot()
	}
	c.deliverMessages()
}

// videoUnavailable tells the host that its context cannot be used. content
// waiting for the context is booted with the null renderer so that the host
// still receives frames
func (c *Core) videoUnavailable(s *Session) {
	_ = c.Notify(notifications.NotifyNoHardwareContext)

	if s.pendingBoot {
		logger.Log(logger.Allow, logTag, "falling back to the null renderer")
		s.Renderer = emulator.Null
		s.Env.Config.Renderer = emulator.Null
		s.Signal.SetCadence(c.options.FlipCadenceFor(emulator.Null))
		c.boot()
	}

	c.deliverMessages()
}

// contextDestroy is called by the host before its context is destroyed
func (c *Core) contextDestroy() {
	logger.Log(logger.Allow, logTag, "context destroy")
	if s := c.session; s != nil {
		s.detachVideo()
	}
}

// bootEmulator calls Boot() and turns a panic into a boot failure
func bootEmulator(emu emulator.Emulator, path string) (res emulator.BootResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logf(logger.Allow, logTag, "panic during boot: %v", r)
			res = emulator.GenericError
		}
	}()
	return emu.Boot(path)
}

// boot the session's content. returns false if the content could not be
// booted
func (c *Core) boot() bool {
	s := c.session
	s.pendingBoot = false

	logger.Logf(logger.Allow, logTag, "booting %s", s.Path)

	res := bootEmulator(s.Emulator, s.Path)
	if err := res.Err(); err != nil {
		logger.Logf(logger.Allow, logTag, "%v (%s)", err, res)
		if res == emulator.FirmwareMissing {
			s.Env.Caps.Raise(emulator.EventMissingFirmware)
		} else {
			_ = s.Env.Notice(notifications.NotifyBootFailed, res.Message())
		}
		c.deliverMessages()
		return false
	}

	status := c.waitUsable(s.Emulator)

	switch status {
	case emulator.Ready:
		logger.Log(logger.Allow, logTag, "starting emulation")
		s.Emulator.Run()
	case emulator.Paused, emulator.Frozen:
		logger.Log(logger.Allow, logTag, "resuming emulation")
		s.Emulator.Resume()
	case emulator.Starting:
		logger.Log(logger.Allow, logTag, "emulator stuck in starting status, finalizing")
		s.Emulator.FinalizeRun()
	}

	logger.Logf(logger.Allow, logTag, "emulator status: %s", s.Emulator.Status())

	s.booted = true
	s.Watchdog.Start()
	_ = s.Env.Notice(notifications.NotifyContentLoaded, s.Path)

	logger.Logf(logger.Allow, logTag, "lifecycle: %s", s.State())

	if c.OnBoot != nil {
		c.OnBoot(s)
	}

	return true
}

// waitUsable polls the emulator's status until it is usable, stopped or the
// boot timeout expires
func (c *Core) waitUsable(emu emulator.Emulator) emulator.Status {
	start := time.Now()
	lastReport := start

	for {
		status := emu.Status()
		waited := time.Since(start)

		if status.Usable() {
			logger.Logf(logger.Allow, logTag, "emulator reached %s status after %v", status, waited.Round(time.Millisecond))
			return status
		}
		if status == emulator.Stopped {
			logger.Log(logger.Allow, logTag, "emulator stopped unexpectedly")
			return status
		}
		if waited >= c.BootTimeout {
			logger.Logf(logger.Allow, logTag, "emulator still %s after %v", status, waited.Round(time.Millisecond))
			return status
		}

		if time.Since(lastReport) >= time.Second {
			logger.Logf(logger.Allow, logTag, "waiting for emulator (%s)", status)
			lastReport = time.Now()
		}

		time.Sleep(c.BootPoll)
	}
}

// UnloadGame stops the watchdog, shuts down the emulator and ends the
// session.
func (c *Core) UnloadGame() {
	s := c.session
	if s == nil {
		return
	}

	logger.Log(logger.Allow, logTag, "unload game")

	booted := s.booted
	s.shutdown()
	c.session = nil
	c.hw = nil

	if booted {
		_ = c.Notify(notifications.NotifyContentUnloaded)
	}

	logger.Logf(logger.Allow, logTag, "lifecycle: %s", c.State())
}

// Run is called by the host once per frame. Nothing happens unless content
// has been booted.
func (c *Core) Run() {
	r, ok := c.Tick()
	if !ok {
		return
	}
	if r.Fence == fence.TimedOut || r.Fence == fence.Failed {
		logger.Logf(logger.Allow, logTag, "frame fence %s", r.Fence)
	}
}

// Tick is the same as Run() but returns the report of the tick. The boolean
// is false if nothing has been booted.
func (c *Core) Tick() (present.Report, bool) {
	s := c.session
	if !s.Booted() {
		return present.Report{}, false
	}
	r := s.Driver.Tick()
	c.deliverMessages()
	return r, true
}

// Reset restarts the content.
func (c *Core) Reset() {
	s := c.session
	if !s.Booted() {
		return
	}
	if err := s.Emulator.Restart(); err != nil {
		logger.Logf(logger.Allow, logTag, "reset: %v", err)
	}
}

// SerializeSize returns zero. Save states are not supported.
func (c *Core) SerializeSize() int {
	return 0
}

// Serialize is not supported.
func (c *Core) Serialize(data []byte) bool {
	return false
}

// Unserialize is not supported.
func (c *Core) Unserialize(data []byte) bool {
	return false
}

// CheatReset does nothing.
func (c *Core) CheatReset() {}

// CheatSet does nothing.
func (c *Core) CheatSet(index uint, enabled bool, code string) {}

// Region returns the region of the content. Always NTSC.
func (c *Core) Region() Region {
	return RegionNTSC
}

// MemoryData returns nil. No memory is exposed to the host.
func (c *Core) MemoryData(id uint) []byte {
	return nil
}

// MemorySize returns zero.
func (c *Core) MemorySize(id uint) int {
	return 0
}
