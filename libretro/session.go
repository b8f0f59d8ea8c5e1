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

	"github.com/google/uuid"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/contextpool"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/environment"
	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/framebuffer"
	"github.com/jetsetilly/retrobridge/framesignal"
	"github.com/jetsetilly/retrobridge/govern"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/metrics"
	"github.com/jetsetilly/retrobridge/present"
	"github.com/jetsetilly/retrobridge/surface"
	"github.com/jetsetilly/retrobridge/watchdog"
)

// Session is everything created for one piece of loaded content. It is
// created by LoadGame() and destroyed by UnloadGame().
type Session struct {
	ID   uuid.UUID
	Path string

	// the renderer is chosen when the session is created and does not change
	Renderer emulator.Renderer

	// the options in effect when the session was created
	Options string

	Env      *environment.Environment
	Emulator emulator.Emulator
	Watchdog *watchdog.Watchdog
	Signal   *framesignal.Signal
	Audio    *audio.Backend
	Driver   *present.Driver

	// video resources. nil until the host's context is ready
	GL       gpu.GL
	Platform contextpool.Platform
	Pool     *contextpool.Pool
	Fence    *fence.Tracker
	Shared   *framebuffer.Shared
	Surface  *surface.Surface

	// content is waiting for the host's context before it is booted
	pendingBoot bool

	booted  bool
	created time.Time
}

func (c *Core) newSession(path string, cfg emulator.Config) *Session {
	s := &Session{
		ID:       uuid.New(),
		Path:     path,
		Renderer: cfg.Renderer,
		Options:  c.options.String(),
		Signal:   &framesignal.Signal{},
		Audio:    audio.NewBackend(),
		created:  time.Now(),
	}
	s.Signal.SetCadence(c.options.FlipCadenceFor(cfg.Renderer))

	s.Env = environment.NewEnvironment("", cfg)
	s.Env.Audio = s.Audio
	s.Env.Input = c.pads
	s.Env.EmulatorDir = c.emulatorDir
	s.Env.Notify = c
	s.Env.Caps = c.capabilities()

	s.Emulator = c.cfg.Factory(s.Env)

	s.Watchdog = watchdog.NewWatchdog(s.Emulator)
	s.Watchdog.OnTransition = func(t watchdog.Transition, gap time.Duration) {
		metrics.Watchdog(t == watchdog.Paused)
	}

	s.Driver = present.NewDriver(present.Config{
		Host:         host{core: c},
		Signal:       s.Signal,
		Watchdog:     s.Watchdog,
		Poller:       c.poller,
		Pads:         c.pads,
		Audio:        s.Audio,
		ApplyOptions: c.applyOptions,
		AudioTap:     c.cfg.AudioTap,
	})

	logger.Logf(logger.Allow, logTag, "session %s: %s (%s)", s.ID, path, s.Renderer)

	return s
}

// State returns the lifecycle state of the session.
func (s *Session) State() govern.State {
	if s == nil || !s.booted {
		return govern.Idle
	}
	return s.Watchdog.State()
}

// Booted returns true if the content has been booted successfully.
func (s *Session) Booted() bool {
	return s != nil && s.booted
}

// PendingBoot returns true if the content is waiting for the host's context.
func (s *Session) PendingBoot() bool {
	return s != nil && s.pendingBoot
}

// attachVideo creates the video resources on the host's context, if they do
// not already exist, and makes them available to the presentation driver
func (s *Session) attachVideo(c *Core, gl gpu.GL) error {
	if s.Surface == nil {
		plt, err := c.cfg.Platform()
		if err != nil {
			return err
		}

		s.GL = gl
		s.Platform = plt
		s.Pool = contextpool.NewPool(plt)
		s.Pool.Precreate(c.options.ContextPoolSize())

		s.Fence = fence.NewTracker(gl)
		s.Fence.SetTimeout(c.options.FenceTimeoutDuration())

		cfg := s.Env.Config
		s.Shared = framebuffer.NewShared(gl)
		s.Shared.SetDefaultSize(int32(cfg.Width), int32(cfg.Height))

		s.Surface = surface.NewSurface(surface.Resources{
			GL:       gl,
			Platform: plt,
			Pool:     s.Pool,
			Fence:    s.Fence,
			Signal:   s.Signal,
			Shared:   s.Shared,
		})
		s.Env.Surface = s.Surface
	}

	s.Driver.AttachVideo(&present.Video{
		GL:     s.GL,
		Fence:  s.Fence,
		Shared: s.Shared,
	})

	st := s.Pool.Stats()
	metrics.Pool(st.Available, st.InUse)

	return nil
}

// detachVideo releases the resources that belong to the host's context. the
// producer side is left alone because the render thread may still be using
// it
func (s *Session) detachVideo() {
	v := s.Driver.DetachVideo()
	if v == nil {
		return
	}
	v.Fence.Discard()
	v.Shared.DestroyConsumer()
}

// shutdown stops the watchdog and the emulator and releases the video
// resources
func (s *Session) shutdown() {
	s.Watchdog.Stop()
	s.Emulator.Shutdown()

	// the render thread has finished so the producer side can be destroyed
	// if the host's context is still available
	if v := s.Driver.DetachVideo(); v != nil {
		v.Fence.Discard()
		v.Shared.DestroyConsumer()
		v.Shared.DestroyProducer()
	}

	if s.Pool != nil {
		s.Pool.Destroy()
		metrics.Pool(0, 0)
	}

	s.booted = false
	s.pendingBoot = false

	logger.Logf(logger.Allow, logTag, "session %s: ended after %v", s.ID, time.Since(s.created).Round(time.Second))
}
