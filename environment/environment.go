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

// Package environment is the set of services given to an emulator when it is
// created. Everything the emulator uses to talk to the outside world comes
// through the Environment type.
package environment

import (
	"fmt"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/notifications"
	"github.com/jetsetilly/retrobridge/random"
)

// Label is used to name the environment
type Label string

// Environment is used to provide context for an emulator.
type Environment struct {
	Label Label

	Config emulator.Config

	// the render surface. nil if the renderer does not need one
	Surface emulator.Surface

	Audio emulator.AudioDevice
	Input emulator.InputSource

	// optional hooks. the Capabilities type is safe to use when nil
	Caps *emulator.Capabilities

	// the emulator's own directory, inside the host's system directory
	EmulatorDir string

	// notices for the host
	Notify notifications.Notify

	// any randomisation required by the emulator should be retreived through
	// this structure
	Random *random.Random
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label, cfg emulator.Config) *Environment {
	return &Environment{
		Label:  label,
		Config: cfg,
		Random: random.NewRandom(nil),
	}
}

// Validate returns an error if a service required by the configuration is
// missing.
func (env *Environment) Validate() error {
	if env.Audio == nil {
		return fmt.Errorf("environment: no audio device")
	}
	if env.Input == nil {
		return fmt.Errorf("environment: no input source")
	}
	if env.Config.Renderer.NeedsContext() && env.Surface == nil {
		return fmt.Errorf("environment: %s renderer needs a surface", env.Config.Renderer)
	}
	return nil
}

// Normalise ensures the environment is in an known default state. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Config = emulator.DefaultConfig()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulator in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == ""
}

// IsEmulation checks the emulation label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// Notice sends a notice to the host if there is a notification target.
func (env *Environment) Notice(notice notifications.Notice, args ...any) error {
	if env.Notify == nil {
		return nil
	}
	return env.Notify.Notify(notice, args...)
}
