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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/environment"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/notifications"
	"github.com/jetsetilly/retrobridge/test"
)

type notify struct {
	notices []notifications.Notice
}

func (n *notify) Notify(notice notifications.Notice, args ...any) error {
	n.notices = append(n.notices, notice)
	return nil
}

func TestValidate(t *testing.T) {
	cfg := emulator.DefaultConfig()
	env := environment.NewEnvironment("", cfg)
	test.ExpectSuccess(t, env.IsMainEmulation())
	test.ExpectFailure(t, env.Validate())

	env.Audio = audio.NewBackend()
	test.ExpectFailure(t, env.Validate())

	env.Input = input.NewPadHandler(input.NewPoller())

	// the opengl renderer needs a surface
	test.ExpectFailure(t, env.Validate())

	env.Config.Renderer = emulator.Null
	test.ExpectSuccess(t, env.Validate())
}

func TestNotice(t *testing.T) {
	env := environment.NewEnvironment("test", emulator.DefaultConfig())
	test.ExpectSuccess(t, env.IsEmulation("test"))

	// no notification target is not an error
	test.ExpectSuccess(t, env.Notice(notifications.NotifyContentLoaded))

	n := &notify{}
	env.Notify = n
	test.ExpectSuccess(t, env.Notice(notifications.NotifyContentLoaded, "path"))
	test.DemandEquality(t, len(n.notices), 1)
	test.ExpectEquality(t, n.notices[0], notifications.NotifyContentLoaded)
}

func TestNormalise(t *testing.T) {
	cfg := emulator.DefaultConfig()
	cfg.Width = 3840
	env := environment.NewEnvironment("", cfg)
	env.Normalise()
	test.ExpectEquality(t, env.Config.Width, 1280)
	test.ExpectSuccess(t, env.Random.ZeroSeed)
}
