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

package notifications_test

import (
	"testing"

	"github.com/jetsetilly/retrobridge/notifications"
	"github.com/jetsetilly/retrobridge/test"
)

func TestMessage(t *testing.T) {
	test.ExpectEquality(t, notifications.NotifyWatchdogPause.Message(), "paused")
	test.ExpectEquality(t, notifications.NotifyBootFailed.Message("firmware missing"), "boot failed: firmware missing")
	test.ExpectEquality(t, notifications.NotifyMessage.Message("hello"), "hello")
	test.ExpectEquality(t, notifications.Notice("NotifyOther").Message(), "NotifyOther")
}
