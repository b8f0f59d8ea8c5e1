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

package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jetsetilly/retrobridge/metrics"
	"github.com/jetsetilly/retrobridge/test"
)

func TestCounters(t *testing.T) {
	presented := testutil.ToFloat64(metrics.Frames.WithLabelValues("presented"))
	duped := testutil.ToFloat64(metrics.Frames.WithLabelValues("duped"))

	metrics.Frame(true)
	metrics.Frame(false)
	metrics.Frame(false)

	test.ExpectEquality(t, testutil.ToFloat64(metrics.Frames.WithLabelValues("presented")), presented+1)
	test.ExpectEquality(t, testutil.ToFloat64(metrics.Frames.WithLabelValues("duped")), duped+2)

	timedOut := testutil.ToFloat64(metrics.FenceResults.WithLabelValues("timed out"))
	metrics.Fence("timed out")
	test.ExpectEquality(t, testutil.ToFloat64(metrics.FenceResults.WithLabelValues("timed out")), timedOut+1)

	audio := testutil.ToFloat64(metrics.AudioFrames)
	metrics.Audio(512)
	test.ExpectEquality(t, testutil.ToFloat64(metrics.AudioFrames), audio+512)

	metrics.Pool(8, 2)
	test.ExpectEquality(t, testutil.ToFloat64(metrics.ContextPool.WithLabelValues("available")), 8.0)
	test.ExpectEquality(t, testutil.ToFloat64(metrics.ContextPool.WithLabelValues("in_use")), 2.0)

	pause := testutil.ToFloat64(metrics.WatchdogTransitions.WithLabelValues("pause"))
	metrics.Watchdog(true)
	test.ExpectEquality(t, testutil.ToFloat64(metrics.WatchdogTransitions.WithLabelValues("pause")), pause+1)
}

func TestHandler(t *testing.T) {
	metrics.Tick(3 * time.Millisecond)

	srv := httptest.NewServer(metrics.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	test.DemandSuccess(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(body), "retrobridge_tick_seconds_count"))
}
