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

//go:build statsview

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address of the stats server.
const Address = "localhost:12600"

// the charts page served by the stats server
const chartsPath = "/debug/statsview"

var launch sync.Once

// Launch starts the stats server in the background and reports where the
// charts can be found. The server is only started once. Later calls just
// report the address again.
func Launch(output io.Writer) error {
	launch.Do(func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		go statsview.New().Start()
	})

	_, err := fmt.Fprintf(output, "runtime charts at http://%s%s\n", Address, chartsPath)
	return err
}

// Available is true in builds with the statsview tag.
func Available() bool {
	return true
}
