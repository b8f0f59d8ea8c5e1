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

package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const baseResourcePath = ".retrobridge"

// name of the directory in the system directory that holds the emulator's
// files (firmware, configuration etc.)
const emulatorDirName = "retrobridge"

// name of the detailed log file written to the save directory
const detailedLogName = "retrobridge.log"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with the resource path. The directory part of the path
// is created if it does not exist.
func ResourcePath(resource ...string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	p := filepath.Join(append([]string{base}, resource...)...)
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	return p, nil
}

func getBasePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cnf, baseResourcePath[1:]), nil
}

// EmulatorDir returns the directory for the emulator's files under the
// host's system directory. The path always ends with a separator. The
// directory is not created.
func EmulatorDir(systemDir string) string {
	return filepath.Join(systemDir, emulatorDirName) + string(filepath.Separator)
}

// DetailedLogPath returns the path of the detailed log file in the host's
// save directory.
func DetailedLogPath(saveDir string) string {
	return filepath.Join(saveDir, detailedLogName)
}
