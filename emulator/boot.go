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

package emulator

import (
	"github.com/jetsetilly/retrobridge/curated"
)

// BootResult is returned by Emulator.Boot().
type BootResult int

// List of valid BootResult values.
const (
	NoErrors BootResult = iota
	GenericError
	NothingToBoot
	WrongDiscLocation
	InvalidFileOrFolder
	InvalidBDVDFolder
	InstallFailed
	DecryptionError
	FileCreationError
	FirmwareMissing
	FirmwareVersion
	UnsupportedDiscType
	SavestateCorrupted
	SavestateVersionUnsupported
	StillRunning
	AlreadyAdded
	CurrentlyRestricted
)

type bootDescription struct {
	name    string
	message string
}

var bootDescriptions = map[BootResult]bootDescription{
	NoErrors:                    {"no_errors", "no errors"},
	GenericError:                {"generic_error", "an unknown error occurred"},
	NothingToBoot:               {"nothing_to_boot", "nothing to boot"},
	WrongDiscLocation:           {"wrong_disc_location", "the disc is in the wrong location"},
	InvalidFileOrFolder:         {"invalid_file_or_folder", "the file or folder is invalid or does not exist"},
	InvalidBDVDFolder:           {"invalid_bdvd_folder", "the disc folder is invalid"},
	InstallFailed:               {"install_failed", "installation failed"},
	DecryptionError:             {"decryption_error", "the content could not be decrypted"},
	FileCreationError:           {"file_creation_error", "a file could not be created"},
	FirmwareMissing:             {"firmware_missing", "the firmware is missing and must be installed"},
	FirmwareVersion:             {"firmware_version", "the firmware version is too old"},
	UnsupportedDiscType:         {"unsupported_disc_type", "the disc type is not supported"},
	SavestateCorrupted:          {"savestate_corrupted", "the savestate is corrupted"},
	SavestateVersionUnsupported: {"savestate_version_unsupported", "the savestate version is not supported"},
	StillRunning:                {"still_running", "the emulator is still running"},
	AlreadyAdded:                {"already_added", "the content has already been added"},
	CurrentlyRestricted:         {"currently_restricted", "booting is currently restricted"},
}

// BootFailed is the pattern of errors returned by BootResult.Err().
const BootFailed = "boot failed: %s"

func (r BootResult) String() string {
	if d, ok := bootDescriptions[r]; ok {
		return d.name
	}
	return "unknown"
}

// Message returns a description of the result suitable for the host to show
// to the user.
func (r BootResult) Message() string {
	if d, ok := bootDescriptions[r]; ok {
		return d.message
	}
	return bootDescriptions[GenericError].message
}

// Err returns nil for NoErrors and a curated error with the BootFailed
// pattern for every other result.
func (r BootResult) Err() error {
	if r == NoErrors {
		return nil
	}
	return curated.Errorf(BootFailed, r.Message())
}
