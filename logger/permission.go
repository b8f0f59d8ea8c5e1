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
package logger

// Permission decides whether a log request creates an entry.
type Permission interface {
	AllowLogging() bool
}

// PermissionFunc adapts a function to the Permission interface.
type PermissionFunc func() bool

// AllowLogging implements the Permission interface.
func (f PermissionFunc) AllowLogging() bool {
	return f()
}

type fixed bool

func (p fixed) AllowLogging() bool {
	return bool(p)
}

// Allow and Deny are permissions that never change.
var (
	Allow Permission = fixed(true)
	Deny  Permission = fixed(false)
)
