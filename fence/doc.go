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

// Package fence tracks the single in-flight GPU fence between the producer
// (the emulator's render thread) and the consumer (the host's presentation
// thread).
//
// The producer installs a new fence after flushing the commands of a
// completed frame. If the consumer has not yet waited on the previous fence
// then that fence is deleted and the new one takes its place. The consumer
// only needs to know that all work up to the most recent frame is complete.
//
// The consumer takes the fence out of the slot and waits on it for a short
// time. A timeout is not an error, the consumer reads the texture anyway.
//
// If the platform has no fence objects then the tracker is disabled and every
// operation is a no-op.
package fence
