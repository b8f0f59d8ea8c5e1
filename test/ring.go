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
package test

import (
	"fmt"
	"sync"
)

// RingWriter is an implementation of io.Writer that keeps only the most
// recent bytes written to it. It is safe to write to from more than one
// goroutine.
type RingWriter struct {
	crit   sync.Mutex
	buffer []byte
	start  int
	used   int
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type. The size is the number of bytes retained.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("test: invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		buffer: make([]byte, size),
	}, nil
}

// String returns the retained bytes, oldest first.
func (r *RingWriter) String() string {
	r.crit.Lock()
	defer r.crit.Unlock()

	s := make([]byte, 0, r.used)
	end := r.start + r.used
	if end <= len(r.buffer) {
		s = append(s, r.buffer[r.start:end]...)
	} else {
		s = append(s, r.buffer[r.start:]...)
		s = append(s, r.buffer[:end-len(r.buffer)]...)
	}
	return string(s)
}

// Reset forgets everything written.
func (r *RingWriter) Reset() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.start = 0
	r.used = 0
}

// Write implements io.Writer
func (r *RingWriter) Write(p []byte) (int, error) {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := len(p)
	size := len(r.buffer)

	// only the tail of an oversized write can be kept
	if len(p) > size {
		p = p[len(p)-size:]
	}

	for _, b := range p {
		end := (r.start + r.used) % size
		r.buffer[end] = b
		if r.used < size {
			r.used++
		} else {
			r.start = (r.start + 1) % size
		}
	}

	return n, nil
}
