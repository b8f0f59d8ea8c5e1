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

// Package contextpool keeps a pool of GL contexts that share objects with
// the host's main context.
//
// Creating a shared context can fail if the context it shares with is
// current on another thread. This happens most often at the moment a render
// thread starts. The pool avoids this by creating contexts in advance, while
// the main context is known to be idle.
package contextpool

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/logger"
)

// Platform creates and destroys GL contexts. What a gpu.Context refers to is
// known only to the Platform.
type Platform interface {
	// Main returns the host's context. The pool never deletes it
	Main() gpu.Context

	// CreateShared creates a context that shares objects with the main
	// context. The current context of the calling thread is undefined
	// afterwards
	CreateShared() (gpu.Context, error)

	// CreateUnshared creates a context that shares nothing
	CreateUnshared() (gpu.Context, error)

	// MakeCurrent makes the context current on the calling thread. A zero
	// context detaches the current context from the calling thread
	MakeCurrent(ctx gpu.Context) error

	Delete(ctx gpu.Context) error
}

// Stats is a snapshot of the pool.
type Stats struct {
	Available int
	InUse     int

	Precreated       int
	OnDemandShared   int
	OnDemandUnshared int
	Failed           int
}

// Pool of contexts.
type Pool struct {
	platform Platform

	crit      sync.Mutex
	available []gpu.Context
	inUse     map[gpu.Context]bool
	stats     Stats
}

// NewPool is the preferred method of initialisation for the Pool type.
func NewPool(platform Platform) *Pool {
	return &Pool{
		platform: platform,
		inUse:    make(map[gpu.Context]bool),
	}
}

// Precreate tries to add n shared contexts to the pool. Must be called on the
// thread that owns the main context while no other thread is using it. The
// main context is detached during creation and restored afterwards.
//
// Returns the number of contexts created. Creating fewer than n is not an
// error, Checkout() will create contexts on demand.
func (p *Pool) Precreate(n int) int {
	if n <= 0 {
		return 0
	}

	main := p.platform.Main()
	if err := p.platform.MakeCurrent(0); err != nil {
		logger.Logf(logger.Allow, "contextpool", "cannot detach main context: %v", err)
	}

	created := make([]gpu.Context, 0, n)
	for range n {
		ctx, err := p.platform.CreateShared()
		if err != nil {
			logger.Logf(logger.Allow, "contextpool", "precreate: %v", err)
			break // for loop
		}
		created = append(created, ctx)
	}

	if err := p.platform.MakeCurrent(main); err != nil {
		logger.Logf(logger.Allow, "contextpool", "cannot restore main context: %v", err)
	}

	p.crit.Lock()
	p.available = append(p.available, created...)
	p.stats.Precreated += len(created)
	if len(created) < n {
		p.stats.Failed += n - len(created)
	}
	p.crit.Unlock()

	if len(created) < n {
		logger.Logf(logger.Allow, "contextpool", "created %d of %d shared contexts", len(created), n)
	} else {
		logger.Logf(logger.Allow, "contextpool", "created %d shared contexts", n)
	}

	return len(created)
}

// Checkout takes a context from the pool. If the pool is empty a new context
// is created. A shared context is preferred but if one cannot be created an
// unshared context is returned instead. An unshared context cannot see the
// objects of the main context.
func (p *Pool) Checkout() (gpu.Context, error) {
	p.crit.Lock()
	if n := len(p.available); n > 0 {
		ctx := p.available[n-1]
		p.available = p.available[:n-1]
		p.inUse[ctx] = true
		p.crit.Unlock()
		return ctx, nil
	}
	p.crit.Unlock()

	ctx, err := p.platform.CreateShared()
	if err == nil {
		p.crit.Lock()
		p.inUse[ctx] = true
		p.stats.OnDemandShared++
		p.crit.Unlock()
		return ctx, nil
	}
	logger.Logf(logger.Allow, "contextpool", "shared context: %v: trying unshared context", err)

	ctx, err = p.platform.CreateUnshared()
	if err != nil {
		p.crit.Lock()
		p.stats.Failed++
		p.crit.Unlock()
		return 0, fmt.Errorf("contextpool: %w", err)
	}

	p.crit.Lock()
	p.inUse[ctx] = true
	p.stats.OnDemandUnshared++
	p.crit.Unlock()

	return ctx, nil
}

// Release a context. The context is deleted unless it is the main context.
// Contexts are never returned to the pool.
func (p *Pool) Release(ctx gpu.Context) error {
	if ctx == 0 || ctx == p.platform.Main() {
		return nil
	}

	p.crit.Lock()
	delete(p.inUse, ctx)
	p.crit.Unlock()

	if err := p.platform.Delete(ctx); err != nil {
		return fmt.Errorf("contextpool: %w", err)
	}
	return nil
}

// Destroy deletes all contexts in the pool that have not been checked out.
// Contexts that are still checked out are the responsibility of whoever
// checked them out.
func (p *Pool) Destroy() {
	p.crit.Lock()
	available := p.available
	p.available = nil
	inUse := len(p.inUse)
	p.crit.Unlock()

	for _, ctx := range available {
		if err := p.platform.Delete(ctx); err != nil {
			logger.Logf(logger.Allow, "contextpool", "destroy: %v", err)
		}
	}

	if inUse > 0 {
		logger.Logf(logger.Allow, "contextpool", "destroyed with %d contexts still in use", inUse)
	}
}

// Stats returns a snapshot of the pool.
func (p *Pool) Stats() Stats {
	p.crit.Lock()
	defer p.crit.Unlock()
	s := p.stats
	s.Available = len(p.available)
	s.InUse = len(p.inUse)
	return s
}
