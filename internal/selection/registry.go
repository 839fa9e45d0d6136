// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package selection

import (
	"sync"
	"time"

	"pulsereport/internal/metrics"
)

// DefaultIdleTTL is how long a visitor's store outlives their last request.
const DefaultIdleTTL = 30 * time.Minute

// Registry owns one Store per visitor session and evicts stores that have
// been idle longer than its TTL.
type Registry struct {
	fetcher Fetcher
	opts    []Option
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	store    *Store
	lastUsed time.Time
}

// NewRegistry creates a registry and starts its eviction sweeper.
func NewRegistry(f Fetcher, ttl time.Duration, opts ...Option) *Registry {
	return newRegistry(f, ttl, time.Now, opts...)
}

func newRegistry(f Fetcher, ttl time.Duration, now func() time.Time, opts ...Option) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	r := &Registry{
		fetcher: f,
		opts:    opts,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.sweepLoop(max(ttl/2, time.Second))
	return r
}

// Get returns the store for a session id, creating it on first use.
func (r *Registry) Get(id string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		e = &entry{store: NewStore(r.fetcher, r.opts...)}
		r.entries[id] = e
		metrics.StoresActive.Inc()
	}
	e.lastUsed = r.now()
	return e.store
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep closes and removes stores idle longer than the TTL. It returns the
// number evicted.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var idle []*Store
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.store)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
		metrics.StoresActive.Dec()
	}
	return len(idle)
}

func (r *Registry) sweepLoop(interval time.Duration) {
	defer close(r.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.stop:
			return
		}
	}
}

// Close stops the sweeper and closes every store.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done

	r.mu.Lock()
	stores := make([]*Store, 0, len(r.entries))
	for id, e := range r.entries {
		stores = append(stores, e.store)
		delete(r.entries, id)
	}
	r.mu.Unlock()

	for _, s := range stores {
		s.Close()
		metrics.StoresActive.Dec()
	}
}
