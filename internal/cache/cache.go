package cache

import (
	"sync"
	"time"

	"github.com/jobsplus/jobsplus/internal/domain/job"
)

// Listings is a small TTL cache fronting the public job listing. Any write to
// the jobs store invalidates the whole cache; with a handful of filter
// combinations that is cheaper than tracking which keys a write touches.
type Listings struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

type entry struct {
	jobs []job.Job
	exp  time.Time
}

func NewListings(ttl time.Duration) *Listings {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Listings{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Listings) Get(key string) ([]job.Job, bool) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.jobs, true
}

func (c *Listings) Set(key string, jobs []job.Job) {
	c.mu.Lock()
	c.m[key] = entry{jobs: jobs, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops every cached listing.
func (c *Listings) Invalidate() {
	c.mu.Lock()
	c.m = make(map[string]entry)
	c.mu.Unlock()
}
