package ranking

import (
	"sync"

	"github.com/jonathan/skillmatch/internal/types"
)

// Key identifies a memoized match. Version is the candidate data version; Year is the reference
// year, since ongoing experience grows with it.
type Key struct {
	JobID       string
	CandidateID string
	Version     int64
	Year        int
}

// Cache memoizes match results. Get and Put copy results so callers own what they receive.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*types.MatchResult
	maxSize int
}

// NewCache creates a cache holding at most maxSize results. A maxSize of 0 means unbounded.
func NewCache(maxSize int) *Cache {
	return &Cache{
		entries: make(map[Key]*types.MatchResult),
		maxSize: maxSize,
	}
}

// Get returns a copy of the cached result for key.
func (c *Cache) Get(key Key) (*types.MatchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return cloneResult(result), true
}

// Put stores a copy of result. When the cache is full it is emptied first.
func (c *Cache) Put(key Key, result *types.MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.entries = make(map[Key]*types.MatchResult)
	}
	c.entries[key] = cloneResult(result)
}

// InvalidateJob drops every entry for jobID.
func (c *Cache) InvalidateJob(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.JobID == jobID {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneResult(r *types.MatchResult) *types.MatchResult {
	out := *r
	out.Strengths = append([]string{}, r.Strengths...)
	out.Gaps = append([]string{}, r.Gaps...)
	out.Recommendations = append([]string{}, r.Recommendations...)
	return &out
}
