package cache

import (
	"errors"
	"sync"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
)

var (
	// ErrRevisionMismatch means the caller's snapshot of the cache is
	// stale: another mutation landed first. The caller must refresh and
	// retry instead of applying the patch blindly.
	ErrRevisionMismatch = errors.New("commission cache revision mismatch")
	ErrNotCached        = errors.New("commission not in cache")
)

// CommissionCache is the admin panel's ordered, in-memory view of server
// state. It is not a source of truth: ReplaceAll rebuilds it wholesale
// from a server list, and the patch operations apply optimistic local
// edits that a failed server call later compensates.
//
// Every mutation bumps a revision counter. Patch operations take the
// revision the caller last observed and refuse to apply against a newer
// one, which forces overlapping admin actions into a refresh instead of
// a silent last-writer-wins.
type CommissionCache struct {
	mu       sync.RWMutex
	ordered  []commission.Commission
	revision uint64
}

func New() *CommissionCache {
	return &CommissionCache{}
}

// Revision returns the current revision stamp alongside nothing else;
// use All when the list itself is needed.
func (c *CommissionCache) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// All returns a copy of the cached list in display order together with
// the revision it was read at.
func (c *CommissionCache) All() ([]commission.Commission, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]commission.Commission, len(c.ordered))
	copy(out, c.ordered)
	return out, c.revision
}

func (c *CommissionCache) Get(id string) (commission.Commission, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.ordered {
		if item.ID() == id {
			return item, true
		}
	}
	return nil, false
}

func (c *CommissionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}

// ReplaceAll rebuilds the cache from a fresh server list. It never
// checks a revision: a refresh always wins.
func (c *CommissionCache) ReplaceAll(items []commission.Commission) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ordered = make([]commission.Commission, len(items))
	copy(c.ordered, items)
	c.revision++
	return c.revision
}

// SetStatus rewrites the target's status in place. Returns the previous
// status so a failed server PATCH can revert.
func (c *CommissionCache) SetStatus(atRevision uint64, id string, status commission.Status) (commission.Status, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if atRevision != c.revision {
		return "", c.revision, ErrRevisionMismatch
	}
	for i, item := range c.ordered {
		if item.ID() == id {
			previous := item.Status()
			c.ordered[i] = item.SetStatus(status)
			c.revision++
			return previous, c.revision, nil
		}
	}
	return "", c.revision, ErrNotCached
}

// Remove deletes the record locally and returns it with its position so
// a failed server DELETE can reinsert it where it was.
func (c *CommissionCache) Remove(atRevision uint64, id string) (commission.Commission, int, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if atRevision != c.revision {
		return nil, 0, c.revision, ErrRevisionMismatch
	}
	for i, item := range c.ordered {
		if item.ID() == id {
			c.ordered = append(c.ordered[:i], c.ordered[i+1:]...)
			c.revision++
			return item, i, c.revision, nil
		}
	}
	return nil, 0, c.revision, ErrNotCached
}

// Reinsert puts a removed record back at its original position. Used as
// the compensating action for a failed delete, so it bypasses the
// revision check like ReplaceAll does.
func (c *CommissionCache) Reinsert(item commission.Commission, position int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if position < 0 {
		position = 0
	}
	if position > len(c.ordered) {
		position = len(c.ordered)
	}
	c.ordered = append(c.ordered, nil)
	copy(c.ordered[position+1:], c.ordered[position:])
	c.ordered[position] = item
	c.revision++
	return c.revision
}

// InsertOptimistic puts a client-synthesized record at the head of the
// list. The record must carry a temporary identifier.
func (c *CommissionCache) InsertOptimistic(atRevision uint64, item commission.Commission) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if atRevision != c.revision {
		return c.revision, ErrRevisionMismatch
	}
	c.ordered = append([]commission.Commission{item}, c.ordered...)
	c.revision++
	return c.revision, nil
}

// Confirm swaps the optimistic record for the server-confirmed one,
// matched by temporary identifier. Runs unconditionally: by the time
// the server has acknowledged the create, the swap must land.
func (c *CommissionCache) Confirm(tempID string, confirmed commission.Commission) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.ordered {
		if item.ID() == tempID {
			c.ordered[i] = confirmed
			c.revision++
			return c.revision, nil
		}
	}
	return c.revision, ErrNotCached
}

// Discard drops the optimistic record after the server rejected the
// create. Also unconditional.
func (c *CommissionCache) Discard(tempID string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.ordered {
		if item.ID() == tempID {
			c.ordered = append(c.ordered[:i], c.ordered[i+1:]...)
			c.revision++
			return c.revision, nil
		}
	}
	return c.revision, ErrNotCached
}
