package board

import "github.com/xavierca1/ligue-crm/internal/entity"

// Cache is the board's working copy of the owner's leads. It is not safe for
// concurrent use on its own; Board serializes access.
type Cache struct {
	leads map[string]entity.Lead
	order []string
}

func NewCache() *Cache {
	return &Cache{leads: map[string]entity.Lead{}}
}

// Load replaces the whole cache. Snapshot order is kept for views.
func (c *Cache) Load(snapshot []entity.Lead) {
	c.leads = make(map[string]entity.Lead, len(snapshot))
	c.order = c.order[:0]
	for _, l := range snapshot {
		if _, dup := c.leads[l.ID]; !dup {
			c.order = append(c.order, l.ID)
		}
		c.leads[l.ID] = l
	}
}

// UpdateStatus swaps in a copy of the lead carrying st and returns the previous value.
func (c *Cache) UpdateStatus(id string, st entity.Stage) (entity.Lead, bool) {
	prev, ok := c.leads[id]
	if !ok {
		return entity.Lead{}, false
	}
	c.leads[id] = prev.WithStatus(st)
	return prev, true
}

// Put inserts or replaces a lead. New leads go to the front, matching the
// newest-first snapshot order.
func (c *Cache) Put(l entity.Lead) {
	if _, ok := c.leads[l.ID]; !ok {
		c.order = append([]string{l.ID}, c.order...)
	}
	c.leads[l.ID] = l
}

func (c *Cache) Get(id string) (entity.Lead, bool) {
	l, ok := c.leads[id]
	return l, ok
}

func (c *Cache) Len() int { return len(c.leads) }

func (c *Cache) Snapshot() []entity.Lead {
	out := make([]entity.Lead, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.leads[id])
	}
	return out
}
