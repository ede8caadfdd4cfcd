// Package cache holds the bounded map from a style fingerprint to the engine
// style ID it was registered under.
package cache

import (
	"sync"
)

type entry struct {
	fingerprint string
	id          int
	prev, next  *entry
}

// LRU is a least-recently-used map from fingerprint to style ID, safe for
// concurrent use.
type LRU struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*entry
	// root is the sentinel of a circular list; root.next is the most
	// recently used entry and root.prev the least.
	root entry
}

// New returns an empty cache holding at most capacity entries.
// A capacity below 1 is raised to 1.
func New(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	c := &LRU{
		capacity: capacity,
		items:    make(map[string]*entry, capacity),
	}
	c.root.next = &c.root
	c.root.prev = &c.root
	return c
}

// Get returns the style ID stored for fingerprint and marks it as used.
func (c *LRU) Get(fingerprint string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[fingerprint]
	if !ok {
		return 0, false
	}
	c.unlink(e)
	c.pushFront(e)
	return e.id, true
}

// Set stores id under fingerprint, evicting the least recently used entry
// when the cache is full.
func (c *LRU) Set(fingerprint string, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[fingerprint]; ok {
		e.id = id
		c.unlink(e)
		c.pushFront(e)
		return
	}

	e := &entry{fingerprint: fingerprint, id: id}
	c.items[fingerprint] = e
	c.pushFront(e)

	if len(c.items) > c.capacity {
		oldest := c.root.prev
		c.unlink(oldest)
		delete(c.items, oldest.fingerprint)
	}
}

// Delete drops fingerprint if present.
func (c *LRU) Delete(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[fingerprint]; ok {
		c.unlink(e)
		delete(c.items, fingerprint)
	}
}

// Len returns the number of entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry, c.capacity)
	c.root.next = &c.root
	c.root.prev = &c.root
}

func (c *LRU) pushFront(e *entry) {
	e.prev = &c.root
	e.next = c.root.next
	c.root.next.prev = e
	c.root.next = e
}

func (c *LRU) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
}
