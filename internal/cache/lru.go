package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache holds up to maxSize values for ttl each. Clear starts a new
// generation; writes carrying an older generation are dropped, so a value
// computed before an invalidation never lands after it.
type LRUCache[T any] struct {
	mu         sync.Mutex
	maxSize    int
	ttl        time.Duration
	items      map[string]*list.Element
	order      *list.List
	generation uint64
	hits       uint64
	misses     uint64
	now        func() time.Time
}

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// Stats reports cache effectiveness since creation.
type Stats struct {
	Size       int    `json:"size"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Generation uint64 `json:"generation"`
}

func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LRUCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	e := elem.Value.(*entry[T])
	if c.now().After(e.expiresAt) {
		c.remove(elem)
		c.misses++
		return zero, false
	}
	c.order.MoveToFront(elem)
	c.hits++
	return e.value, true
}

// Set stores value under the current generation.
func (c *LRUCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value)
}

// SetIfCurrent stores value only when no Clear happened since generation
// was read. It reports whether the value was stored.
func (c *LRUCache[T]) SetIfCurrent(key string, value T, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.put(key, value)
	return true
}

func (c *LRUCache[T]) put(key string, value T) {
	e := &entry[T]{key: key, value: value, expiresAt: c.now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(e)
	for c.order.Len() > c.maxSize {
		c.remove(c.order.Back())
	}
}

func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *LRUCache[T]) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*entry[T]).key)
	c.order.Remove(elem)
}

// CleanExpired removes expired entries and returns how many were removed.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			c.remove(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Clear drops every entry and starts a new generation.
func (c *LRUCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.generation++
}

func (c *LRUCache[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRUCache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: len(c.items), Hits: c.hits, Misses: c.misses, Generation: c.generation}
}
