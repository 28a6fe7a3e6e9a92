// Package cache implements a small in-memory LRU with per-entry TTL.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const janitorInterval = time.Minute

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

type LRUCache struct {
	capacity int
	ttl      time.Duration

	mu    sync.Mutex
	order *list.List
	index map[string]*list.Element
}

func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ele, ok := c.index[key]
	if !ok {
		return nil, false
	}
	ent := ele.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.remove(ele)
		return nil, false
	}
	c.order.MoveToFront(ele)
	return ent.value, true
}

func (c *LRUCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.index[key]; ok {
		ent := ele.Value.(*entry)
		ent.value = value
		ent.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(ele)
		return
	}

	ele := c.order.PushFront(&entry{key: key, value: value, expiresAt: time.Now().Add(c.ttl)})
	c.index[key] = ele

	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Delete drops key from the cache if present.
func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.index[key]; ok {
		c.remove(ele)
	}
}

func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRUCache) remove(ele *list.Element) {
	c.order.Remove(ele)
	delete(c.index, ele.Value.(*entry).key)
}

// Start launches the background janitor that evicts expired entries.
// It satisfies the application Starter hook.
func (c *LRUCache) Start(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (c *LRUCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ele := c.order.Back(); ele != nil; {
		prev := ele.Prev()
		if time.Now().After(ele.Value.(*entry).expiresAt) {
			c.remove(ele)
		}
		ele = prev
	}
}
