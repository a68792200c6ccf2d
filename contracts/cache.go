package contracts

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores loaded interfaces by key. Implementations must be safe for concurrent use.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Put(key string, value V)
	Purge()
}

type lruCache[V any] struct {
	c *lru.Cache[string, V]
}

// NewLRUCache returns a Cache holding at most size entries, evicting the least recently used.
func NewLRUCache[V any](size int) (Cache[V], error) {
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}

	return &lruCache[V]{c: c}, nil
}

func (l *lruCache[V]) Get(key string) (V, bool) { return l.c.Get(key) }
func (l *lruCache[V]) Put(key string, value V)  { l.c.Add(key, value) }
func (l *lruCache[V]) Purge()                   { l.c.Purge() }

// NopCache never stores anything.
type NopCache[V any] struct{}

func (NopCache[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}
func (NopCache[V]) Put(string, V) {}
func (NopCache[V]) Purge()        {}
