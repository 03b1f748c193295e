// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU a typed LRU cache extends golang-lru.
type LRU[K comparable, V any] struct {
	cache *lru.Cache
	stats Stats
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: cache}, nil
}

// Loader defines loader to load value.
type Loader[K comparable, V any] func(key K) (V, error)

// Get returns the cached value of key.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.cache.Get(key); ok {
		l.stats.Hit()
		return v.(V), true
	}
	l.stats.Miss()
	var zero V
	return zero, false
}

// Add adds a value to the cache.
func (l *LRU[K, V]) Add(key K, val V) {
	l.cache.Add(key, val)
}

// Remove removes the value of key.
func (l *LRU[K, V]) Remove(key K) {
	l.cache.Remove(key)
}

// Len returns the number of cached values.
func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// Purge clears the cache.
func (l *LRU[K, V]) Purge() {
	l.cache.Purge()
}

// Stats returns the hit/miss counters, see Stats.Stats.
func (l *LRU[K, V]) Stats() (bool, int64, int64) {
	return l.stats.Stats()
}

// GetOrLoad first try to get from cache, do load if missed.
// The loaded value is cached only when keep returns true.
func (l *LRU[K, V]) GetOrLoad(key K, loader Loader[K, V], keep func(V) bool) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if keep == nil || keep(v) {
		l.Add(key, v)
	}
	return v, nil
}
