// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/qianbin/directcache"

	"github.com/vechain/nftstaking/kv"
)

// Stater is the state creator.
// States created by the same stater share one cache of committed records.
type Stater struct {
	store kv.Store
	cache *directcache.Cache
	rw    sync.RWMutex
}

// NewStater create a new stater. cacheSize is in bytes, 0 disables the cache.
func NewStater(store kv.Store, cacheSize int) *Stater {
	s := &Stater{store: store}
	if cacheSize > 0 {
		s.cache = directcache.New(cacheSize)
	}
	return s
}

// NewState create a new state object over the committed records.
func (s *Stater) NewState() *State {
	return newState(s)
}

// load reads a committed record, through the cache.
func (s *Stater) load(k []byte) ([]byte, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	if s.cache != nil {
		var val []byte
		if s.cache.AdvGet(k, func(v []byte) {
			val = append([]byte(nil), v...)
		}, false) {
			metricCacheCounter().AddWithLabel(1, map[string]string{"result": "hit"})
			if len(val) == 0 {
				return nil, nil
			}
			return val, nil
		}
		metricCacheCounter().AddWithLabel(1, map[string]string{"result": "miss"})
	}

	val, err := kv.GetOrNil(s.store, k)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(k, val)
	}
	return val, nil
}

// write flushes the bulk and refreshes cached entries.
func (s *Stater) write(bulk kv.Bulk, changes map[string][]byte) error {
	s.rw.Lock()
	defer s.rw.Unlock()

	if err := bulk.Write(); err != nil {
		return err
	}
	if s.cache != nil {
		for k, v := range changes {
			s.cache.Set([]byte(k), v)
		}
	}
	return nil
}
