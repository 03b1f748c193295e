// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats is a utility for collecting cache hit/miss.
type Stats struct {
	hit, miss atomic.Int64
	flag      atomic.Int32
}

// Hit records a hit.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Stats returns the number of hits and misses and whether
// the hit rate changed by at least 0.1% since the last call.
func (cs *Stats) Stats() (changed bool, hit int64, miss int64) {
	hit = cs.hit.Load()
	miss = cs.miss.Load()

	var rate float64
	if lookups := hit + miss; lookups > 0 {
		rate = float64(hit) / float64(lookups)
	}
	flag := int32(rate * 1000)
	return cs.flag.Swap(flag) != flag, hit, miss
}
