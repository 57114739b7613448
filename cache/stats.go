// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts lookups answered by a cache. The zero value is ready to use and
// safe for concurrent use.
type Stats struct {
	hit, miss atomic.Int64
	reported  atomic.Int32 // 1 + permille hit rate last reported, 0 before any report
}

// Hit records a hit and returns the hits so far.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss and returns the misses so far.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Counts returns the number of hits and misses.
func (cs *Stats) Counts() (hit, miss int64) {
	return cs.hit.Load(), cs.miss.Load()
}

// Rate returns the hit rate, 0 before any lookup.
func (cs *Stats) Rate() float64 {
	return HitRate(cs.Counts())
}

// RateChanged reports whether the hit rate moved by at least 0.1% since the
// previous call. The first call after a lookup always reports a change.
func (cs *Stats) RateChanged() bool {
	hit, miss := cs.Counts()
	if hit+miss == 0 {
		return false
	}
	permille := int32(HitRate(hit, miss)*1000) + 1
	return cs.reported.Swap(permille) != permille
}

// HitRate returns hits over lookups, 0 when there's no lookup.
func HitRate(hit, miss int64) float64 {
	if lookups := hit + miss; lookups > 0 {
		return float64(hit) / float64(lookups)
	}
	return 0
}
