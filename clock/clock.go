// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides ledger time sources in unix seconds.
package clock

import (
	"sync/atomic"
	"time"
)

// System is the wall clock.
type System struct{}

// Now implements staking.Clock.
func (System) Now() uint64 {
	return uint64(time.Now().Unix()) //#nosec G115
}

// Fixed always returns the same time.
type Fixed uint64

// Now implements staking.Clock.
func (f Fixed) Now() uint64 {
	return uint64(f)
}

// Mock is a manually driven clock, safe for concurrent use.
type Mock struct {
	now atomic.Uint64
}

// NewMock creates a mock clock starting at now.
func NewMock(now uint64) *Mock {
	m := &Mock{}
	m.now.Store(now)
	return m
}

// Now implements staking.Clock.
func (m *Mock) Now() uint64 {
	return m.now.Load()
}

// Set moves the clock to now.
func (m *Mock) Set(now uint64) {
	m.now.Store(now)
}

// Advance moves the clock forward by seconds and returns the new time.
func (m *Mock) Advance(seconds uint64) uint64 {
	return m.now.Add(seconds)
}
