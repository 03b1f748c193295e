// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter provides channel to wait for.
// A value read from the channel is true for Signal, a closed channel means Broadcast.
type Waiter interface {
	C() <-chan bool
}

// Signal is a channel based rendezvous point for goroutines waiting for
// or announcing an event. Unlike sync.Cond it can be used in a select.
type Signal struct {
	mu sync.Mutex
	ch chan bool
}

// current returns the active channel. s.mu must be held.
func (s *Signal) current() chan bool {
	if s.ch == nil {
		s.ch = make(chan bool, 1)
	}
	return s.ch
}

// Signal wakes one goroutine that is waiting on s.
func (s *Signal) Signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case s.current() <- true:
	default:
	}
}

// Broadcast wakes all goroutines that are waiting on s.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.current())
	s.ch = make(chan bool, 1)
}

// NewWaiter creates a Waiter. Each call to C returns the channel observed at the
// previous call, so events raised between two waits are not lost.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	ref := s.current()
	s.mu.Unlock()

	return waiterFunc(func() <-chan bool {
		ch := ref

		s.mu.Lock()
		ref = s.current()
		s.mu.Unlock()

		return ch
	})
}

type waiterFunc func() <-chan bool

func (w waiterFunc) C() <-chan bool {
	return w()
}
