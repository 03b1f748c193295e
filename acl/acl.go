// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package acl decides which identities administer the ledger.
package acl

import (
	"sync"

	"github.com/vechain/nftstaking/common"
)

// Fixed is a single administrator identity.
type Fixed common.Address

// IsAdmin implements staking.AccessControl.
func (f Fixed) IsAdmin(identity common.Address) bool {
	return !identity.IsZero() && identity == common.Address(f)
}

// Set is a mutable set of administrators, safe for concurrent use.
type Set struct {
	lock   sync.RWMutex
	admins map[common.Address]struct{}
}

// NewSet creates a set with the given administrators.
func NewSet(admins ...common.Address) *Set {
	s := &Set{admins: make(map[common.Address]struct{}, len(admins))}
	for _, a := range admins {
		s.Add(a)
	}
	return s
}

func (s *Set) Add(identity common.Address) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.admins[identity] = struct{}{}
}

func (s *Set) Remove(identity common.Address) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.admins, identity)
}

// IsAdmin implements staking.AccessControl.
func (s *Set) IsAdmin(identity common.Address) bool {
	if identity.IsZero() {
		return false
	}
	s.lock.RLock()
	defer s.lock.RUnlock()
	_, ok := s.admins[identity]
	return ok
}

// List returns the administrators.
func (s *Set) List() []common.Address {
	s.lock.RLock()
	defer s.lock.RUnlock()
	list := make([]common.Address, 0, len(s.admins))
	for a := range s.admins {
		list = append(list, a)
	}
	return list
}
