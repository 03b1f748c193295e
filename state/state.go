// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	ns  common.Address
	key common.Bytes32
}

// bytes returns the key in committed store.
func (k storageKey) bytes() []byte {
	b := make([]byte, 0, len(k.ns)+len(k.key))
	b = append(b, k.ns[:]...)
	return append(b, k.key[:]...)
}

// State manages the ledger records.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[storageKey, []byte] // keeps revisions of records
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(func(key storageKey) ([]byte, bool, error) {
		v, err := stater.load(key.bytes())
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

// GetRawStorage returns the raw value for given namespace and key.
func (s *State) GetRawStorage(ns common.Address, key common.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{ns, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage sets the raw value. A nil or empty value clears the record.
func (s *State) SetRawStorage(ns common.Address, key common.Bytes32, raw []byte) {
	if len(raw) == 0 {
		raw = nil
	}
	s.sm.Put(storageKey{ns, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(ns common.Address, key common.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(ns, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(ns common.Address, key common.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(ns, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit all changes.
func (s *State) Stage() *Stage {
	changes := make(map[string][]byte)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		changes[string(k.bytes())] = v
		return true
	})
	return &Stage{stater: s.stater, changes: changes}
}
