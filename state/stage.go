// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// Stage abstracts changes on the committed records.
type Stage struct {
	stater  *Stater
	changes map[string][]byte
}

// Len returns count of changed records.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes in one bulk.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	bulk := s.stater.store.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete([]byte(k))
		} else {
			err = bulk.Put([]byte(k), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := s.stater.write(bulk, s.changes); err != nil {
		return &Error{err}
	}
	return nil
}
