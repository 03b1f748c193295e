// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaking/common"
)

// Mapping is a key/value storage abstraction for ledger records.
// Values are rlp encoded. A missing record decodes into the zero value of V
// (a newly allocated zero object when V is a pointer).
type Mapping[K Key, V any] struct {
	context *Context
	tag     []byte
}

func NewMapping[K Key, V any](context *Context, tag string) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, tag: []byte(tag)}
}

func (m *Mapping[K, V]) position(key K) common.Bytes32 {
	return common.Blake2b(m.context.address[:], key.Bytes(), m.tag)
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
