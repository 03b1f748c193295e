// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

// Value is a singleton record stored under a fixed tag.
type Value[V any] struct {
	mapping *Mapping[PairKey, V]
}

func NewValue[V any](context *Context, tag string) *Value[V] {
	return &Value[V]{mapping: NewMapping[PairKey, V](context, tag)}
}

var singleton = Pair(Uint32Key(0), Uint32Key(0))

func (v *Value[V]) Get() (V, error) {
	return v.mapping.Get(singleton)
}

func (v *Value[V]) Exists() (bool, error) {
	return v.mapping.Exists(singleton)
}

func (v *Value[V]) Set(value V) error {
	return v.mapping.Set(singleton, value)
}
