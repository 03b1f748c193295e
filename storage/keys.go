// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"encoding/binary"

	"github.com/vechain/nftstaking/common"
)

type Key interface {
	Bytes() []byte
}

var (
	_ Key = common.Address{}
	_ Key = common.Bytes32{}
	_ Key = Uint32Key(0)
	_ Key = PairKey{}
)

// Uint32Key is a big-endian encoded uint32 key.
type Uint32Key uint32

func (k Uint32Key) Bytes() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(k))
}

// PairKey joins two keys. Both parts are length prefixed, so distinct pairs never collide.
type PairKey struct {
	First, Second Key
}

func Pair(first, second Key) PairKey {
	return PairKey{first, second}
}

func (k PairKey) Bytes() []byte {
	a, b := k.First.Bytes(), k.Second.Bytes()
	out := make([]byte, 0, len(a)+len(b)+2)
	out = append(out, byte(len(a)))
	out = append(out, a...)
	out = append(out, byte(len(b)))
	return append(out, b...)
}
