// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/nftstaking/common"
)

func RandomHash() common.Bytes32 {
	var b32 common.Bytes32

	rand.Read(b32[:])
	return b32
}

// RandAsset returns a random asset id.
func RandAsset() common.Bytes32 {
	return RandomHash()
}

func RandAddress() (addr common.Address) {
	rand.Read(addr[:])
	return
}
