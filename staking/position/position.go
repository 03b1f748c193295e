// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import "github.com/vechain/nftstaking/common"

// Position is the staking record of one owner.
type Position struct {
	Owner          common.Address
	StakedCount    uint32
	TotalReward    uint64 // sum of all claimed rewards
	TransferAmount uint64 // last claimed reward
}

// IsEmpty returns whether the entry can be treated as absent.
func (p *Position) IsEmpty() bool {
	return p.Owner.IsZero()
}

// Detail is the staking record of one asset held by an owner.
type Detail struct {
	Owner       common.Address
	Asset       common.Bytes32
	LockStart   uint64 // start of the current lock window
	ClaimCursor uint32 // last round claimed against this asset
	Staked      bool   // false once the asset is unstaked
}

// IsEmpty returns whether the entry can be treated as absent.
func (d *Detail) IsEmpty() bool {
	return d.Owner.IsZero()
}

// Elapsed returns the time the asset has been locked since LockStart.
func (d *Detail) Elapsed(now uint64) uint64 {
	if now < d.LockStart {
		return 0
	}
	return now - d.LockStart
}
