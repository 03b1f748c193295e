// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

// Statistics is the ledger wide aggregate.
type Statistics struct {
	StakedCount     uint32 // equals the sum of StakedCount over all positions
	RewardLevel     uint32 // count of rounds that allocated rewards
	BalanceSnapshot uint64 // treasury funds allocated to rounds and not yet claimed
	Initialized     bool
}
