// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/staking/round"
)

// Config holds the staking parameters.
type Config struct {
	LockPeriod       uint64 // seconds an asset must stay locked before claiming
	EmptyRoundPolicy round.EmptyRoundPolicy
}

// DefaultConfig returns the default parameters.
func DefaultConfig() Config {
	return Config{
		LockPeriod:       common.DefaultLockPeriod,
		EmptyRoundPolicy: round.AllowEmpty,
	}
}
