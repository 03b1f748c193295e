// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package common

// SecondsPerDay is the length of a day in ledger time units.
const SecondsPerDay uint64 = 86400

// DefaultLockPeriod is the minimum time an asset must stay locked before a reward can be claimed.
const DefaultLockPeriod = 14 * SecondsPerDay

// Namespaces of the ledger components. Records of a component are addressed under its namespace.
var (
	StakingAddress  = BytesToAddress([]byte("Staking"))
	TreasuryAddress = BytesToAddress([]byte("Treasury"))
	BalanceAddress  = BytesToAddress([]byte("Balance"))
	AssetsAddress   = BytesToAddress([]byte("Assets"))
)
