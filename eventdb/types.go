// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/vechain/nftstaking/common"
)

// Kind names a committed ledger operation.
type Kind string

const (
	KindInitialize Kind = "initialize"
	KindStake      Kind = "stake"
	KindUnstake    Kind = "unstake"
	KindFund       Kind = "fund"
	KindRefund     Kind = "refund"
	KindDistribute Kind = "distribute"
	KindClaim      Kind = "claim"
	KindMint       Kind = "mint"
	KindRegister   Kind = "register"
	KindTransfer   Kind = "transfer"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Activity is one committed operation.
type Activity struct {
	Seq    uint64          `json:"seq"`
	Kind   Kind            `json:"kind"`
	Caller common.Address  `json:"caller"`
	Asset  *common.Bytes32 `json:"asset,omitempty"`
	Round  uint32          `json:"round,omitempty"`
	Amount uint64          `json:"amount,omitempty"`
	Time   uint64          `json:"time"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter narrows an activity query. Nil fields match everything.
type Filter struct {
	Caller  *common.Address `json:"caller"`
	Kind    Kind            `json:"kind"`
	Asset   *common.Bytes32 `json:"asset"`
	Order   Order           `json:"order"` // default asc
	Options *Options        `json:"options"`
}
