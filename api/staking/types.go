// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/staking/claim"
	"github.com/vechain/nftstaking/staking/globalstats"
	"github.com/vechain/nftstaking/staking/position"
)

type CallerRequest struct {
	Caller common.Address `json:"caller"`
}

type AssetRequest struct {
	Caller common.Address `json:"caller"`
	Asset  common.Bytes32 `json:"asset"`
}

type ClaimRequest struct {
	Caller common.Address `json:"caller"`
	Asset  common.Bytes32 `json:"asset"`
	Round  uint32         `json:"round"`
}

type ClaimResponse struct {
	Round  uint32 `json:"round"`
	Reward uint64 `json:"reward"`
}

type Statistics struct {
	StakedCount     uint32 `json:"stakedCount"`
	RewardLevel     uint32 `json:"rewardLevel"`
	BalanceSnapshot uint64 `json:"balanceSnapshot"`
}

func convertStatistics(s *globalstats.Statistics) *Statistics {
	return &Statistics{
		StakedCount:     s.StakedCount,
		RewardLevel:     s.RewardLevel,
		BalanceSnapshot: s.BalanceSnapshot,
	}
}

type Position struct {
	Owner          common.Address `json:"owner"`
	StakedCount    uint32         `json:"stakedCount"`
	TotalReward    uint64         `json:"totalReward"`
	TransferAmount uint64         `json:"transferAmount"`
}

func convertPosition(p *position.Position) *Position {
	return &Position{
		Owner:          p.Owner,
		StakedCount:    p.StakedCount,
		TotalReward:    p.TotalReward,
		TransferAmount: p.TransferAmount,
	}
}

type Detail struct {
	Owner       common.Address `json:"owner"`
	Asset       common.Bytes32 `json:"asset"`
	LockStart   uint64         `json:"lockStart"`
	ClaimCursor uint32         `json:"claimCursor"`
	Staked      bool           `json:"staked"`
	Claim       *claim.Status  `json:"claim,omitempty"`
}

func convertDetail(d *position.Detail, status *claim.Status) *Detail {
	return &Detail{
		Owner:       d.Owner,
		Asset:       d.Asset,
		LockStart:   d.LockStart,
		ClaimCursor: d.ClaimCursor,
		Staked:      d.Staked,
		Claim:       status,
	}
}

type AssetStaker struct {
	Asset  common.Bytes32  `json:"asset"`
	Staked bool            `json:"staked"`
	Staker *common.Address `json:"staker"`
}
