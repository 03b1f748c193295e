// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package claim evaluates reward claims against distribution rounds.
//
// Claims of an asset go strictly one round at a time: the only claimable round is
// the one right after the claim cursor. A claim also requires the lock period to have
// elapsed since the lock start; a successful claim moves the lock start to the start
// time of the claimed round.
package claim

import (
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/staking/position"
	"github.com/vechain/nftstaking/staking/round"
)

// Engine checks and applies claims.
type Engine struct {
	positions  *position.Service
	rounds     *round.Service
	lockPeriod uint64
}

func New(positions *position.Service, rounds *round.Service, lockPeriod uint64) *Engine {
	return &Engine{
		positions:  positions,
		rounds:     rounds,
		lockPeriod: lockPeriod,
	}
}

// Claim is a checked claim, ready to be paid and applied.
type Claim struct {
	Detail *position.Detail
	Round  *round.Round
}

// Reward returns the amount paid for the claim.
func (c *Claim) Reward() uint64 {
	return c.Round.RewardPerAsset
}

// Check validates a claim of user on asset for roundIndex at time now.
// It performs no state change.
func (e *Engine) Check(user common.Address, asset common.Bytes32, roundIndex uint32, now uint64) (*Claim, error) {
	detail, err := e.positions.ActiveDetail(user, asset)
	if err != nil {
		return nil, err
	}
	r, err := e.rounds.Get(roundIndex)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, reverts.Newf(reverts.RecordNotFound, "round %d not found", roundIndex)
	}
	if roundIndex != detail.ClaimCursor+1 {
		return nil, reverts.Newf(reverts.RoundMismatch, "next claimable round is %d, got %d", detail.ClaimCursor+1, roundIndex)
	}
	if elapsed := detail.Elapsed(now); elapsed < e.lockPeriod {
		return nil, reverts.Newf(reverts.NotYetEligible, "locked for %d of %d seconds", elapsed, e.lockPeriod)
	}
	return &Claim{Detail: detail, Round: r}, nil
}

// Apply advances the claim cursor and accounts the reward on the position.
func (e *Engine) Apply(c *Claim) error {
	d := c.Detail
	d.ClaimCursor = c.Round.RoundIndex
	d.LockStart = c.Round.StartTime
	if err := e.positions.UpdateDetail(d); err != nil {
		return err
	}
	return e.positions.RecordReward(d.Owner, c.Reward())
}

// Status describes the next claim of a staked asset.
type Status struct {
	NextRound   uint32 `json:"nextRound"`
	RoundExists bool   `json:"roundExists"`
	EligibleAt  uint64 `json:"eligibleAt"`
	Claimable   bool   `json:"claimable"`
}

// Claimable reports whether user can claim the next round of asset at time now.
func (e *Engine) Claimable(user common.Address, asset common.Bytes32, now uint64) (*Status, error) {
	detail, err := e.positions.ActiveDetail(user, asset)
	if err != nil {
		return nil, err
	}
	next := detail.ClaimCursor + 1
	r, err := e.rounds.Get(next)
	if err != nil {
		return nil, err
	}
	status := &Status{
		NextRound:   next,
		RoundExists: r != nil,
		EligibleAt:  detail.LockStart + e.lockPeriod,
	}
	status.Claimable = status.RoundExists && detail.Elapsed(now) >= e.lockPeriod
	return status, nil
}
