// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/ethereum/go-ethereum/log"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/staking/claim"
	"github.com/vechain/nftstaking/staking/globalstats"
	"github.com/vechain/nftstaking/staking/position"
	"github.com/vechain/nftstaking/staking/round"
	"github.com/vechain/nftstaking/staking/treasury"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/storage"
)

var logger = log.New("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

// Staking implements the operations of the staking ledger on one state.
type Staking struct {
	custody  AssetCustody
	verifier AssetVerification
	clock    Clock

	globalStatsService *globalstats.Service
	positionService    *position.Service
	treasuryService    *treasury.Service
	roundService       *round.Service
	claimEngine        *claim.Engine
}

// New create a new instance. Records are kept under addr.
func New(addr common.Address, state *state.State, collab Collaborators, cfg Config) *Staking {
	sctx := storage.NewContext(addr, state)

	positions := position.New(sctx)
	rounds := round.New(sctx, cfg.EmptyRoundPolicy)

	return &Staking{
		custody:  collab.Custody,
		verifier: collab.Verification,
		clock:    collab.Clock,

		globalStatsService: globalstats.New(sctx),
		positionService:    positions,
		treasuryService:    treasury.New(common.TreasuryAddress, collab.Values, collab.Access),
		roundService:       rounds,
		claimEngine:        claim.New(positions, rounds, cfg.LockPeriod),
	}
}

//
// Getters - no state change
//

// Statistics returns the aggregate statistics.
func (s *Staking) Statistics() (*globalstats.Statistics, error) {
	return s.globalStatsService.Get()
}

// Position returns the position of owner, nil if the owner never staked.
func (s *Staking) Position(owner common.Address) (*position.Position, error) {
	return s.positionService.GetPosition(owner)
}

// Detail returns the stake detail of (owner, asset), nil if absent.
func (s *Staking) Detail(owner common.Address, asset common.Bytes32) (*position.Detail, error) {
	return s.positionService.GetDetail(owner, asset)
}

// StakerOf returns the owner currently staking asset.
func (s *Staking) StakerOf(asset common.Bytes32) (common.Address, bool, error) {
	return s.positionService.StakerOf(asset)
}

// Round returns the round of index, nil if absent.
func (s *Staking) Round(index uint32) (*round.Round, error) {
	return s.roundService.Get(index)
}

// LastRound returns the highest round index, 0 if none.
func (s *Staking) LastRound() (uint32, error) {
	return s.roundService.Last()
}

// TreasuryAccount returns the value ledger account holding the reward pool.
func (s *Staking) TreasuryAccount() common.Address {
	return s.treasuryService.Account()
}

// TreasuryBalance returns the current balance of the reward pool.
func (s *Staking) TreasuryBalance() (uint64, error) {
	return s.treasuryService.Balance()
}

// Claimable describes the next claim of asset by user at time now.
func (s *Staking) Claimable(user common.Address, asset common.Bytes32, now uint64) (*claim.Status, error) {
	return s.claimEngine.Claimable(user, asset, now)
}

//
// Setters - state change
//

// Initialize creates the aggregate statistics.
func (s *Staking) Initialize(caller common.Address) error {
	logger.Debug("initializing", "caller", caller)

	if err := s.treasuryService.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.globalStatsService.Initialize(); err != nil {
		logger.Info("initialize failed", "error", err)
		return err
	}

	logger.Info("initialized", "caller", caller)
	return nil
}

// Stake locks asset of owner and opens or re-activates its stake detail.
func (s *Staking) Stake(owner common.Address, asset common.Bytes32) error {
	logger.Debug("staking", "owner", owner, "asset", asset)

	if _, err := s.globalStatsService.Get(); err != nil {
		return err
	}
	eligible, err := s.verifier.IsEligible(asset, owner)
	if err != nil {
		return errors.Wrap(err, "failed to verify asset")
	}
	if !eligible {
		return reverts.Newf(reverts.InvalidAsset, "asset %v is not eligible for %v", asset, owner)
	}
	if err := s.positionService.CheckLock(asset); err != nil {
		logger.Info("stake failed", "asset", asset, "error", err)
		return err
	}

	if err := s.custody.Lock(asset, owner, common.StakingAddress); err != nil {
		logger.Info("stake failed", "asset", asset, "error", err)
		return errors.WithMessage(err, "lock asset")
	}
	if _, err := s.positionService.Lock(owner, asset, s.clock.Now()); err != nil {
		return err
	}
	if err := s.globalStatsService.IncrementStaked(); err != nil {
		return err
	}

	logger.Info("staked", "owner", owner, "asset", asset)
	return nil
}

// Unstake releases asset of owner.
func (s *Staking) Unstake(owner common.Address, asset common.Bytes32) error {
	logger.Debug("unstaking", "owner", owner, "asset", asset)

	stats, err := s.globalStatsService.Get()
	if err != nil {
		return err
	}
	if _, err := s.positionService.CheckRelease(owner, asset); err != nil {
		logger.Info("unstake failed", "asset", asset, "error", err)
		return err
	}
	if stats.StakedCount == 0 {
		return reverts.New(reverts.CounterUnderflow, "aggregate staked count is zero")
	}

	if err := s.custody.Unlock(asset, owner, common.StakingAddress); err != nil {
		logger.Info("unstake failed", "asset", asset, "error", err)
		return errors.WithMessage(err, "unlock asset")
	}
	if _, err := s.positionService.Release(owner, asset); err != nil {
		return err
	}
	if err := s.globalStatsService.DecrementStaked(); err != nil {
		return err
	}

	logger.Info("unstaked", "owner", owner, "asset", asset)
	return nil
}

// Fund moves amount from admin into the treasury.
func (s *Staking) Fund(admin common.Address, amount uint64) error {
	logger.Debug("funding", "admin", admin, "amount", amount)

	if err := s.treasuryService.RequireAdmin(admin); err != nil {
		return err
	}
	if _, err := s.globalStatsService.Get(); err != nil {
		return err
	}
	if err := s.treasuryService.Fund(admin, amount); err != nil {
		logger.Info("fund failed", "admin", admin, "error", err)
		return err
	}

	logger.Info("funded", "admin", admin, "amount", amount)
	return nil
}

// Refund moves amount from the treasury back to admin.
func (s *Staking) Refund(admin common.Address, amount uint64) error {
	logger.Debug("refunding", "admin", admin, "amount", amount)

	if err := s.treasuryService.RequireAdmin(admin); err != nil {
		return err
	}
	if _, err := s.globalStatsService.Get(); err != nil {
		return err
	}
	remaining, err := s.treasuryService.Refund(admin, amount)
	if err != nil {
		logger.Info("refund failed", "admin", admin, "error", err)
		return err
	}
	// allocated funds can not exceed what is left
	if err := s.globalStatsService.ClampSnapshot(remaining); err != nil {
		return err
	}

	logger.Info("refunded", "admin", admin, "amount", amount)
	return nil
}

// Distribute opens round roundIndex and splits the funds added since the last snapshot
// over assetCount assets.
func (s *Staking) Distribute(admin common.Address, roundIndex, assetCount uint32) (*round.Round, error) {
	logger.Debug("distributing", "admin", admin, "round", roundIndex, "assets", assetCount)

	if err := s.treasuryService.RequireAdmin(admin); err != nil {
		return nil, err
	}
	stats, err := s.globalStatsService.Get()
	if err != nil {
		return nil, err
	}
	balance, err := s.treasuryService.Balance()
	if err != nil {
		return nil, err
	}

	r, err := s.roundService.Distribute(roundIndex, assetCount, balance, stats.BalanceSnapshot, s.clock.Now())
	if err != nil {
		logger.Info("distribute failed", "round", roundIndex, "error", err)
		return nil, err
	}
	if assetCount > 0 {
		if err := s.globalStatsService.AdvanceLevel(r.Allocated()); err != nil {
			return nil, err
		}
	}

	logger.Info("distributed", "round", roundIndex, "rewardPerAsset", r.RewardPerAsset, "assets", assetCount)
	return r, nil
}

// Claim pays the reward of round roundIndex for asset to user.
// It returns the paid amount.
func (s *Staking) Claim(user common.Address, asset common.Bytes32, roundIndex uint32) (uint64, error) {
	logger.Debug("claiming", "user", user, "asset", asset, "round", roundIndex)

	if _, err := s.globalStatsService.Get(); err != nil {
		return 0, err
	}
	c, err := s.claimEngine.Check(user, asset, roundIndex, s.clock.Now())
	if err != nil {
		logger.Info("claim failed", "asset", asset, "round", roundIndex, "error", err)
		return 0, err
	}

	reward := c.Reward()
	if err := s.treasuryService.Payout(user, reward); err != nil {
		logger.Info("claim failed", "asset", asset, "round", roundIndex, "error", err)
		return 0, err
	}
	if err := s.globalStatsService.ReleaseAllocated(reward); err != nil {
		return 0, err
	}
	if err := s.claimEngine.Apply(c); err != nil {
		return 0, err
	}

	logger.Info("claimed", "user", user, "asset", asset, "round", roundIndex, "reward", reward)
	return reward, nil
}
