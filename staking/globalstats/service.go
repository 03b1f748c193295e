// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/storage"
)

const tagStatistic = "statistic"

// Service manages the ledger wide staking totals.
type Service struct {
	stats *storage.Value[*Statistics]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		stats: storage.NewValue[*Statistics](sctx, tagStatistic),
	}
}

// Initialize creates the aggregate with all counters at zero.
func (s *Service) Initialize() error {
	stats, err := s.stats.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get statistics")
	}
	if stats.Initialized {
		return reverts.ErrAlreadyInitialized
	}
	return s.set(&Statistics{Initialized: true})
}

// Get returns the aggregate, reverting with NotInitialized before Initialize.
func (s *Service) Get() (*Statistics, error) {
	stats, err := s.stats.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get statistics")
	}
	if !stats.Initialized {
		return nil, reverts.ErrNotInitialized
	}
	return stats, nil
}

// IncrementStaked counts one more staked asset.
func (s *Service) IncrementStaked() error {
	stats, err := s.Get()
	if err != nil {
		return err
	}
	stats.StakedCount++
	return s.set(stats)
}

// DecrementStaked counts one less staked asset.
func (s *Service) DecrementStaked() error {
	stats, err := s.Get()
	if err != nil {
		return err
	}
	if stats.StakedCount == 0 {
		return reverts.New(reverts.CounterUnderflow, "aggregate staked count is zero")
	}
	stats.StakedCount--
	return s.set(stats)
}

// AdvanceLevel records a rewarding round which allocated the given funds.
func (s *Service) AdvanceLevel(allocated uint64) error {
	stats, err := s.Get()
	if err != nil {
		return err
	}
	stats.RewardLevel++
	stats.BalanceSnapshot += allocated
	return s.set(stats)
}

// ReleaseAllocated removes paid out funds from the snapshot.
func (s *Service) ReleaseAllocated(amount uint64) error {
	stats, err := s.Get()
	if err != nil {
		return err
	}
	if amount > stats.BalanceSnapshot {
		amount = stats.BalanceSnapshot
	}
	stats.BalanceSnapshot -= amount
	return s.set(stats)
}

// ClampSnapshot keeps the snapshot within the treasury balance.
func (s *Service) ClampSnapshot(balance uint64) error {
	stats, err := s.Get()
	if err != nil {
		return err
	}
	if stats.BalanceSnapshot <= balance {
		return nil
	}
	stats.BalanceSnapshot = balance
	return s.set(stats)
}

func (s *Service) set(stats *Statistics) error {
	if err := s.stats.Set(stats); err != nil {
		return errors.Wrap(err, "failed to set statistics")
	}
	return nil
}
