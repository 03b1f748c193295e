// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package round

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/storage"
)

const (
	tagRound      = "round"
	tagRoundCount = "round-count"
)

// Service is the append-only ledger of rounds.
type Service struct {
	rounds *storage.Mapping[storage.Uint32Key, *Round]
	last   *storage.Value[uint32]
	policy EmptyRoundPolicy
}

func New(sctx *storage.Context, policy EmptyRoundPolicy) *Service {
	return &Service{
		rounds: storage.NewMapping[storage.Uint32Key, *Round](sctx, tagRound),
		last:   storage.NewValue[uint32](sctx, tagRoundCount),
		policy: policy,
	}
}

// Get returns the round of index, nil if absent.
func (s *Service) Get(index uint32) (*Round, error) {
	r, err := s.rounds.Get(storage.Uint32Key(index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get round")
	}
	if r.RoundIndex == 0 {
		return nil, nil
	}
	return r, nil
}

// Last returns the highest round index, 0 when no round exists.
func (s *Service) Last() (uint32, error) {
	last, err := s.last.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get last round")
	}
	return last, nil
}

// Distribute opens round index over assetCount assets.
// balance is the current treasury balance, snapshot the funds already allocated.
func (s *Service) Distribute(index, assetCount uint32, balance, snapshot, now uint64) (*Round, error) {
	existing, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, reverts.Newf(reverts.DuplicateRound, "round %d already exists", index)
	}
	last, err := s.Last()
	if err != nil {
		return nil, err
	}
	if index != last+1 {
		return nil, reverts.Newf(reverts.RoundMismatch, "next round is %d, got %d", last+1, index)
	}
	if assetCount == 0 && s.policy == RejectEmpty {
		return nil, reverts.Newf(reverts.EmptyRound, "round %d has no staked asset", index)
	}

	r := &Round{
		RoundIndex:     index,
		StartTime:      now,
		RewardPerAsset: RewardPerAsset(balance, snapshot, assetCount),
		AssetCount:     assetCount,
	}
	if err := s.rounds.Set(storage.Uint32Key(index), r); err != nil {
		return nil, errors.Wrap(err, "failed to set round")
	}
	if err := s.last.Set(index); err != nil {
		return nil, errors.Wrap(err, "failed to set last round")
	}
	return r, nil
}
