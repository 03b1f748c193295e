// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/storage"
)

const (
	tagPosition = "position"
	tagDetail   = "detail"
	tagStaker   = "staker"
)

// Service manages positions, details and the asset to staker index.
type Service struct {
	positions *storage.Mapping[common.Address, *Position]
	details   *storage.Mapping[storage.PairKey, *Detail]
	stakers   *storage.Mapping[common.Bytes32, common.Address]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		positions: storage.NewMapping[common.Address, *Position](sctx, tagPosition),
		details:   storage.NewMapping[storage.PairKey, *Detail](sctx, tagDetail),
		stakers:   storage.NewMapping[common.Bytes32, common.Address](sctx, tagStaker),
	}
}

// GetPosition returns the position of owner, nil if the owner never staked.
func (s *Service) GetPosition(owner common.Address) (*Position, error) {
	p, err := s.positions.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if p.IsEmpty() {
		return nil, nil
	}
	return p, nil
}

// GetDetail returns the detail of (owner, asset), nil if never staked.
func (s *Service) GetDetail(owner common.Address, asset common.Bytes32) (*Detail, error) {
	d, err := s.details.Get(storage.Pair(owner, asset))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get detail")
	}
	if d.IsEmpty() {
		return nil, nil
	}
	return d, nil
}

// StakerOf returns the owner currently staking the asset.
func (s *Service) StakerOf(asset common.Bytes32) (common.Address, bool, error) {
	staker, err := s.stakers.Get(asset)
	if err != nil {
		return common.Address{}, false, errors.Wrap(err, "failed to get staker")
	}
	return staker, !staker.IsZero(), nil
}

// ActiveDetail returns the staked detail of asset, which must be held by owner.
func (s *Service) ActiveDetail(owner common.Address, asset common.Bytes32) (*Detail, error) {
	staker, ok, err := s.StakerOf(asset)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reverts.Newf(reverts.RecordNotFound, "asset %v is not staked", asset)
	}
	if staker != owner {
		return nil, reverts.Newf(reverts.Unauthorized, "asset %v is staked by another owner", asset)
	}
	d, err := s.GetDetail(owner, asset)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.Staked {
		return nil, reverts.Newf(reverts.RecordNotFound, "no stake detail for asset %v", asset)
	}
	return d, nil
}

// CheckLock verifies the asset can be locked by owner.
func (s *Service) CheckLock(asset common.Bytes32) error {
	_, ok, err := s.StakerOf(asset)
	if err != nil {
		return err
	}
	if ok {
		return reverts.Newf(reverts.AlreadyStaked, "asset %v already staked", asset)
	}
	return nil
}

// Lock records the asset as staked by owner.
// A previously released detail is re-activated with its claim cursor kept.
func (s *Service) Lock(owner common.Address, asset common.Bytes32, now uint64) (*Detail, error) {
	if err := s.CheckLock(asset); err != nil {
		return nil, err
	}

	p, err := s.positions.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	p.Owner = owner
	p.StakedCount++
	if err := s.positions.Set(owner, p); err != nil {
		return nil, errors.Wrap(err, "failed to set position")
	}

	key := storage.Pair(owner, asset)
	d, err := s.details.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get detail")
	}
	if d.IsEmpty() {
		d = &Detail{Owner: owner, Asset: asset}
	}
	d.LockStart = now
	d.Staked = true
	if err := s.details.Set(key, d); err != nil {
		return nil, errors.Wrap(err, "failed to set detail")
	}

	if err := s.stakers.Set(asset, owner); err != nil {
		return nil, errors.Wrap(err, "failed to set staker")
	}
	return d, nil
}

// CheckRelease verifies owner can release the asset and returns its detail.
func (s *Service) CheckRelease(owner common.Address, asset common.Bytes32) (*Detail, error) {
	d, err := s.ActiveDetail(owner, asset)
	if err != nil {
		return nil, err
	}
	p, err := s.GetPosition(owner)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StakedCount == 0 {
		return nil, reverts.Newf(reverts.CounterUnderflow, "position of %v has no staked asset", owner)
	}
	return d, nil
}

// Release marks the asset as no longer staked by owner.
func (s *Service) Release(owner common.Address, asset common.Bytes32) (*Detail, error) {
	d, err := s.CheckRelease(owner, asset)
	if err != nil {
		return nil, err
	}

	p, err := s.positions.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	p.StakedCount--
	if err := s.positions.Set(owner, p); err != nil {
		return nil, errors.Wrap(err, "failed to set position")
	}

	d.Staked = false
	if err := s.details.Set(storage.Pair(owner, asset), d); err != nil {
		return nil, errors.Wrap(err, "failed to set detail")
	}
	s.stakers.Delete(asset)
	return d, nil
}

// UpdateDetail stores a modified detail.
func (s *Service) UpdateDetail(d *Detail) error {
	if err := s.details.Set(storage.Pair(d.Owner, d.Asset), d); err != nil {
		return errors.Wrap(err, "failed to set detail")
	}
	return nil
}

// RecordReward accounts a claimed reward on the position of owner.
func (s *Service) RecordReward(owner common.Address, amount uint64) error {
	p, err := s.GetPosition(owner)
	if err != nil {
		return err
	}
	if p == nil {
		return reverts.Newf(reverts.RecordNotFound, "no position for %v", owner)
	}
	p.TotalReward += amount
	p.TransferAmount = amount
	if err := s.positions.Set(owner, p); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}
