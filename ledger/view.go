// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"

	"github.com/vechain/nftstaking/assets"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/staking/claim"
	"github.com/vechain/nftstaking/staking/globalstats"
	"github.com/vechain/nftstaking/staking/position"
	"github.com/vechain/nftstaking/staking/round"
)

// View reads committed records. It never writes.
type View struct {
	ledger *Ledger
	env    *env
}

// View returns a view of the latest committed state.
func (l *Ledger) View() *View {
	return &View{ledger: l, env: l.newEnv(l.stater.NewState())}
}

func (v *View) Statistics() (*globalstats.Statistics, error) {
	return v.env.staking.Statistics()
}

func (v *View) Position(owner common.Address) (*position.Position, error) {
	return v.env.staking.Position(owner)
}

func (v *View) Detail(owner common.Address, asset common.Bytes32) (*position.Detail, error) {
	return v.env.staking.Detail(owner, asset)
}

// StakerOf returns the owner currently staking asset.
func (v *View) StakerOf(asset common.Bytes32) (common.Address, bool, error) {
	return v.env.staking.StakerOf(asset)
}

// Round returns the round of index, nil if absent. Rounds never change once
// distributed, so present ones are cached.
func (v *View) Round(index uint32) (*round.Round, error) {
	r, err := v.ledger.rounds.GetOrLoad(index, v.env.staking.Round, func(r *round.Round) bool {
		return r != nil
	})
	if err != nil {
		return nil, err
	}
	if changed, hit, miss := v.ledger.rounds.Stats(); changed {
		logger.Debug("round cache stats", "hit", hit, "miss", miss)
	}
	return r, nil
}

// LastRound returns the index of the latest round, 0 if none.
func (v *View) LastRound() (uint32, error) {
	return v.env.staking.LastRound()
}

func (v *View) TreasuryAccount() common.Address {
	return v.env.staking.TreasuryAccount()
}

func (v *View) TreasuryBalance() (uint64, error) {
	return v.env.staking.TreasuryBalance()
}

// Claimable describes the next claim of asset by user at the current time.
func (v *View) Claimable(user common.Address, asset common.Bytes32) (*claim.Status, error) {
	return v.env.staking.Claimable(user, asset, v.ledger.clock.Now())
}

func (v *View) BalanceOf(account common.Address) (uint64, error) {
	return v.env.balance.BalanceOf(account)
}

func (v *View) Asset(asset common.Bytes32) (*assets.Asset, error) {
	return v.env.assets.Get(asset)
}

// Activities queries the activity log. It returns nothing when the log is disabled.
func (l *Ledger) Activities(ctx context.Context, filter *eventdb.Filter) ([]*eventdb.Activity, error) {
	if l.events == nil {
		return nil, nil
	}
	return l.events.Filter(ctx, filter)
}
