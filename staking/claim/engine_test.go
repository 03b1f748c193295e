// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/staking/position"
	"github.com/vechain/nftstaking/staking/round"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/storage"
	"github.com/vechain/nftstaking/test/datagen"
)

const lockPeriod = 500

type fixture struct {
	positions *position.Service
	rounds    *round.Service
	engine    *Engine
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sctx := storage.NewContext(common.StakingAddress, state.NewStater(db, 0).NewState())
	f := &fixture{
		positions: position.New(sctx),
		rounds:    round.New(sctx, round.AllowEmpty),
	}
	f.engine = New(f.positions, f.rounds, lockPeriod)
	return f
}

func TestClaimSequence(t *testing.T) {
	f := newFixture(t)
	user := datagen.RandAddress()
	asset := datagen.RandAsset()

	_, err := f.positions.Lock(user, asset, 1000)
	require.NoError(t, err)

	_, err = f.rounds.Distribute(1, 1, 300, 0, 1200)
	require.NoError(t, err)
	_, err = f.rounds.Distribute(2, 1, 600, 300, 1800)
	require.NoError(t, err)

	// early
	_, err = f.engine.Check(user, asset, 1, 1499)
	assert.ErrorIs(t, err, reverts.ErrNotYetEligible)

	// skipping a round
	_, err = f.engine.Check(user, asset, 2, 2000)
	assert.ErrorIs(t, err, reverts.ErrRoundMismatch)

	c, err := f.engine.Check(user, asset, 1, 1500)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), c.Reward())
	require.NoError(t, f.engine.Apply(c))

	d, err := f.positions.GetDetail(user, asset)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), d.ClaimCursor)
	assert.Equal(t, uint64(1200), d.LockStart)

	p, _ := f.positions.GetPosition(user)
	assert.Equal(t, uint64(300), p.TotalReward)
	assert.Equal(t, uint64(300), p.TransferAmount)

	// repeating round 1
	_, err = f.engine.Check(user, asset, 1, 5000)
	assert.ErrorIs(t, err, reverts.ErrRoundMismatch)

	// next window counts from the round start, not the claim time
	_, err = f.engine.Check(user, asset, 2, 1699)
	assert.ErrorIs(t, err, reverts.ErrNotYetEligible)
	c, err = f.engine.Check(user, asset, 2, 1700)
	require.NoError(t, err)
	require.NoError(t, f.engine.Apply(c))

	p, _ = f.positions.GetPosition(user)
	assert.Equal(t, uint64(600), p.TotalReward)
}

func TestClaimErrors(t *testing.T) {
	f := newFixture(t)
	user := datagen.RandAddress()
	asset := datagen.RandAsset()

	_, err := f.engine.Check(user, asset, 1, 0)
	assert.ErrorIs(t, err, reverts.ErrRecordNotFound)

	_, err = f.positions.Lock(user, asset, 0)
	require.NoError(t, err)

	_, err = f.engine.Check(datagen.RandAddress(), asset, 1, 1000)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	// round does not exist
	_, err = f.engine.Check(user, asset, 1, 1000)
	assert.ErrorIs(t, err, reverts.ErrRecordNotFound)
}

func TestClaimable(t *testing.T) {
	f := newFixture(t)
	user := datagen.RandAddress()
	asset := datagen.RandAsset()

	_, err := f.positions.Lock(user, asset, 100)
	require.NoError(t, err)

	s, err := f.engine.Claimable(user, asset, 1000)
	require.NoError(t, err)
	assert.Equal(t, &Status{NextRound: 1, RoundExists: false, EligibleAt: 600, Claimable: false}, s)

	_, err = f.rounds.Distribute(1, 1, 100, 0, 200)
	require.NoError(t, err)

	s, err = f.engine.Claimable(user, asset, 599)
	require.NoError(t, err)
	assert.False(t, s.Claimable)

	s, err = f.engine.Claimable(user, asset, 600)
	require.NoError(t, err)
	assert.True(t, s.Claimable)
}
