// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/acl"
	"github.com/vechain/nftstaking/assets"
	"github.com/vechain/nftstaking/balance"
	"github.com/vechain/nftstaking/clock"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/staking/round"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/test/datagen"
)

const testLockPeriod = 500

type testEnv struct {
	staking    *Staking
	state      *state.State
	balance    *balance.Balance
	assets     *assets.Registry
	clock      *clock.Mock
	admin      common.Address
	collection common.Address
}

func newTestEnv(t *testing.T, policy round.EmptyRoundPolicy) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	env := &testEnv{
		state:      st,
		clock:      clock.NewMock(1_000_000),
		admin:      datagen.RandAddress(),
		collection: datagen.RandAddress(),
	}
	env.balance = balance.New(common.BalanceAddress, st)
	env.assets = assets.New(common.AssetsAddress, st, env.collection)
	env.staking = New(common.StakingAddress, st, Collaborators{
		Custody:      env.assets,
		Verification: env.assets,
		Values:       env.balance,
		Clock:        env.clock,
		Access:       acl.Fixed(env.admin),
	}, Config{LockPeriod: testLockPeriod, EmptyRoundPolicy: policy})
	return env
}

// initialized returns an env with the aggregate created and the admin holding funds.
func initialized(t *testing.T) *testEnv {
	env := newTestEnv(t, round.AllowEmpty)
	require.NoError(t, env.staking.Initialize(env.admin))
	require.NoError(t, env.balance.Mint(env.admin, 1_000_000))
	return env
}

// mintAsset registers a verified asset of the staking collection for owner.
func (env *testEnv) mintAsset(t *testing.T, owner common.Address) common.Bytes32 {
	asset := datagen.RandAsset()
	require.NoError(t, env.assets.Register(asset, owner, env.collection, true))
	return asset
}

// stakedAsset mints and stakes an asset for owner.
func (env *testEnv) stakedAsset(t *testing.T, owner common.Address) common.Bytes32 {
	asset := env.mintAsset(t, owner)
	require.NoError(t, env.staking.Stake(owner, asset))
	return asset
}

func (env *testEnv) balanceOf(t *testing.T, addr common.Address) uint64 {
	b, err := env.balance.BalanceOf(addr)
	require.NoError(t, err)
	return b
}
