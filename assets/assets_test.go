// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/test/datagen"
)

func newRegistry(t *testing.T, collection common.Address) *Registry {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(common.AssetsAddress, state.NewStater(db, 0).NewState(), collection)
}

func TestIsEligible(t *testing.T) {
	collection := datagen.RandAddress()
	r := newRegistry(t, collection)
	owner := datagen.RandAddress()

	verified := datagen.RandAsset()
	unverified := datagen.RandAsset()
	foreign := datagen.RandAsset()
	require.NoError(t, r.Register(verified, owner, collection, true))
	require.NoError(t, r.Register(unverified, owner, collection, false))
	require.NoError(t, r.Register(foreign, owner, datagen.RandAddress(), true))

	tests := []struct {
		name  string
		asset common.Bytes32
		owner common.Address
		want  bool
	}{
		{"verified member", verified, owner, true},
		{"not the owner", verified, datagen.RandAddress(), false},
		{"unverified collection", unverified, owner, false},
		{"other collection", foreign, owner, false},
		{"unknown asset", datagen.RandAsset(), owner, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ok, err := r.IsEligible(tt.asset, tt.owner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	assert.ErrorIs(t, r.Register(verified, owner, collection, true), reverts.ErrInvalidAsset)
}

func TestLockUnlock(t *testing.T) {
	collection := datagen.RandAddress()
	r := newRegistry(t, collection)
	owner := datagen.RandAddress()
	asset := datagen.RandAsset()
	require.NoError(t, r.Register(asset, owner, collection, true))

	before, err := r.Get(asset)
	require.NoError(t, err)

	assert.ErrorIs(t, r.Lock(asset, datagen.RandAddress(), common.StakingAddress), reverts.ErrUnauthorized)
	require.NoError(t, r.Lock(asset, owner, common.StakingAddress))

	entry, _ := r.Get(asset)
	assert.True(t, entry.Frozen)
	assert.Equal(t, common.StakingAddress, entry.Delegate)

	assert.ErrorIs(t, r.Lock(asset, owner, common.StakingAddress), reverts.ErrAlreadyStaked)
	assert.ErrorIs(t, r.Transfer(asset, owner, datagen.RandAddress()), reverts.ErrAlreadyStaked)
	assert.ErrorIs(t, r.Unlock(asset, owner, datagen.RandAddress()), reverts.ErrUnauthorized)

	require.NoError(t, r.Unlock(asset, owner, common.StakingAddress))
	after, _ := r.Get(asset)
	assert.Equal(t, before, after)

	assert.ErrorIs(t, r.Unlock(asset, owner, common.StakingAddress), reverts.ErrUnauthorized)
	assert.ErrorIs(t, r.Lock(datagen.RandAsset(), owner, common.StakingAddress), reverts.ErrRecordNotFound)
}

func TestTransfer(t *testing.T) {
	r := newRegistry(t, common.Address{})
	owner := datagen.RandAddress()
	to := datagen.RandAddress()
	asset := datagen.RandAsset()
	require.NoError(t, r.Register(asset, owner, common.Address{}, true))

	require.NoError(t, r.Transfer(asset, owner, to))
	entry, _ := r.Get(asset)
	assert.Equal(t, to, entry.Owner)

	assert.ErrorIs(t, r.Transfer(asset, owner, to), reverts.ErrUnauthorized)
	assert.ErrorIs(t, r.Transfer(asset, to, common.Address{}), reverts.ErrInvalidAsset)
}
