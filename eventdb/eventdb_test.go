// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/test/datagen"
)

func TestEventDB(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	var (
		ctx   = context.Background()
		alice = datagen.RandAddress()
		bob   = datagen.RandAddress()
		asset = datagen.RandAsset()
	)

	var activities []*eventdb.Activity
	for i := 0; i < 20; i++ {
		caller := alice
		if i%2 == 1 {
			caller = bob
		}
		activities = append(activities, &eventdb.Activity{
			Kind:   eventdb.KindStake,
			Caller: caller,
			Asset:  &asset,
			Time:   uint64(i),
		})
	}
	activities = append(activities, &eventdb.Activity{Kind: eventdb.KindDistribute, Caller: alice, Round: 1, Amount: 100, Time: 20})
	require.NoError(t, db.Insert(activities))
	require.NoError(t, db.Insert(nil))

	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 21)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, asset, *all[0].Asset)
	assert.Nil(t, all[20].Asset)
	assert.Equal(t, uint32(1), all[20].Round)
	assert.Equal(t, uint64(100), all[20].Amount)

	byBob, err := db.Filter(ctx, &eventdb.Filter{Caller: &bob})
	require.NoError(t, err)
	assert.Len(t, byBob, 10)
	for _, a := range byBob {
		assert.Equal(t, bob, a.Caller)
	}

	rounds, err := db.Filter(ctx, &eventdb.Filter{Kind: eventdb.KindDistribute})
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, alice, rounds[0].Caller)

	page, err := db.Filter(ctx, &eventdb.Filter{
		Caller:  &alice,
		Asset:   &asset,
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 2, Limit: 3},
	})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, uint64(14), page[0].Time)
	assert.Equal(t, uint64(10), page[2].Time)
}

func TestEventDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.db")

	db, err := eventdb.New(path)
	require.NoError(t, err)
	require.NoError(t, db.Insert([]*eventdb.Activity{{Kind: eventdb.KindFund, Caller: datagen.RandAddress(), Amount: 5}}))
	require.NoError(t, db.Close())

	db, err = eventdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	all, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, eventdb.KindFund, all[0].Kind)
}

func TestEventDBCanceled(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.Filter(ctx, &eventdb.Filter{})
	assert.Error(t, err)
}
