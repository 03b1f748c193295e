// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/acl"
	"github.com/vechain/nftstaking/clock"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/staking/round"
	"github.com/vechain/nftstaking/test/datagen"
)

const testLockPeriod = 500

type fixture struct {
	ledger *Ledger
	clock  *clock.Mock
	admin  common.Address
}

func testOptions(collection common.Address) Options {
	opts := DefaultOptions()
	opts.Staking = staking.Config{LockPeriod: testLockPeriod, EmptyRoundPolicy: round.AllowEmpty}
	opts.Collection = collection
	return opts
}

func newLedger(t *testing.T, store kv.Store, events *eventdb.EventDB) *fixture {
	f := &fixture{
		clock: clock.NewMock(1_000_000),
		admin: common.BytesToAddress([]byte("admin")),
	}
	l, err := New(store, events, acl.Fixed(f.admin), f.clock, testOptions(common.BytesToAddress([]byte("collection"))))
	require.NoError(t, err)
	f.ledger = l
	return f
}

func newMemLedger(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	events, err := eventdb.NewMem()
	require.NoError(t, err)

	f := newLedger(t, db, events)
	t.Cleanup(func() { f.ledger.Close() })

	require.NoError(t, f.ledger.Initialize(f.admin))
	require.NoError(t, f.ledger.Mint(f.admin, 1_000_000))
	return f
}

func (f *fixture) stakedAsset(t *testing.T, owner common.Address) common.Bytes32 {
	asset := datagen.RandAsset()
	require.NoError(t, f.ledger.RegisterAsset(asset, owner, true))
	require.NoError(t, f.ledger.Stake(owner, asset))
	return asset
}

func TestTransferAsset(t *testing.T) {
	f := newMemLedger(t)
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	asset := datagen.RandAsset()
	require.NoError(t, f.ledger.RegisterAsset(asset, alice, true))
	require.NoError(t, f.ledger.TransferAsset(asset, alice, bob))

	entry, err := f.ledger.View().Asset(asset)
	require.NoError(t, err)
	assert.Equal(t, bob, entry.Owner)

	// the previous owner can no longer stake it, the new one can
	assert.ErrorIs(t, f.ledger.Stake(alice, asset), reverts.ErrInvalidAsset)
	require.NoError(t, f.ledger.Stake(bob, asset))

	// a staked asset stays in custody
	assert.ErrorIs(t, f.ledger.TransferAsset(asset, bob, alice), reverts.ErrAlreadyStaked)

	acts, err := f.ledger.Activities(context.Background(), &eventdb.Filter{Kind: eventdb.KindTransfer})
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, alice, acts[0].Caller)
}

func TestFailedOperationWritesNothing(t *testing.T) {
	f := newMemLedger(t)
	account := datagen.RandAddress()
	boom := errors.New("boom")

	err := f.ledger.execute(eventdb.KindMint, func(e *env) (*eventdb.Activity, error) {
		require.NoError(t, e.balance.Mint(account, 100))
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	bal, err := f.ledger.View().BalanceOf(account)
	require.NoError(t, err)
	assert.Zero(t, bal)

	mints, err := f.ledger.Activities(context.Background(), &eventdb.Filter{Caller: &account})
	require.NoError(t, err)
	assert.Empty(t, mints)
}

func TestRevertedOperationKeepsState(t *testing.T) {
	f := newMemLedger(t)
	require.NoError(t, f.ledger.Fund(f.admin, 1000))

	// over refund
	err := f.ledger.Refund(f.admin, 1001)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)

	bal, err := f.ledger.View().TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), bal)

	// duplicate round
	f.stakedAsset(t, datagen.RandAddress())
	_, err = f.ledger.Distribute(f.admin, 1, 1)
	require.NoError(t, err)
	_, err = f.ledger.Distribute(f.admin, 1, 1)
	assert.ErrorIs(t, err, reverts.ErrDuplicateRound)

	last, err := f.ledger.View().LastRound()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), last)
}

func TestStakeDistributeClaim(t *testing.T) {
	f := newMemLedger(t)
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	a1 := f.stakedAsset(t, alice)
	f.stakedAsset(t, alice)
	b1 := f.stakedAsset(t, bob)

	require.NoError(t, f.ledger.Fund(f.admin, 1000))
	pool, err := f.ledger.View().BalanceOf(f.ledger.View().TreasuryAccount())
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), pool)

	r, err := f.ledger.Distribute(f.admin, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(333), r.RewardPerAsset)

	// too early
	_, err = f.ledger.Claim(alice, a1, 1)
	assert.ErrorIs(t, err, reverts.ErrNotYetEligible)

	f.clock.Advance(testLockPeriod)
	reward, err := f.ledger.Claim(alice, a1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(333), reward)

	_, err = f.ledger.Claim(alice, a1, 1)
	assert.ErrorIs(t, err, reverts.ErrRoundMismatch)

	_, err = f.ledger.Claim(alice, b1, 1)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	view := f.ledger.View()
	stats, err := view.Statistics()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), stats.StakedCount)
	assert.Equal(t, uint32(1), stats.RewardLevel)
	assert.Equal(t, uint64(666), stats.BalanceSnapshot)

	pos, err := view.Position(alice)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), pos.StakedCount)
	assert.Equal(t, uint64(333), pos.TotalReward)

	bal, err := view.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(333), bal)

	status, err := view.Claimable(alice, a1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), status.NextRound)
	assert.False(t, status.RoundExists)

	require.NoError(t, f.ledger.Unstake(alice, a1))
	staker, ok, err := f.ledger.View().StakerOf(a1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, staker.IsZero())

	asset, err := f.ledger.View().Asset(a1)
	require.NoError(t, err)
	assert.Equal(t, alice, asset.Owner)
	assert.True(t, asset.Delegate.IsZero())
}

func TestActivities(t *testing.T) {
	f := newMemLedger(t)
	alice := datagen.RandAddress()
	asset := f.stakedAsset(t, alice)
	require.NoError(t, f.ledger.Fund(f.admin, 500))
	_, err := f.ledger.Distribute(f.admin, 1, 1)
	require.NoError(t, err)

	// failed operations are not recorded
	assert.Error(t, f.ledger.Stake(alice, asset))

	ctx := context.Background()
	all, err := f.ledger.Activities(ctx, nil)
	require.NoError(t, err)

	kinds := make([]eventdb.Kind, 0, len(all))
	for _, a := range all {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []eventdb.Kind{
		eventdb.KindInitialize,
		eventdb.KindMint,
		eventdb.KindRegister,
		eventdb.KindStake,
		eventdb.KindFund,
		eventdb.KindDistribute,
	}, kinds)

	stakes, err := f.ledger.Activities(ctx, &eventdb.Filter{Asset: &asset, Kind: eventdb.KindStake})
	require.NoError(t, err)
	require.Len(t, stakes, 1)
	assert.Equal(t, alice, stakes[0].Caller)
	assert.Equal(t, f.clock.Now(), stakes[0].Time)

	rounds, err := f.ledger.Activities(ctx, &eventdb.Filter{Kind: eventdb.KindDistribute})
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, uint64(500), rounds[0].Amount)
}

func TestRoundCacheAndSignal(t *testing.T) {
	f := newMemLedger(t)
	f.stakedAsset(t, datagen.RandAddress())
	require.NoError(t, f.ledger.Fund(f.admin, 100))

	missing, err := f.ledger.View().Round(1)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Zero(t, f.ledger.rounds.Len(), "absent rounds are not cached")

	waiter := f.ledger.NewRoundWaiter()
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-waiter.C()
	}()

	r, err := f.ledger.Distribute(f.admin, 1, 1)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken")
	}

	assert.Equal(t, 1, f.ledger.rounds.Len())
	got, err := f.ledger.View().Round(1)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestConcurrentStakes(t *testing.T) {
	f := newMemLedger(t)

	const n = 20
	owners := make([]common.Address, n)
	assetIDs := make([]common.Bytes32, n)
	for i := 0; i < n; i++ {
		owners[i] = datagen.RandAddress()
		assetIDs[i] = datagen.RandAsset()
		require.NoError(t, f.ledger.RegisterAsset(assetIDs[i], owners[i], true))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.ledger.Stake(owners[i], assetIDs[i]))
			// reads run next to writes
			_, err := f.ledger.View().Statistics()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := f.ledger.View().Statistics()
	require.NoError(t, err)
	assert.Equal(t, uint32(n), stats.StakedCount)
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()

	open := func() *fixture {
		db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{})
		require.NoError(t, err)
		events, err := eventdb.New(filepath.Join(dir, "events.db"))
		require.NoError(t, err)
		return newLedger(t, db, events)
	}

	f := open()
	require.NoError(t, f.ledger.Initialize(f.admin))
	require.NoError(t, f.ledger.Mint(f.admin, 100))
	require.NoError(t, f.ledger.Fund(f.admin, 60))
	require.NoError(t, f.ledger.Close())

	f = open()
	defer f.ledger.Close()

	assert.ErrorIs(t, f.ledger.Initialize(f.admin), reverts.ErrAlreadyInitialized)
	bal, err := f.ledger.View().TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), bal)

	all, err := f.ledger.Activities(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNoEventDB(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	f := newLedger(t, db, nil)
	defer f.ledger.Close()

	require.NoError(t, f.ledger.Initialize(f.admin))
	all, err := f.ledger.Activities(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "ok", resultLabel(nil))
	assert.Equal(t, "error", resultLabel(errors.New("disk")))
	assert.Equal(t, reverts.RoundMismatch.String(), resultLabel(reverts.New(reverts.RoundMismatch, "")))
}
