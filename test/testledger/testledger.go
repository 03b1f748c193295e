// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testledger builds in-memory ledgers for tests.
package testledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/acl"
	"github.com/vechain/nftstaking/clock"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/staking/round"
	"github.com/vechain/nftstaking/test/datagen"
)

const (
	LockPeriod   = 500
	StartTime    = 1_000_000
	AdminBalance = 1_000_000
)

// TestLedger is an in-memory ledger with a mock clock and a funded administrator.
type TestLedger struct {
	*ledger.Ledger
	Clock      *clock.Mock
	Admin      common.Address
	Collection common.Address
}

// New returns an initialized ledger. It is closed with the test.
func New(t testing.TB) *TestLedger {
	tl := NewUninitialized(t)
	require.NoError(t, tl.Initialize(tl.Admin))
	require.NoError(t, tl.Mint(tl.Admin, AdminBalance))
	return tl
}

// NewUninitialized returns a ledger on which Initialize has not been called.
func NewUninitialized(t testing.TB) *TestLedger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	events, err := eventdb.NewMem()
	require.NoError(t, err)

	tl := &TestLedger{
		Clock:      clock.NewMock(StartTime),
		Admin:      datagen.RandAddress(),
		Collection: datagen.RandAddress(),
	}

	opts := ledger.DefaultOptions()
	opts.Staking = staking.Config{LockPeriod: LockPeriod, EmptyRoundPolicy: round.AllowEmpty}
	opts.Collection = tl.Collection

	tl.Ledger, err = ledger.New(db, events, acl.Fixed(tl.Admin), tl.Clock, opts)
	require.NoError(t, err)
	t.Cleanup(func() { tl.Close() })
	return tl
}

// MintAsset registers a verified asset of the collection for owner.
func (tl *TestLedger) MintAsset(t testing.TB, owner common.Address) common.Bytes32 {
	asset := datagen.RandAsset()
	require.NoError(t, tl.RegisterAsset(asset, owner, true))
	return asset
}

// StakedAsset registers and stakes an asset for owner.
func (tl *TestLedger) StakedAsset(t testing.TB, owner common.Address) common.Bytes32 {
	asset := tl.MintAsset(t, owner)
	require.NoError(t, tl.Stake(owner, asset))
	return asset
}

// FundedRound funds the treasury with amount and distributes the next round over assetCount.
func (tl *TestLedger) FundedRound(t testing.TB, amount uint64, assetCount uint32) *round.Round {
	require.NoError(t, tl.Fund(tl.Admin, amount))
	last, err := tl.View().LastRound()
	require.NoError(t, err)
	r, err := tl.Distribute(tl.Admin, last+1, assetCount)
	require.NoError(t, err)
	return r
}
