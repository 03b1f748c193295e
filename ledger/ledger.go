// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger hosts the staking ledger on a persistent store. Mutations are
// serialized and applied all-or-nothing, reads run concurrently on committed state.
package ledger

import (
	"io"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/assets"
	"github.com/vechain/nftstaking/balance"
	"github.com/vechain/nftstaking/cache"
	"github.com/vechain/nftstaking/co"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/staking/round"
	"github.com/vechain/nftstaking/state"
)

var logger = log.New("pkg", "ledger")

func SetLogger(l log.Logger) {
	logger = l
}

const stateBucket = kv.Bucket("s")

// Options configures a Ledger.
type Options struct {
	Staking        staking.Config
	Collection     common.Address // verified creator an asset must carry to be staked
	StateCacheSize int            // bytes, 0 disables the record cache
	RoundCacheSize int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Staking:        staking.DefaultConfig(),
		StateCacheSize: 16 * 1024 * 1024,
		RoundCacheSize: 1024,
	}
}

// Ledger is the single writer of the staking records.
type Ledger struct {
	store  kv.Store
	stater *state.Stater
	events *eventdb.EventDB
	access staking.AccessControl
	clock  staking.Clock
	opts   Options

	rounds   *cache.LRU[uint32, *round.Round]
	newRound co.Signal

	mu sync.Mutex
}

// New creates a ledger over store. Committed operations are appended to events
// when it is not nil.
func New(store kv.Store, events *eventdb.EventDB, access staking.AccessControl, clock staking.Clock, opts Options) (*Ledger, error) {
	if opts.RoundCacheSize <= 0 {
		opts.RoundCacheSize = DefaultOptions().RoundCacheSize
	}
	rounds, err := cache.NewLRU[uint32, *round.Round](opts.RoundCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "round cache")
	}
	return &Ledger{
		store:  store,
		stater: state.NewStater(stateBucket.NewStore(store), opts.StateCacheSize),
		events: events,
		access: access,
		clock:  clock,
		opts:   opts,
		rounds: rounds,
	}, nil
}

// env is one operation's view of the collaborators, all on the same state.
type env struct {
	staking *staking.Staking
	balance *balance.Balance
	assets  *assets.Registry
}

func (l *Ledger) newEnv(st *state.State) *env {
	bal := balance.New(common.BalanceAddress, st)
	reg := assets.New(common.AssetsAddress, st, l.opts.Collection)
	return &env{
		staking: staking.New(common.StakingAddress, st, staking.Collaborators{
			Custody:      reg,
			Verification: reg,
			Values:       bal,
			Clock:        l.clock,
			Access:       l.access,
		}, l.opts.Staking),
		balance: bal,
		assets:  reg,
	}
}

// execute runs op on a checkpoint of a fresh state and commits its changes in
// one batch. On error the checkpoint is reverted and nothing is written.
func (l *Ledger) execute(kind eventdb.Kind, op func(env *env) (*eventdb.Activity, error)) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	defer func() {
		metricOpCount().AddWithLabel(1, map[string]string{"kind": string(kind), "result": resultLabel(err)})
		metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"kind": string(kind)})
	}()

	st := l.stater.NewState()
	checkpoint := st.NewCheckpoint()
	e := l.newEnv(st)

	activity, err := op(e)
	if err != nil {
		st.RevertTo(checkpoint)
		return err
	}

	treasury, err := e.staking.TreasuryBalance()
	if err != nil {
		st.RevertTo(checkpoint)
		return err
	}

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	metricTreasury().Set(int64(treasury))
	logger.Debug("committed", "kind", kind, "changes", stage.Len())

	if l.events != nil && activity != nil {
		activity.Kind = kind
		activity.Time = l.clock.Now()
		// the operation is already durable, a lost activity is only logged
		if err := l.events.Insert([]*eventdb.Activity{activity}); err != nil {
			logger.Warn("failed to record activity", "kind", kind, "err", err)
		}
	}
	return nil
}

// Initialize creates the aggregate statistics.
func (l *Ledger) Initialize(caller common.Address) error {
	return l.execute(eventdb.KindInitialize, func(e *env) (*eventdb.Activity, error) {
		if err := e.staking.Initialize(caller); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: caller}, nil
	})
}

// Stake locks asset of owner.
func (l *Ledger) Stake(owner common.Address, asset common.Bytes32) error {
	return l.execute(eventdb.KindStake, func(e *env) (*eventdb.Activity, error) {
		if err := e.staking.Stake(owner, asset); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: owner, Asset: &asset}, nil
	})
}

// Unstake releases asset of owner.
func (l *Ledger) Unstake(owner common.Address, asset common.Bytes32) error {
	return l.execute(eventdb.KindUnstake, func(e *env) (*eventdb.Activity, error) {
		if err := e.staking.Unstake(owner, asset); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: owner, Asset: &asset}, nil
	})
}

// Fund moves amount from admin into the treasury.
func (l *Ledger) Fund(admin common.Address, amount uint64) error {
	return l.execute(eventdb.KindFund, func(e *env) (*eventdb.Activity, error) {
		if err := e.staking.Fund(admin, amount); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: admin, Amount: amount}, nil
	})
}

// Refund moves amount from the treasury back to admin.
func (l *Ledger) Refund(admin common.Address, amount uint64) error {
	return l.execute(eventdb.KindRefund, func(e *env) (*eventdb.Activity, error) {
		if err := e.staking.Refund(admin, amount); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: admin, Amount: amount}, nil
	})
}

// Distribute opens round roundIndex over assetCount assets.
func (l *Ledger) Distribute(admin common.Address, roundIndex, assetCount uint32) (*round.Round, error) {
	var r *round.Round
	err := l.execute(eventdb.KindDistribute, func(e *env) (*eventdb.Activity, error) {
		var err error
		if r, err = e.staking.Distribute(admin, roundIndex, assetCount); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: admin, Round: roundIndex, Amount: r.Allocated()}, nil
	})
	if err != nil {
		return nil, err
	}

	l.rounds.Add(r.RoundIndex, r)
	metricLastRound().Set(int64(r.RoundIndex))
	l.newRound.Broadcast()
	return r, nil
}

// Claim pays the reward of round roundIndex for asset to user.
func (l *Ledger) Claim(user common.Address, asset common.Bytes32, roundIndex uint32) (uint64, error) {
	var reward uint64
	err := l.execute(eventdb.KindClaim, func(e *env) (*eventdb.Activity, error) {
		var err error
		if reward, err = e.staking.Claim(user, asset, roundIndex); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: user, Asset: &asset, Round: roundIndex, Amount: reward}, nil
	})
	if err != nil {
		return 0, err
	}
	return reward, nil
}

// Mint credits amount to account. Only exposed in solo mode.
func (l *Ledger) Mint(account common.Address, amount uint64) error {
	return l.execute(eventdb.KindMint, func(e *env) (*eventdb.Activity, error) {
		if err := e.balance.Mint(account, amount); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: account, Amount: amount}, nil
	})
}

// RegisterAsset records asset as owned by owner in the configured collection.
// Only exposed in solo mode.
func (l *Ledger) RegisterAsset(asset common.Bytes32, owner common.Address, verified bool) error {
	return l.execute(eventdb.KindRegister, func(e *env) (*eventdb.Activity, error) {
		if err := e.assets.Register(asset, owner, l.opts.Collection, verified); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: owner, Asset: &asset}, nil
	})
}

// TransferAsset moves an asset that is not staked from one owner to another.
func (l *Ledger) TransferAsset(asset common.Bytes32, from, to common.Address) error {
	return l.execute(eventdb.KindTransfer, func(e *env) (*eventdb.Activity, error) {
		if err := e.assets.Transfer(asset, from, to); err != nil {
			return nil, err
		}
		return &eventdb.Activity{Caller: from, Asset: &asset}, nil
	})
}

// NewRoundWaiter returns a waiter woken whenever a round is distributed.
func (l *Ledger) NewRoundWaiter() co.Waiter {
	return l.newRound.NewWaiter()
}

// Events returns the activity log, may be nil.
func (l *Ledger) Events() *eventdb.EventDB {
	return l.events
}

// Close closes the activity log and the store.
func (l *Ledger) Close() error {
	var result error
	if l.events != nil {
		if err := l.events.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "close event db"))
		}
	}
	if closer, ok := l.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "close store"))
		}
	}
	return result
}
