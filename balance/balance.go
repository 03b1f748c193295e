// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balance keeps native account balances on the ledger state.
package balance

import (
	"math"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/state"
)

var totalSupplyKey = common.Blake2b([]byte("total-supply"))

func accountKey(addr common.Address) common.Bytes32 {
	return common.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

// Balance implements the value ledger over state.
type Balance struct {
	addr  common.Address
	state *state.State
}

// New create a new instance.
func New(addr common.Address, state *state.State) *Balance {
	return &Balance{addr, state}
}

func (b *Balance) get(key common.Bytes32) (v uint64, err error) {
	err = b.state.DecodeStorage(b.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &v)
	})
	return
}

func (b *Balance) set(key common.Bytes32, v uint64) error {
	return b.state.EncodeStorage(b.addr, key, func() ([]byte, error) {
		if v == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(v)
	})
}

// BalanceOf returns the balance of account.
func (b *Balance) BalanceOf(account common.Address) (uint64, error) {
	return b.get(accountKey(account))
}

// TotalSupply returns the amount minted so far.
func (b *Balance) TotalSupply() (uint64, error) {
	return b.get(totalSupplyKey)
}

// Transfer moves amount from one account to another.
func (b *Balance) Transfer(from, to common.Address, amount uint64) error {
	fromBal, err := b.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return reverts.Newf(reverts.InsufficientFunds, "balance of %v is %d, need %d", from, fromBal, amount)
	}
	if from == to || amount == 0 {
		return nil
	}
	toBal, err := b.BalanceOf(to)
	if err != nil {
		return err
	}
	if toBal > math.MaxUint64-amount {
		return reverts.Newf(reverts.InsufficientFunds, "balance of %v overflows", to)
	}
	if err := b.set(accountKey(from), fromBal-amount); err != nil {
		return err
	}
	return b.set(accountKey(to), toBal+amount)
}

// Mint creates amount on account.
func (b *Balance) Mint(to common.Address, amount uint64) error {
	supply, err := b.TotalSupply()
	if err != nil {
		return err
	}
	if supply > math.MaxUint64-amount {
		return reverts.New(reverts.InsufficientFunds, "total supply overflows")
	}
	bal, err := b.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := b.set(totalSupplyKey, supply+amount); err != nil {
		return err
	}
	return b.set(accountKey(to), bal+amount)
}
