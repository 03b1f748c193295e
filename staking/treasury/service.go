// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package treasury manages the reward pool funded by the administrator.
package treasury

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/reverts"
)

// ValueLedger moves native value between accounts.
type ValueLedger interface {
	Transfer(from, to common.Address, amount uint64) error
	BalanceOf(account common.Address) (uint64, error)
}

// AccessControl tells whether an identity is an administrator.
type AccessControl interface {
	IsAdmin(identity common.Address) bool
}

// Service holds the treasury account on the value ledger.
type Service struct {
	account common.Address
	ledger  ValueLedger
	acl     AccessControl
}

func New(account common.Address, ledger ValueLedger, acl AccessControl) *Service {
	return &Service{
		account: account,
		ledger:  ledger,
		acl:     acl,
	}
}

// Account returns the treasury account.
func (s *Service) Account() common.Address {
	return s.account
}

// RequireAdmin reverts with Unauthorized unless caller is an administrator.
func (s *Service) RequireAdmin(caller common.Address) error {
	if !s.acl.IsAdmin(caller) {
		return reverts.Newf(reverts.Unauthorized, "%v is not an administrator", caller)
	}
	return nil
}

// Balance returns the current treasury balance.
func (s *Service) Balance() (uint64, error) {
	balance, err := s.ledger.BalanceOf(s.account)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get treasury balance")
	}
	return balance, nil
}

// Fund moves amount from admin into the treasury. The caller checks RequireAdmin.
func (s *Service) Fund(admin common.Address, amount uint64) error {
	return s.ledger.Transfer(admin, s.account, amount)
}

// Refund moves amount from the treasury back to admin and returns the remaining
// treasury balance. The caller checks RequireAdmin.
func (s *Service) Refund(admin common.Address, amount uint64) (uint64, error) {
	return s.withdraw(admin, amount)
}

// Payout moves a reward from the treasury to the claimer.
func (s *Service) Payout(to common.Address, amount uint64) error {
	_, err := s.withdraw(to, amount)
	return err
}

func (s *Service) withdraw(to common.Address, amount uint64) (uint64, error) {
	balance, err := s.Balance()
	if err != nil {
		return 0, err
	}
	if amount > balance {
		return 0, reverts.Newf(reverts.InsufficientFunds, "treasury balance %d is less than %d", balance, amount)
	}
	if amount == 0 {
		return balance, nil
	}
	if err := s.ledger.Transfer(s.account, to, amount); err != nil {
		return 0, err
	}
	return balance - amount, nil
}
