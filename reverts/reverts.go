// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the domain failures of the staking ledger.
// A revert aborts the whole operation; the ledger discards every change it made.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert.
type Kind uint8

const (
	Unknown Kind = iota
	Unauthorized
	InvalidAsset
	AlreadyStaked
	RecordNotFound
	CounterUnderflow
	InsufficientFunds
	DuplicateRound
	RoundMismatch
	NotYetEligible
	AlreadyInitialized
	NotInitialized
	EmptyRound
)

var kindNames = [...]string{
	Unknown:            "Unknown",
	Unauthorized:       "Unauthorized",
	InvalidAsset:       "InvalidAsset",
	AlreadyStaked:      "AlreadyStaked",
	RecordNotFound:     "RecordNotFound",
	CounterUnderflow:   "CounterUnderflow",
	InsufficientFunds:  "InsufficientFunds",
	DuplicateRound:     "DuplicateRound",
	RoundMismatch:      "RoundMismatch",
	NotYetEligible:     "NotYetEligible",
	AlreadyInitialized: "AlreadyInitialized",
	NotInitialized:     "NotInitialized",
	EmptyRound:         "EmptyRound",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Sentinels to match with errors.Is.
var (
	ErrUnauthorized       = New(Unauthorized, "unauthorized")
	ErrInvalidAsset       = New(InvalidAsset, "invalid asset")
	ErrAlreadyStaked      = New(AlreadyStaked, "asset already staked")
	ErrRecordNotFound     = New(RecordNotFound, "record not found")
	ErrCounterUnderflow   = New(CounterUnderflow, "counter underflow")
	ErrInsufficientFunds  = New(InsufficientFunds, "insufficient funds")
	ErrDuplicateRound     = New(DuplicateRound, "duplicate round")
	ErrRoundMismatch      = New(RoundMismatch, "round mismatch")
	ErrNotYetEligible     = New(NotYetEligible, "not yet eligible")
	ErrAlreadyInitialized = New(AlreadyInitialized, "already initialized")
	ErrNotInitialized     = New(NotInitialized, "not initialized")
	ErrEmptyRound         = New(EmptyRound, "empty round")
)

type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Is reports whether target is a revert of the same kind.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.kind == e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, Unknown if there is none.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return Unknown
}
