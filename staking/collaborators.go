// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/staking/treasury"
)

// AssetCustody places and removes a delegated hold on an asset.
type AssetCustody interface {
	Lock(asset common.Bytes32, owner, controller common.Address) error
	Unlock(asset common.Bytes32, owner, controller common.Address) error
}

// AssetVerification confirms collection membership and ownership of an asset.
type AssetVerification interface {
	IsEligible(asset common.Bytes32, owner common.Address) (bool, error)
}

// ValueLedger moves native value between accounts.
type ValueLedger = treasury.ValueLedger

// Clock is the time source, in unix seconds.
type Clock interface {
	Now() uint64
}

// AccessControl tells whether an identity is an administrator.
type AccessControl = treasury.AccessControl

// Collaborators are the subsystems the ledger calls into.
type Collaborators struct {
	Custody      AssetCustody
	Verification AssetVerification
	Values       ValueLedger
	Clock        Clock
	Access       AccessControl
}
