// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package assets is a registry of collectible assets on the ledger state.
// It provides custody (delegated freeze and thaw) and collection verification.
package assets

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/reverts"
	"github.com/vechain/nftstaking/state"
)

// Asset is the registry entry of one asset.
type Asset struct {
	Owner      common.Address `json:"owner"`
	Collection common.Address `json:"collection"`
	Verified   bool           `json:"verified"` // collection verified as creator
	Delegate   common.Address `json:"delegate"` // controller holding the freeze
	Frozen     bool           `json:"frozen"`
}

// IsEmpty returns whether the entry can be treated as absent.
func (a *Asset) IsEmpty() bool {
	return a.Owner.IsZero()
}

// Registry implements custody and verification of assets.
type Registry struct {
	addr       common.Address
	state      *state.State
	collection common.Address
}

// New create a new instance. Only assets of collection are eligible for staking.
func New(addr common.Address, state *state.State, collection common.Address) *Registry {
	return &Registry{addr, state, collection}
}

func (r *Registry) getEntry(asset common.Bytes32) (*Asset, error) {
	var entry Asset
	if err := r.state.DecodeStorage(r.addr, asset, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &entry)
	}); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Registry) setEntry(asset common.Bytes32, entry *Asset) error {
	return r.state.EncodeStorage(r.addr, asset, func() ([]byte, error) {
		if entry.IsEmpty() {
			return nil, nil
		}
		return rlp.EncodeToBytes(entry)
	})
}

// Get returns the entry of asset, nil if not registered.
func (r *Registry) Get(asset common.Bytes32) (*Asset, error) {
	entry, err := r.getEntry(asset)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() {
		return nil, nil
	}
	return entry, nil
}

// Register mints asset for owner in collection.
func (r *Registry) Register(asset common.Bytes32, owner, collection common.Address, verified bool) error {
	if owner.IsZero() {
		return reverts.New(reverts.InvalidAsset, "owner required")
	}
	entry, err := r.getEntry(asset)
	if err != nil {
		return err
	}
	if !entry.IsEmpty() {
		return reverts.Newf(reverts.InvalidAsset, "asset %v already registered", asset)
	}
	return r.setEntry(asset, &Asset{Owner: owner, Collection: collection, Verified: verified})
}

// Transfer moves an unfrozen asset to another owner.
func (r *Registry) Transfer(asset common.Bytes32, from, to common.Address) error {
	entry, err := r.owned(asset, from)
	if err != nil {
		return err
	}
	if entry.Frozen {
		return reverts.Newf(reverts.AlreadyStaked, "asset %v is frozen", asset)
	}
	if to.IsZero() {
		return reverts.New(reverts.InvalidAsset, "recipient required")
	}
	entry.Owner = to
	return r.setEntry(asset, entry)
}

// IsEligible tells whether owner holds asset and it belongs to the verified collection.
func (r *Registry) IsEligible(asset common.Bytes32, owner common.Address) (bool, error) {
	entry, err := r.getEntry(asset)
	if err != nil {
		return false, err
	}
	return !entry.IsEmpty() &&
		entry.Owner == owner &&
		entry.Collection == r.collection &&
		entry.Verified, nil
}

// Lock freezes asset under controller.
func (r *Registry) Lock(asset common.Bytes32, owner, controller common.Address) error {
	entry, err := r.owned(asset, owner)
	if err != nil {
		return err
	}
	if entry.Frozen {
		return reverts.Newf(reverts.AlreadyStaked, "asset %v is frozen", asset)
	}
	entry.Frozen = true
	entry.Delegate = controller
	return r.setEntry(asset, entry)
}

// Unlock thaws asset and revokes the delegate.
func (r *Registry) Unlock(asset common.Bytes32, owner, controller common.Address) error {
	entry, err := r.owned(asset, owner)
	if err != nil {
		return err
	}
	if !entry.Frozen || entry.Delegate != controller {
		return reverts.Newf(reverts.Unauthorized, "asset %v is not frozen by %v", asset, controller)
	}
	entry.Frozen = false
	entry.Delegate = common.Address{}
	return r.setEntry(asset, entry)
}

func (r *Registry) owned(asset common.Bytes32, owner common.Address) (*Asset, error) {
	entry, err := r.getEntry(asset)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() {
		return nil, reverts.Newf(reverts.RecordNotFound, "asset %v not registered", asset)
	}
	if entry.Owner != owner {
		return nil, reverts.Newf(reverts.Unauthorized, "asset %v is not owned by %v", asset, owner)
	}
	return entry, nil
}
