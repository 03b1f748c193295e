// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storage provides typed records on top of the ledger state.
// Every record lives under a namespace address; its slot is derived from the key and a purpose tag.
package storage

import (
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/state"
)

type Context struct {
	address common.Address
	state   *state.State
}

func NewContext(address common.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() common.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
