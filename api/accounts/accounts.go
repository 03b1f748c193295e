// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/ledger"
)

type Account struct {
	Address common.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

type MintRequest struct {
	Amount uint64 `json:"amount"`
}

type Accounts struct {
	ledger   *ledger.Ledger
	soloMode bool
}

// New creates the accounts handler. Minting is only mounted in solo mode.
func New(ledger *ledger.Ledger, soloMode bool) *Accounts {
	return &Accounts{ledger, soloMode}
}

func (a *Accounts) writeAccount(w http.ResponseWriter, addr common.Address) error {
	balance, err := a.ledger.View().BalanceOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{Address: addr, Balance: balance})
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	return a.writeAccount(w, addr)
}

func (a *Accounts) handleMint(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.ledger.Mint(addr, body.Amount); err != nil {
		return err
	}
	return a.writeAccount(w, addr)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	if a.soloMode {
		sub.Path("/{address}/mint").
			Methods(http.MethodPost).
			Name("POST /accounts/{address}/mint").
			HandlerFunc(utils.WrapHandlerFunc(a.handleMint))
	}
}
