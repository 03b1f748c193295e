// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/ledger"
)

type AmountRequest struct {
	Caller common.Address `json:"caller"`
	Amount uint64         `json:"amount"`
}

type Treasury struct {
	Address common.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

type Handler struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Handler {
	return &Handler{ledger}
}

func (h *Handler) writeTreasury(w http.ResponseWriter) error {
	view := h.ledger.View()
	balance, err := view.TreasuryBalance()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Treasury{Address: view.TreasuryAccount(), Balance: balance})
}

func (h *Handler) handleGetTreasury(w http.ResponseWriter, _ *http.Request) error {
	return h.writeTreasury(w)
}

func (h *Handler) handleFund(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := h.ledger.Fund(body.Caller, body.Amount); err != nil {
		return err
	}
	return h.writeTreasury(w)
}

func (h *Handler) handleRefund(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := h.ledger.Refund(body.Caller, body.Amount); err != nil {
		return err
	}
	return h.writeTreasury(w)
}

func (h *Handler) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /treasury").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetTreasury))
	sub.Path("/fund").
		Methods(http.MethodPost).
		Name("POST /treasury/fund").
		HandlerFunc(utils.WrapHandlerFunc(h.handleFund))
	sub.Path("/refund").
		Methods(http.MethodPost).
		Name("POST /treasury/refund").
		HandlerFunc(utils.WrapHandlerFunc(h.handleRefund))
}
