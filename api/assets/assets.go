// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package assets

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/ledger"
)

type RegisterRequest struct {
	Asset    common.Bytes32 `json:"asset"`
	Owner    common.Address `json:"owner"`
	Verified bool           `json:"verified"`
}

type TransferRequest struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
}

type Asset struct {
	ID         common.Bytes32  `json:"id"`
	Owner      common.Address  `json:"owner"`
	Collection common.Address  `json:"collection"`
	Verified   bool            `json:"verified"`
	Frozen     bool            `json:"frozen"`
	Delegate   *common.Address `json:"delegate"`
}

type Assets struct {
	ledger   *ledger.Ledger
	soloMode bool
}

// New creates the assets handler. Registering and transferring are only mounted in solo mode.
func New(ledger *ledger.Ledger, soloMode bool) *Assets {
	return &Assets{ledger, soloMode}
}

func (a *Assets) writeAsset(w http.ResponseWriter, id common.Bytes32) error {
	entry, err := a.ledger.View().Asset(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return utils.NotFound(errors.New("asset not found"))
	}
	asset := &Asset{
		ID:         id,
		Owner:      entry.Owner,
		Collection: entry.Collection,
		Verified:   entry.Verified,
		Frozen:     entry.Frozen,
	}
	if entry.Frozen {
		delegate := entry.Delegate
		asset.Delegate = &delegate
	}
	return utils.WriteJSON(w, asset)
}

func (a *Assets) handleGetAsset(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "asset")
	if err != nil {
		return err
	}
	return a.writeAsset(w, id)
}

func (a *Assets) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body RegisterRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.ledger.RegisterAsset(body.Asset, body.Owner, body.Verified); err != nil {
		return err
	}
	return a.writeAsset(w, body.Asset)
}

func (a *Assets) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "asset")
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.ledger.TransferAsset(id, body.From, body.To); err != nil {
		return err
	}
	return a.writeAsset(w, id)
}

func (a *Assets) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{asset}").
		Methods(http.MethodGet).
		Name("GET /assets/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAsset))
	if a.soloMode {
		sub.Path("").
			Methods(http.MethodPost).
			Name("POST /assets").
			HandlerFunc(utils.WrapHandlerFunc(a.handleRegister))
		sub.Path("/{asset}/transfer").
			Methods(http.MethodPost).
			Name("POST /assets/{asset}/transfer").
			HandlerFunc(utils.WrapHandlerFunc(a.handleTransfer))
	}
}
