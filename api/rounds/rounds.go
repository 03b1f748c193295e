// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rounds

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/staking/round"
)

type DistributeRequest struct {
	Caller     common.Address `json:"caller"`
	Round      uint32         `json:"round"`
	AssetCount uint32         `json:"assetCount"`
}

type Round struct {
	Index          uint32 `json:"index"`
	StartTime      uint64 `json:"startTime"`
	RewardPerAsset uint64 `json:"rewardPerAsset"`
	AssetCount     uint32 `json:"assetCount"`
}

func ConvertRound(r *round.Round) *Round {
	return &Round{
		Index:          r.RoundIndex,
		StartTime:      r.StartTime,
		RewardPerAsset: r.RewardPerAsset,
		AssetCount:     r.AssetCount,
	}
}

type Rounds struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Rounds {
	return &Rounds{ledger}
}

func (rs *Rounds) handleDistribute(w http.ResponseWriter, req *http.Request) error {
	var body DistributeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	r, err := rs.ledger.Distribute(body.Caller, body.Round, body.AssetCount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ConvertRound(r))
}

func (rs *Rounds) writeRound(w http.ResponseWriter, view *ledger.View, index uint32) error {
	r, err := view.Round(index)
	if err != nil {
		return err
	}
	if r == nil {
		return utils.NotFound(errors.New("round not found"))
	}
	return utils.WriteJSON(w, ConvertRound(r))
}

func (rs *Rounds) handleGetRound(w http.ResponseWriter, req *http.Request) error {
	index, err := utils.Uint32Var(req, "index")
	if err != nil {
		return err
	}
	return rs.writeRound(w, rs.ledger.View(), index)
}

func (rs *Rounds) handleGetBestRound(w http.ResponseWriter, _ *http.Request) error {
	view := rs.ledger.View()
	last, err := view.LastRound()
	if err != nil {
		return err
	}
	return rs.writeRound(w, view, last)
}

func (rs *Rounds) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /rounds").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleDistribute))
	sub.Path("/best").
		Methods(http.MethodGet).
		Name("GET /rounds/best").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetBestRound))
	sub.Path("/{index:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /rounds/{index}").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetRound))
}
