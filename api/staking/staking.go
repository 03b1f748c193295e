// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/ledger"
)

type Staking struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Staking {
	return &Staking{ledger}
}

func (s *Staking) handleInitialize(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.ledger.Initialize(body.Caller); err != nil {
		return err
	}
	stats, err := s.ledger.View().Statistics()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertStatistics(stats))
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body AssetRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.ledger.Stake(body.Caller, body.Asset); err != nil {
		return err
	}
	return s.writeDetail(w, body)
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	var body AssetRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.ledger.Unstake(body.Caller, body.Asset); err != nil {
		return err
	}
	return s.writeDetail(w, body)
}

func (s *Staking) writeDetail(w http.ResponseWriter, body AssetRequest) error {
	detail, err := s.ledger.View().Detail(body.Caller, body.Asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDetail(detail, nil))
}

func (s *Staking) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	reward, err := s.ledger.Claim(body.Caller, body.Asset, body.Round)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &ClaimResponse{Round: body.Round, Reward: reward})
}

func (s *Staking) handleGetStatistics(w http.ResponseWriter, _ *http.Request) error {
	stats, err := s.ledger.View().Statistics()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertStatistics(stats))
}

func (s *Staking) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	pos, err := s.ledger.View().Position(owner)
	if err != nil {
		return err
	}
	if pos == nil {
		return utils.NotFound(errors.New("position not found"))
	}
	return utils.WriteJSON(w, convertPosition(pos))
}

func (s *Staking) handleGetDetail(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	asset, err := utils.Bytes32Var(req, "asset")
	if err != nil {
		return err
	}

	view := s.ledger.View()
	detail, err := view.Detail(owner, asset)
	if err != nil {
		return err
	}
	if detail == nil {
		return utils.NotFound(errors.New("detail not found"))
	}
	if !detail.Staked {
		return utils.WriteJSON(w, convertDetail(detail, nil))
	}
	status, err := view.Claimable(owner, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDetail(detail, status))
}

func (s *Staking) handleGetAssetStaker(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.Bytes32Var(req, "asset")
	if err != nil {
		return err
	}
	staker, ok, err := s.ledger.View().StakerOf(asset)
	if err != nil {
		return err
	}
	resp := &AssetStaker{Asset: asset, Staked: ok}
	if ok {
		resp.Staker = &staker
	}
	return utils.WriteJSON(w, resp)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/initialize").
		Methods(http.MethodPost).
		Name("POST /staking/initialize").
		HandlerFunc(utils.WrapHandlerFunc(s.handleInitialize))
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /staking/stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /staking/unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /staking/claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClaim))
	sub.Path("/statistics").
		Methods(http.MethodGet).
		Name("GET /staking/statistics").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStatistics))
	sub.Path("/positions/{owner}").
		Methods(http.MethodGet).
		Name("GET /staking/positions/{owner}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPosition))
	sub.Path("/positions/{owner}/{asset}").
		Methods(http.MethodGet).
		Name("GET /staking/positions/{owner}/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetDetail))
	sub.Path("/assets/{asset}").
		Methods(http.MethodGet).
		Name("GET /staking/assets/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAssetStaker))
}
