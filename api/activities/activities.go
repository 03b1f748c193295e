// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package activities

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/ledger"
)

type Activities struct {
	ledger *ledger.Ledger
	limit  uint64
}

// New creates the activities handler. limit caps the page size of a query.
func New(ledger *ledger.Ledger, limit uint64) *Activities {
	return &Activities{ledger, limit}
}

func (a *Activities) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	query := req.URL.Query()
	filter := &eventdb.Filter{Kind: eventdb.Kind(query.Get("kind"))}

	if s := query.Get("owner"); s != "" {
		owner, err := common.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "owner"))
		}
		filter.Caller = &owner
	}
	if s := query.Get("asset"); s != "" {
		asset, err := common.ParseBytes32(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "asset"))
		}
		filter.Asset = &asset
	}

	switch order := eventdb.Order(query.Get("order")); order {
	case "", eventdb.ASC, eventdb.DESC:
		filter.Order = order
	default:
		return nil, utils.BadRequest(errors.New("order: must be asc or desc"))
	}

	offset, err := utils.Uint64Query(req, "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := utils.Uint64Query(req, "limit", a.limit)
	if err != nil {
		return nil, err
	}
	if limit > a.limit {
		return nil, utils.BadRequest(errors.Errorf("limit: exceeds maximum %d", a.limit))
	}
	filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (a *Activities) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := a.parseFilter(req)
	if err != nil {
		return err
	}
	activities, err := a.ledger.Activities(req.Context(), filter)
	if err != nil {
		return err
	}
	if activities == nil {
		activities = []*eventdb.Activity{}
	}
	return utils.WriteJSON(w, activities)
}

func (a *Activities) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /activities").
		HandlerFunc(utils.WrapHandlerFunc(a.handleFilter))
}
