// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/common"
)

// AddressVar parses the path variable name as an address.
func AddressVar(req *http.Request, name string) (common.Address, error) {
	addr, err := common.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return common.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// Bytes32Var parses the path variable name as a 32 bytes identifier.
func Bytes32Var(req *http.Request, name string) (common.Bytes32, error) {
	b, err := common.ParseBytes32(mux.Vars(req)[name])
	if err != nil {
		return common.Bytes32{}, BadRequest(errors.WithMessage(err, name))
	}
	return b, nil
}

// Uint32Var parses the path variable name as a decimal uint32.
func Uint32Var(req *http.Request, name string) (uint32, error) {
	n, err := strconv.ParseUint(mux.Vars(req)[name], 10, 32)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return uint32(n), nil
}

// Uint64Query parses the query parameter name, def is returned when it is absent.
func Uint64Query(req *http.Request, name string, def uint64) (uint64, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return n, nil
}
