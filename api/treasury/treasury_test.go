// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/test/datagen"
	"github.com/vechain/nftstaking/test/testledger"
)

func TestTreasury(t *testing.T) {
	tl := testledger.New(t)
	router := mux.NewRouter()
	New(tl.Ledger).Mount(router, "/treasury")
	ts := httptest.NewServer(router)
	defer ts.Close()

	var treasury Treasury
	body, code := testledger.HTTPGet(t, ts.URL+"/treasury")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &treasury))
	assert.Equal(t, Treasury{Address: common.TreasuryAddress}, treasury)

	body, code = testledger.HTTPPost(t, ts.URL+"/treasury/fund", AmountRequest{Caller: tl.Admin, Amount: 700})
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &treasury))
	assert.Equal(t, uint64(700), treasury.Balance)

	// admin shortfall
	body, code = testledger.HTTPPost(t, ts.URL+"/treasury/fund", AmountRequest{Caller: tl.Admin, Amount: testledger.AdminBalance})
	assert.Equal(t, http.StatusBadRequest, code)
	var errResp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "InsufficientFunds", errResp.Error)

	_, code = testledger.HTTPPost(t, ts.URL+"/treasury/refund", AmountRequest{Caller: datagen.RandAddress(), Amount: 1})
	assert.Equal(t, http.StatusForbidden, code)

	_, code = testledger.HTTPPost(t, ts.URL+"/treasury/refund", AmountRequest{Caller: tl.Admin, Amount: 701})
	assert.Equal(t, http.StatusBadRequest, code)

	body, code = testledger.HTTPPost(t, ts.URL+"/treasury/refund", AmountRequest{Caller: tl.Admin, Amount: 200})
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &treasury))
	assert.Equal(t, uint64(500), treasury.Balance)

	bal, err := tl.View().BalanceOf(tl.Admin)
	require.NoError(t, err)
	assert.Equal(t, uint64(testledger.AdminBalance-500), bal)
}
