// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

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

func newServer(t *testing.T, tl *testledger.TestLedger) *httptest.Server {
	router := mux.NewRouter()
	New(tl.Ledger).Mount(router, "/staking")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func decode[T any](t *testing.T, body []byte) T {
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestInitialize(t *testing.T) {
	tl := testledger.NewUninitialized(t)
	ts := newServer(t, tl)

	body, code := testledger.HTTPGet(t, ts.URL+"/staking/statistics")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NotInitialized", decode[utils.ErrorResponse](t, body).Error)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/initialize", CallerRequest{Caller: datagen.RandAddress()})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Unauthorized", decode[utils.ErrorResponse](t, body).Error)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/initialize", CallerRequest{Caller: tl.Admin})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, Statistics{}, decode[Statistics](t, body))

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/initialize", CallerRequest{Caller: tl.Admin})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "AlreadyInitialized", decode[utils.ErrorResponse](t, body).Error)
}

func TestStakeAndClaim(t *testing.T) {
	tl := testledger.New(t)
	ts := newServer(t, tl)
	alice := datagen.RandAddress()
	asset := tl.MintAsset(t, alice)

	body, code := testledger.HTTPPost(t, ts.URL+"/staking/stake", AssetRequest{Caller: alice, Asset: asset})
	require.Equal(t, http.StatusOK, code, string(body))
	detail := decode[Detail](t, body)
	assert.True(t, detail.Staked)
	assert.Equal(t, uint64(testledger.StartTime), detail.LockStart)

	// staked twice
	_, code = testledger.HTTPPost(t, ts.URL+"/staking/stake", AssetRequest{Caller: alice, Asset: asset})
	assert.Equal(t, http.StatusBadRequest, code)

	tl.FundedRound(t, 1000, 1)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/claim", ClaimRequest{Caller: alice, Asset: asset, Round: 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NotYetEligible", decode[utils.ErrorResponse](t, body).Error)

	body, code = testledger.HTTPGet(t, ts.URL+"/staking/positions/"+alice.String()+"/"+asset.String())
	require.Equal(t, http.StatusOK, code)
	detail = decode[Detail](t, body)
	require.NotNil(t, detail.Claim)
	assert.Equal(t, uint32(1), detail.Claim.NextRound)
	assert.True(t, detail.Claim.RoundExists)
	assert.False(t, detail.Claim.Claimable)

	tl.Clock.Advance(testledger.LockPeriod)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/claim", ClaimRequest{Caller: alice, Asset: asset, Round: 1})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, ClaimResponse{Round: 1, Reward: 1000}, decode[ClaimResponse](t, body))

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/claim", ClaimRequest{Caller: alice, Asset: asset, Round: 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "RoundMismatch", decode[utils.ErrorResponse](t, body).Error)

	body, code = testledger.HTTPGet(t, ts.URL+"/staking/positions/"+alice.String())
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, Position{Owner: alice, StakedCount: 1, TotalReward: 1000, TransferAmount: 1000}, decode[Position](t, body))

	body, code = testledger.HTTPGet(t, ts.URL+"/staking/statistics")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, Statistics{StakedCount: 1, RewardLevel: 1}, decode[Statistics](t, body))
}

func TestUnstake(t *testing.T) {
	tl := testledger.New(t)
	ts := newServer(t, tl)
	alice := datagen.RandAddress()
	asset := tl.StakedAsset(t, alice)

	body, code := testledger.HTTPGet(t, ts.URL+"/staking/assets/"+asset.String())
	require.Equal(t, http.StatusOK, code)
	staker := decode[AssetStaker](t, body)
	assert.True(t, staker.Staked)
	assert.Equal(t, &alice, staker.Staker)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/unstake", AssetRequest{Caller: datagen.RandAddress(), Asset: asset})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Unauthorized", decode[utils.ErrorResponse](t, body).Error)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/unstake", AssetRequest{Caller: alice, Asset: asset})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.False(t, decode[Detail](t, body).Staked)

	body, code = testledger.HTTPPost(t, ts.URL+"/staking/unstake", AssetRequest{Caller: alice, Asset: asset})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "RecordNotFound", decode[utils.ErrorResponse](t, body).Error)

	body, code = testledger.HTTPGet(t, ts.URL+"/staking/assets/"+asset.String())
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, AssetStaker{Asset: asset}, decode[AssetStaker](t, body))

	body, code = testledger.HTTPGet(t, ts.URL+"/staking/positions/"+alice.String()+"/"+asset.String())
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, decode[Detail](t, body).Claim)
}

func TestBadRequests(t *testing.T) {
	tl := testledger.New(t)
	ts := newServer(t, tl)

	for _, path := range []string{
		"/staking/positions/0xzz",
		"/staking/positions/" + common.Address{}.String() + "/0x12",
		"/staking/assets/abc",
	} {
		_, code := testledger.HTTPGet(t, ts.URL+path)
		assert.Equal(t, http.StatusBadRequest, code, path)
	}

	_, code := testledger.HTTPPost(t, ts.URL+"/staking/stake", map[string]any{"owner": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = testledger.HTTPGet(t, ts.URL+"/staking/positions/"+datagen.RandAddress().String())
	assert.Equal(t, http.StatusNotFound, code)

	body, code := testledger.HTTPPost(t, ts.URL+"/staking/stake", AssetRequest{Caller: datagen.RandAddress(), Asset: datagen.RandAsset()})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidAsset", decode[utils.ErrorResponse](t, body).Error)
}
