// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package assets

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

func TestAssets(t *testing.T) {
	tl := testledger.New(t)
	router := mux.NewRouter()
	New(tl.Ledger, true).Mount(router, "/assets")
	ts := httptest.NewServer(router)
	defer ts.Close()

	owner := datagen.RandAddress()
	id := datagen.RandAsset()

	_, code := testledger.HTTPGet(t, ts.URL+"/assets/"+id.String())
	assert.Equal(t, http.StatusNotFound, code)

	var asset Asset
	body, code := testledger.HTTPPost(t, ts.URL+"/assets", RegisterRequest{Asset: id, Owner: owner, Verified: true})
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &asset))
	assert.Equal(t, Asset{ID: id, Owner: owner, Collection: tl.Collection, Verified: true}, asset)

	body, code = testledger.HTTPPost(t, ts.URL+"/assets", RegisterRequest{Asset: id, Owner: owner})
	assert.Equal(t, http.StatusBadRequest, code)
	var errResp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "InvalidAsset", errResp.Error)

	require.NoError(t, tl.Stake(owner, id))
	body, code = testledger.HTTPGet(t, ts.URL+"/assets/"+id.String())
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &asset))
	assert.True(t, asset.Frozen)
	require.NotNil(t, asset.Delegate)
	assert.Equal(t, common.StakingAddress, *asset.Delegate)
}

func TestTransfer(t *testing.T) {
	tl := testledger.New(t)
	router := mux.NewRouter()
	New(tl.Ledger, true).Mount(router, "/assets")
	ts := httptest.NewServer(router)
	defer ts.Close()

	owner := datagen.RandAddress()
	receiver := datagen.RandAddress()
	id := tl.MintAsset(t, owner)
	url := ts.URL + "/assets/" + id.String() + "/transfer"

	var asset Asset
	body, code := testledger.HTTPPost(t, url, TransferRequest{From: owner, To: receiver})
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &asset))
	assert.Equal(t, receiver, asset.Owner)

	// only the owner can move it
	_, code = testledger.HTTPPost(t, url, TransferRequest{From: owner, To: receiver})
	assert.Equal(t, http.StatusForbidden, code)

	_, code = testledger.HTTPPost(t, ts.URL+"/assets/"+datagen.RandAsset().String()+"/transfer", TransferRequest{From: owner, To: receiver})
	assert.Equal(t, http.StatusNotFound, code)

	require.NoError(t, tl.Stake(receiver, id))
	body, code = testledger.HTTPPost(t, url, TransferRequest{From: receiver, To: owner})
	assert.Equal(t, http.StatusBadRequest, code)
	var errResp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "AlreadyStaked", errResp.Error)
}

func TestRegisterNotMounted(t *testing.T) {
	tl := testledger.New(t)
	router := mux.NewRouter()
	New(tl.Ledger, false).Mount(router, "/assets")
	ts := httptest.NewServer(router)
	defer ts.Close()

	_, code := testledger.HTTPPost(t, ts.URL+"/assets", RegisterRequest{Asset: datagen.RandAsset(), Owner: datagen.RandAddress()})
	assert.Equal(t, http.StatusNotFound, code)

	id := tl.MintAsset(t, datagen.RandAddress())
	_, code = testledger.HTTPPost(t, ts.URL+"/assets/"+id.String()+"/transfer", TransferRequest{From: datagen.RandAddress(), To: datagen.RandAddress()})
	assert.Equal(t, http.StatusNotFound, code)
}
