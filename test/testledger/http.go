// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testledger

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// HTTPPost posts obj as JSON and returns the response body and status.
func HTTPPost(t testing.TB, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) // #nosec
	require.NoError(t, err)
	return readBody(t, res)
}

// HTTPGet returns the response body and status of a GET request.
func HTTPGet(t testing.TB, url string) ([]byte, int) {
	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	return readBody(t, res)
}

func readBody(t testing.TB, res *http.Response) ([]byte, int) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}
