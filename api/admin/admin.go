// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaking/api/admin/loglevel"
)

// New returns the handler of the admin server.
func New(logLevel *slog.LevelVar) http.HandlerFunc {
	router := mux.NewRouter()
	loglevel.New(logLevel).Mount(router, "/admin/loglevel")

	return handlers.CompressHandler(router).ServeHTTP
}
