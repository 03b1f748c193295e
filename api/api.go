// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaking/api/accounts"
	"github.com/vechain/nftstaking/api/activities"
	"github.com/vechain/nftstaking/api/assets"
	"github.com/vechain/nftstaking/api/middleware"
	"github.com/vechain/nftstaking/api/rounds"
	"github.com/vechain/nftstaking/api/staking"
	"github.com/vechain/nftstaking/api/subscriptions"
	"github.com/vechain/nftstaking/api/treasury"
	"github.com/vechain/nftstaking/ledger"
)

var logger = log.New("pkg", "api")

// SetLogger replaces the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

type Options struct {
	AllowedOrigins       string
	BacktraceLimit       uint32
	ActivitiesLimit      uint64
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	SoloMode             bool
}

// New return api router.
// Mutating requests carry the caller identity in their body and it is not
// authenticated here: the handler must sit behind an authenticating proxy.
func New(ledger *ledger.Ledger, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(ledger).
		Mount(router, "/staking")
	treasury.New(ledger).
		Mount(router, "/treasury")
	rounds.New(ledger).
		Mount(router, "/rounds")
	accounts.New(ledger, opts.SoloMode).
		Mount(router, "/accounts")
	assets.New(ledger, opts.SoloMode).
		Mount(router, "/assets")
	activities.New(ledger, opts.ActivitiesLimit).
		Mount(router, "/activities")
	subs := subscriptions.New(ledger, origins, opts.BacktraceLimit)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-request-id"}),
		handlers.ExposedHeaders([]string{"x-request-id"}),
	)(handler)

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	handler = middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold, opts.Log5xxErrors)(handler)

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
