// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pborman/uuid"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// RequestLoggerMiddleware returns a middleware which tags every request with an id and logs it.
// Requests are logged when enabled is set, when they take longer than slowQueriesThreshold
// (0 disables), or when they fail with a 5xx status and log5xxErrors is set.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowQueriesThreshold time.Duration, log5xxErrors bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New()
			}
			w.Header().Set(RequestIDHeader, id)

			if !enabled.Load() && slowQueriesThreshold == 0 && !log5xxErrors {
				next.ServeHTTP(w, r)
				return
			}

			// the body can be read once, keep a copy for the handler
			var bodyBytes []byte
			if r.Body != nil {
				var err error
				if bodyBytes, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("unexpected body read error", "requestID", id, "err", err)
					http.Error(w, "unable to read body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := []any{
				"requestID", id,
				"durationMs", duration.Milliseconds(),
				"status", sw.status,
				"uri", r.URL.String(),
				"method", r.Method,
				"body", string(bodyBytes),
			}
			switch {
			case log5xxErrors && sw.status >= http.StatusInternalServerError:
				logger.Warn("API request failed", fields...)
			case enabled.Load():
				logger.Info("API request", fields...)
			case slowQueriesThreshold > 0 && duration > slowQueriesThreshold:
				logger.Info("slow API request", fields...)
			}
		})
	}
}
