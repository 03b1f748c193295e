// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
)

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

type Request struct {
	Level string `json:"level"`
}

type Response struct {
	CurrentLevel string `json:"currentLevel"`
}

type LogLevel struct {
	logLevel *slog.LevelVar
}

func New(logLevel *slog.LevelVar) *LogLevel {
	return &LogLevel{
		logLevel: logLevel,
	}
}

func (l *LogLevel) current() Response {
	current := l.logLevel.Level()
	for name, level := range levels {
		if level == current {
			return Response{CurrentLevel: name}
		}
	}
	return Response{CurrentLevel: strings.ToLower(current.String())}
}

func (l *LogLevel) handleGetLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) handlePostLogLevel(w http.ResponseWriter, req *http.Request) error {
	var body Request
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	level, ok := levels[strings.ToLower(body.Level)]
	if !ok {
		return utils.BadRequest(errors.New("invalid verbosity level"))
	}
	l.logLevel.Set(level)

	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-log-level").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLogLevel))

	sub.Path("").
		Methods(http.MethodPost).
		Name("post-log-level").
		HandlerFunc(utils.WrapHandlerFunc(l.handlePostLogLevel))
}
