// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/log"
)

var logger = log.New("pkg", "clock")

// SetLogger replaces the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// DefaultNTPServer is queried by CheckOffset when no server is given.
const DefaultNTPServer = "pool.ntp.org"

var queryOffset = func(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// CheckOffset queries server for the offset of the local clock, retrying a few times.
// A warning is logged when the offset is beyond tolerance.
func CheckOffset(ctx context.Context, server string, tolerance time.Duration) (time.Duration, error) {
	if server == "" {
		server = DefaultNTPServer
	}

	var offset time.Duration
	op := func() error {
		var err error
		offset, err = queryOffset(server)
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, 3), ctx)); err != nil {
		logger.Debug("failed to access NTP", "server", server, "err", err)
		return 0, err
	}

	if offset > tolerance || offset < -tolerance {
		logger.Warn("clock offset detected", "offset", offset)
	}
	return offset, nil
}
