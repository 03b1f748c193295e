// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/clock"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file, command line flags take precedence",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger databases",
	}
	cacheFlag = cli.Uint64Flag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the ledger database and record cache",
		Value: 256,
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address (the API trusts the caller in each request, expose it only behind an authenticating proxy)",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiBacktraceLimitFlag = cli.Uint64Flag{
		Name:  "api-backtrace-limit",
		Value: 1000,
		Usage: "limit the distance between 'pos' and the last round for round subscriptions",
	}
	apiActivitiesLimitFlag = cli.Uint64Flag{
		Name:  "api-activities-limit",
		Value: 1000,
		Usage: "limit the number of activities returned by /activities API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration longer than this threshold (in milliseconds) are logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log all requests that end with a 5xx status",
	}

	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: legacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "also write logs to this file, rotated by size",
	}

	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}

	stakingAdminFlag = cli.StringFlag{
		Name:  "staking-admin",
		Usage: "address of the staking administrator",
	}
	collectionFlag = cli.StringFlag{
		Name:  "collection",
		Usage: "address of the verified creator of stakable assets",
	}
	lockPeriodFlag = cli.Uint64Flag{
		Name:  "lock-period",
		Value: 0,
		Usage: "seconds an asset must stay staked before claiming (default 14 days if set to 0)",
	}
	emptyRoundPolicyFlag = cli.StringFlag{
		Name:  "empty-round-policy",
		Value: "allow",
		Usage: "handling of rounds distributed while no asset is staked (allow|reject)",
	}

	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: clock.DefaultNTPServer,
		Usage: "NTP server used to check the local clock",
	}
	disableNTPFlag = cli.BoolFlag{
		Name:  "disable-ntp",
		Usage: "skip the local clock offset check",
	}

	// solo mode only flags
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "ledger data storage option, if set data will be saved to disk",
	}
)
