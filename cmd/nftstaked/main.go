// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/acl"
	"github.com/vechain/nftstaking/api"
	"github.com/vechain/nftstaking/clock"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/reverts"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.New("pkg", "nftstaked")

	soloAdmin      = common.BytesToAddress(common.Blake2b([]byte("nftstaked/solo/admin")).Bytes())
	soloCollection = common.BytesToAddress(common.Blake2b([]byte("nftstaked/solo/collection")).Bytes())
)

// soloAdminBalance is minted to the solo admin on first start.
const soloAdminBalance = 1_000_000_000

var (
	commonFlags = []cli.Flag{
		configFlag,
		apiAddrFlag,
		apiCorsFlag,
		apiBacktraceLimitFlag,
		apiActivitiesLimitFlag,
		enableAPILogsFlag,
		apiSlowQueriesThresholdFlag,
		apiLog5xxErrorsFlag,
		verbosityFlag,
		jsonLogsFlag,
		logFileFlag,
		enableMetricsFlag,
		metricsAddrFlag,
		enableAdminFlag,
		adminAddrFlag,
		stakingAdminFlag,
		collectionFlag,
		lockPeriodFlag,
		emptyRoundPolicyFlag,
		cacheFlag,
	}
	daemonFlags = append([]cli.Flag{
		dataDirFlag,
		ntpServerFlag,
		disableNTPFlag,
	}, commonFlags...)
	soloFlags = append([]cli.Flag{
		dataDirFlag,
		persistFlag,
	}, commonFlags...)
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "nftstaked",
		Usage:     "NFT staking ledger of VeChain",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags:     daemonFlags,
		Action:    defaultAction,
		Commands: []cli.Command{
			{
				Name:   "solo",
				Usage:  "staking ledger for test & dev, with a funded admin and asset minting",
				Flags:  soloFlags,
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	if err := applyConfigFile(ctx, daemonFlags); err != nil {
		return err
	}
	logLevel, closeLog := initLogger(ctx)
	defer closeLog()
	defer func() { logger.Info("exited") }()

	admin, err := parseAddressFlag(ctx, stakingAdminFlag)
	if err != nil {
		return err
	}
	if admin == nil {
		return fmt.Errorf("staking admin not specified, use -%s", stakingAdminFlag.Name)
	}

	checkClock(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	cacheMB := cacheSizeMB(ctx)
	opts, err := ledgerOptions(ctx, cacheMB)
	if err != nil {
		return err
	}
	if opts.Collection.IsZero() {
		return fmt.Errorf("collection not specified, use -%s", collectionFlag.Name)
	}

	dataDir := makeDataDir(ctx)
	l, err := ledger.New(openMainDB(dataDir, cacheMB), openEventDB(dataDir), acl.Fixed(*admin), clock.System{}, opts)
	if err != nil {
		return err
	}
	defer closeLedger(l)

	return run(ctx, runOptions{
		name:     "nftstaked",
		ledger:   l,
		opts:     opts,
		admin:    *admin,
		dataDir:  dataDir,
		logLevel: logLevel,
	})
}

func soloAction(ctx *cli.Context) error {
	if err := applyConfigFile(ctx, soloFlags); err != nil {
		return err
	}
	logLevel, closeLog := initLogger(ctx)
	defer closeLog()
	defer func() { logger.Info("exited") }()

	admin, err := parseAddressFlag(ctx, stakingAdminFlag)
	if err != nil {
		return err
	}
	if admin == nil {
		admin = &soloAdmin
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	cacheMB := cacheSizeMB(ctx)
	opts, err := ledgerOptions(ctx, cacheMB)
	if err != nil {
		return err
	}
	if opts.Collection.IsZero() {
		opts.Collection = soloCollection
	}

	var (
		mainDB  *lvldb.LevelDB
		eventDB *eventdb.EventDB
		dataDir string
	)
	if ctx.Bool(persistFlag.Name) {
		dataDir = makeDataDir(ctx)
		mainDB = openMainDB(dataDir, cacheMB)
		eventDB = openEventDB(dataDir)
	} else {
		dataDir = "Memory"
		mainDB = openMemMainDB()
		eventDB = openMemEventDB()
	}

	l, err := ledger.New(mainDB, eventDB, acl.NewSet(*admin), clock.System{}, opts)
	if err != nil {
		return err
	}
	defer closeLedger(l)

	if err := initSoloLedger(l, *admin); err != nil {
		return err
	}

	return run(ctx, runOptions{
		name:     "nftstaked solo",
		ledger:   l,
		opts:     opts,
		admin:    *admin,
		dataDir:  dataDir,
		logLevel: logLevel,
		solo:     true,
	})
}

// initSoloLedger initializes a fresh ledger and funds its admin. A ledger
// reopened from disk is left as is.
func initSoloLedger(l *ledger.Ledger, admin common.Address) error {
	if err := l.Initialize(admin); err != nil {
		if errors.Is(err, reverts.ErrAlreadyInitialized) {
			return nil
		}
		return errors.WithMessage(err, "initialize solo ledger")
	}
	return errors.WithMessage(l.Mint(admin, soloAdminBalance), "fund solo admin")
}

func closeLedger(l *ledger.Ledger) {
	logger.Info("closing ledger databases...")
	if err := l.Close(); err != nil {
		logger.Warn("failed to close ledger", "err", err)
	}
}

type runOptions struct {
	name     string
	ledger   *ledger.Ledger
	opts     ledger.Options
	admin    common.Address
	dataDir  string
	logLevel *slog.LevelVar
	solo     bool
}

// run serves the ledger until an exit signal arrives.
func run(ctx *cli.Context, o runOptions) error {
	var apiLogs atomic.Bool
	handler, closeSubs := api.New(o.ledger, apiOptions(ctx, &apiLogs, o.solo))
	defer func() { logger.Info("closing subscriptions..."); closeSubs() }()

	apiURL, stopAPI, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	metricsURL, adminURL, stopServers := startOptionalServers(ctx, o.logLevel)
	defer stopServers()

	printStartupMessage(o.name, o.opts, o.admin, o.dataDir, apiURL, metricsURL, adminURL)

	<-handleExitSignal().Done()
	return nil
}
