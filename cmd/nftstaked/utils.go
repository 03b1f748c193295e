// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jrick/logrotate/rotator"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/api"
	"github.com/vechain/nftstaking/api/admin"
	"github.com/vechain/nftstaking/api/subscriptions"
	"github.com/vechain/nftstaking/clock"
	"github.com/vechain/nftstaking/co"
	"github.com/vechain/nftstaking/common"
	"github.com/vechain/nftstaking/eventdb"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/staking/round"
)

const (
	legacyLevelCrit = iota
	legacyLevelError
	legacyLevelWarn
	legacyLevelInfo
	legacyLevelDebug
	legacyLevelTrace
)

const (
	minCacheMB = 64
	// clock offsets beyond this are reported
	clockTolerance = 5 * time.Second
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, fmt.Errorf("invalid value %d, must be <= %d", val, math.MaxInt)
	}
	return int(val), nil
}

// levelFilter drops records below a level that can be changed at runtime.
type levelFilter struct {
	level slog.Leveler
	next  slog.Handler
}

func (h *levelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.next.Enabled(ctx, level)
}

func (h *levelFilter) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelFilter{h.level, h.next.WithAttrs(attrs)}
}

func (h *levelFilter) WithGroup(name string) slog.Handler {
	return &levelFilter{h.level, h.next.WithGroup(name)}
}

func levelFromVerbosity(v uint64) slog.Level {
	if v > legacyLevelTrace {
		v = legacyLevelTrace
	}
	return log.FromLegacyLevel(int(v))
}

// initLogger installs the default logger and returns its level and a function
// releasing the log file.
func initLogger(ctx *cli.Context) (*slog.LevelVar, func()) {
	logLevel := new(slog.LevelVar)
	logLevel.Set(levelFromVerbosity(ctx.Uint64(verbosityFlag.Name)))

	var (
		output   io.Writer = os.Stderr
		useColor           = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		closer             = func() {}
	)

	if file := ctx.String(logFileFlag.Name); file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
			fatal(fmt.Sprintf("create log directory: %v", err))
		}
		r, err := rotator.New(file, 10*1024, false, 3)
		if err != nil {
			fatal(fmt.Sprintf("create log file rotator: %v", err))
		}
		output = io.MultiWriter(os.Stderr, r)
		useColor = false
		closer = func() { r.Close() }
	}

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandler(output)
	} else {
		handler = log.NewTerminalHandler(output, useColor)
	}
	log.SetDefault(log.NewLogger(&levelFilter{level: logLevel, next: handler}))

	// package loggers are bound to the handler present when they are created
	logger = log.New("pkg", "nftstaked")
	api.SetLogger(log.New("pkg", "api"))
	subscriptions.SetLogger(log.New("pkg", "subscriptions"))
	ledger.SetLogger(log.New("pkg", "ledger"))
	staking.SetLogger(log.New("pkg", "staking"))
	clock.SetLogger(log.New("pkg", "clock"))
	return logLevel, closer
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.vechain.nftstaked")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < minCacheMB {
		sizeMB = minCacheMB
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func cacheSizeMB(ctx *cli.Context) int {
	cache, err := readIntFromUInt64Flag(ctx.Uint64(cacheFlag.Name))
	if err != nil {
		fatal(fmt.Sprintf("parse cache flag: %v", err))
	}
	cacheMB := normalizeCacheSize(cache)
	logger.Debug("cache size(MB)", "size", cacheMB)
	return cacheMB
}

func openMainDB(dataDir string, cacheMB int) *lvldb.LevelDB {
	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dir, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open ledger database: %v", err))
	}
	return db
}

func openEventDB(dataDir string) *eventdb.EventDB {
	dir := filepath.Join(dataDir, "activities.db")
	db, err := eventdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open activity database [%v]: %v", dir, err))
	}
	return db
}

func openMemEventDB() *eventdb.EventDB {
	db, err := eventdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open activity database: %v", err))
	}
	return db
}

func parseAddressFlag(ctx *cli.Context, flag cli.StringFlag) (*common.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return nil, nil
	}
	addr, err := common.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid -%s", flag.Name)
	}
	return &addr, nil
}

// ledgerOptions builds the ledger options from the staking flags.
func ledgerOptions(ctx *cli.Context, cacheMB int) (ledger.Options, error) {
	opts := ledger.DefaultOptions()
	// half of the cache goes to the database, the rest to the record cache
	opts.StateCacheSize = cacheMB / 2 * 1024 * 1024

	if period := ctx.Uint64(lockPeriodFlag.Name); period != 0 {
		opts.Staking.LockPeriod = period
	}
	policy, err := round.ParseEmptyRoundPolicy(ctx.String(emptyRoundPolicyFlag.Name))
	if err != nil {
		return ledger.Options{}, errors.Wrapf(err, "invalid -%s", emptyRoundPolicyFlag.Name)
	}
	opts.Staking.EmptyRoundPolicy = policy

	collection, err := parseAddressFlag(ctx, collectionFlag)
	if err != nil {
		return ledger.Options{}, err
	}
	if collection != nil {
		opts.Collection = *collection
	}
	return opts, nil
}

func checkClock(ctx *cli.Context) {
	if ctx.Bool(disableNTPFlag.Name) {
		return
	}
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if offset, err := clock.CheckOffset(c, ctx.String(ntpServerFlag.Name), clockTolerance); err != nil {
		logger.Warn("unable to check clock offset", "err", err)
	} else {
		logger.Debug("clock offset", "offset", offset)
	}
}

func apiOptions(ctx *cli.Context, apiLogs *atomic.Bool, soloMode bool) api.Options {
	backtraceLimit := ctx.Uint64(apiBacktraceLimitFlag.Name)
	if backtraceLimit > math.MaxUint32 {
		backtraceLimit = math.MaxUint32
	}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	return api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		BacktraceLimit:       uint32(backtraceLimit),
		ActivitiesLimit:      ctx.Uint64(apiActivitiesLimitFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		SoloMode:             soloMode,
	}
}

func serve(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	url, stop, err := serve(addr, handler)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	return url + "/", stop, nil
}

func startMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	url, stop, err := serve(addr, handlers.CompressHandler(router))
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}
	return url + "/metrics", stop, nil
}

func startAdminServer(addr string, logLevel *slog.LevelVar) (string, func(), error) {
	url, stop, err := serve(addr, admin.New(logLevel))
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}
	return url + "/admin", stop, nil
}

// startOptionalServers starts the metrics and admin servers when enabled.
func startOptionalServers(ctx *cli.Context, logLevel *slog.LevelVar) (metricsURL, adminURL string, stop func()) {
	var stops []func()
	stop = func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		url, stopSrv, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			fatal(err)
		}
		metricsURL = url
		stops = append(stops, func() { logger.Info("stopping metrics server..."); stopSrv() })
	}
	if ctx.Bool(enableAdminFlag.Name) {
		url, stopSrv, err := startAdminServer(ctx.String(adminAddrFlag.Name), logLevel)
		if err != nil {
			fatal(err)
		}
		adminURL = url
		stops = append(stops, func() { logger.Info("stopping admin server..."); stopSrv() })
	}
	return
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func printStartupMessage(
	name string,
	opts ledger.Options,
	stakingAdmin common.Address,
	dataDir string,
	apiURL string,
	metricsURL string,
	adminURL string,
) {
	fmt.Printf(`Starting %v
    Staking admin [ %v ]
    Collection    [ %v ]
    Lock period   [ %v ]
    Empty rounds  [ %v ]
    Data dir      [ %v ]
    API portal    [ %v ]
    Metrics       [ %v ]
    Admin         [ %v ]
`,
		name+" "+fullVersion(),
		stakingAdmin,
		opts.Collection,
		time.Duration(opts.Staking.LockPeriod)*time.Second,
		opts.Staking.EmptyRoundPolicy,
		dataDir,
		apiURL,
		orNone(metricsURL),
		orNone(adminURL))
}
