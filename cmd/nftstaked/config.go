// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// fileConfig is the content of the file given by --config. Keys are flag names.
type fileConfig struct {
	DataDir string `yaml:"data-dir"`
	Cache   uint64 `yaml:"cache"`

	API struct {
		Addr                 string `yaml:"addr"`
		Cors                 string `yaml:"cors"`
		BacktraceLimit       uint64 `yaml:"backtrace-limit"`
		ActivitiesLimit      uint64 `yaml:"activities-limit"`
		EnableLogs           bool   `yaml:"enable-logs"`
		SlowQueriesThreshold uint64 `yaml:"slow-queries-threshold"`
		Log5xxErrors         bool   `yaml:"log-5xx-errors"`
	} `yaml:"api"`

	Log struct {
		Verbosity *uint64 `yaml:"verbosity"`
		JSON      bool    `yaml:"json"`
		File      string  `yaml:"file"`
	} `yaml:"log"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`

	Admin struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"admin"`

	Staking struct {
		Admin            string `yaml:"admin"`
		Collection       string `yaml:"collection"`
		LockPeriod       uint64 `yaml:"lock-period"`
		EmptyRoundPolicy string `yaml:"empty-round-policy"`
	} `yaml:"staking"`

	NTP struct {
		Server   string `yaml:"server"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"ntp"`
}

func readConfigFile(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config file")
	}
	defer f.Close()

	var cfg fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config file [%v]", path)
	}
	return &cfg, nil
}

// values maps flag names to the settings present in the file.
func (c *fileConfig) values() map[string]string {
	m := make(map[string]string)
	str := func(name, v string) {
		if v != "" {
			m[name] = v
		}
	}
	num := func(name string, v uint64) {
		if v != 0 {
			m[name] = strconv.FormatUint(v, 10)
		}
	}
	flag := func(name string, v bool) {
		if v {
			m[name] = "true"
		}
	}

	str(dataDirFlag.Name, c.DataDir)
	num(cacheFlag.Name, c.Cache)

	str(apiAddrFlag.Name, c.API.Addr)
	str(apiCorsFlag.Name, c.API.Cors)
	num(apiBacktraceLimitFlag.Name, c.API.BacktraceLimit)
	num(apiActivitiesLimitFlag.Name, c.API.ActivitiesLimit)
	flag(enableAPILogsFlag.Name, c.API.EnableLogs)
	num(apiSlowQueriesThresholdFlag.Name, c.API.SlowQueriesThreshold)
	flag(apiLog5xxErrorsFlag.Name, c.API.Log5xxErrors)

	if c.Log.Verbosity != nil {
		m[verbosityFlag.Name] = strconv.FormatUint(*c.Log.Verbosity, 10)
	}
	flag(jsonLogsFlag.Name, c.Log.JSON)
	str(logFileFlag.Name, c.Log.File)

	flag(enableMetricsFlag.Name, c.Metrics.Enabled)
	str(metricsAddrFlag.Name, c.Metrics.Addr)
	flag(enableAdminFlag.Name, c.Admin.Enabled)
	str(adminAddrFlag.Name, c.Admin.Addr)

	str(stakingAdminFlag.Name, c.Staking.Admin)
	str(collectionFlag.Name, c.Staking.Collection)
	num(lockPeriodFlag.Name, c.Staking.LockPeriod)
	str(emptyRoundPolicyFlag.Name, c.Staking.EmptyRoundPolicy)

	str(ntpServerFlag.Name, c.NTP.Server)
	flag(disableNTPFlag.Name, c.NTP.Disabled)
	return m
}

// applyConfigFile fills the flags not given on the command line from the config file.
// Settings for flags not in flags are ignored.
func applyConfigFile(ctx *cli.Context, flags []cli.Flag) error {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return nil
	}
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}

	defined := make(map[string]bool)
	for _, f := range flags {
		defined[f.GetName()] = true
	}
	for name, value := range cfg.values() {
		if !defined[name] || ctx.IsSet(name) {
			continue
		}
		if err := ctx.Set(name, value); err != nil {
			return errors.Wrapf(err, "apply config [%v]", name)
		}
	}
	return nil
}
