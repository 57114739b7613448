// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stackedstate/log"
)

var (
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "path to the YAML config file",
		EnvVar: "STACKEDSTATE_CONFIG",
	}
	dataDirFlag = cli.StringFlag{
		Name:   "datadir",
		Value:  defaultDataDir(),
		Usage:  "directory for the ledger database",
		EnvVar: "STACKEDSTATE_DATADIR",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  256,
		Usage:  "megabytes of ram allocated to the database cache",
		EnvVar: "STACKEDSTATE_CACHE",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		Usage:  "log verbosity (0-9)",
		EnvVar: "STACKEDSTATE_VERBOSITY",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		Usage:  "output logs in JSON format",
		EnvVar: "STACKEDSTATE_JSON_LOGS",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: "STACKEDSTATE_ENABLE_METRICS",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
		EnvVar: "STACKEDSTATE_METRICS_ADDR",
	}

	blockFlag = cli.Int64Flag{
		Name:  "block",
		Value: -1,
		Usage: "block number to read or write at, latest if negative",
	}
	kindFlag = cli.StringFlag{
		Name:  "kind",
		Value: "account",
		Usage: "entity kind (account|token|relationship|unique-token)",
	}
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "address of the account or token",
	}
	targetFlag = cli.StringFlag{
		Name:  "target",
		Usage: "token address of a relationship",
	}
	serialFlag = cli.Uint64Flag{
		Name:  "serial",
		Usage: "serial of a unique token",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the entity with all fields",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "sender address",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "receiver address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Value: "0",
		Usage: "amount to transfer in decimal",
	}
	runsFlag = cli.IntFlag{
		Name:  "runs",
		Value: 1,
		Usage: "count of independent simulations",
	}
	parallelFlag = cli.IntFlag{
		Name:  "parallel",
		Value: 4,
		Usage: "max count of simulations running at once",
	}
)
