// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stackedstate/log"
	"github.com/vechain/stackedstate/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")

	stopMetrics = func() {}
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "stackedstate"
	app.Usage = "Speculative execution over stacked ledger state"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		configFlag,
		dataDirFlag,
		cacheFlag,
		verbosityFlag,
		jsonLogsFlag,
		enableMetricsFlag,
		metricsAddrFlag,
	}
	app.Before = beforeAction
	app.After = func(*cli.Context) error {
		stopMetrics()
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "seed",
			Usage:  "write the entities of the config file into the ledger database",
			Flags:  []cli.Flag{blockFlag},
			Action: seedAction,
		},
		{
			Name:   "get",
			Usage:  "read an entity from the ledger",
			Flags:  []cli.Flag{blockFlag, kindFlag, addrFlag, targetFlag, serialFlag, dumpFlag},
			Action: getAction,
		},
		{
			Name:   "simulate",
			Usage:  "run independent transfer simulations against the ledger",
			Flags:  []cli.Flag{blockFlag, fromFlag, toFlag, amountFlag, runsFlag, parallelFlag},
			Action: simulateAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

func beforeAction(ctx *cli.Context) error {
	initLogger(ctx)

	if !ctx.GlobalBool(enableMetricsFlag.Name) {
		return nil
	}
	metrics.InitializePrometheusMetrics()
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	url, stop, err := startMetricsServer(s.metricsAddr)
	if err != nil {
		return err
	}
	stopMetrics = stop
	logger.Info("metrics server started", "url", url)
	return nil
}
