// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stackedstate/kv"
	"github.com/vechain/stackedstate/ledgerdb"
	"github.com/vechain/stackedstate/log"
	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/thor"
)

const ledgerDBName = "ledger.db"

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.stackedstate")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.stackedstate")
		}
		return filepath.Join(home, ".org.vechain.stackedstate")
	}
	// As we cannot guess a stable location, return empty and handle later
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

func initLogger(ctx *cli.Context) {
	log.Init(os.Stderr, ctx.GlobalInt(verbosityFlag.Name), ctx.GlobalBool(jsonLogsFlag.Name))
}

// settings are the global flags merged with the config file.
type settings struct {
	dataDir     string
	cache       int
	block       int64
	metricsAddr string
	config      *Config
}

func loadSettings(ctx *cli.Context) (*settings, error) {
	s := &settings{
		dataDir:     ctx.GlobalString(dataDirFlag.Name),
		cache:       ctx.GlobalInt(cacheFlag.Name),
		block:       ctx.Int64(blockFlag.Name),
		metricsAddr: ctx.GlobalString(metricsAddrFlag.Name),
	}
	path := ctx.GlobalString(configFlag.Name)
	if path == "" {
		return s, nil
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	s.config = cfg
	if cfg.DataDir != "" && !ctx.GlobalIsSet(dataDirFlag.Name) {
		s.dataDir = cfg.DataDir
	}
	if cfg.Cache > 0 && !ctx.GlobalIsSet(cacheFlag.Name) {
		s.cache = cfg.Cache
	}
	if cfg.Block != nil && !ctx.IsSet(blockFlag.Name) {
		s.block = *cfg.Block
	}
	if cfg.MetricsAddr != "" && !ctx.GlobalIsSet(metricsAddrFlag.Name) {
		s.metricsAddr = cfg.MetricsAddr
	}
	return s, nil
}

func (s *settings) revision() stackedstate.Revision {
	if s.block < 0 {
		return stackedstate.Latest()
	}
	return stackedstate.At(uint32(s.block))
}

func (s *settings) openLedgerDB() (*kv.LevelDB, *ledgerdb.DB, error) {
	if s.dataDir == "" {
		return nil, nil, errors.New("unable to infer default data dir, use -datadir to specify")
	}
	if err := os.MkdirAll(s.dataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir [%v]", s.dataDir)
	}
	path := filepath.Join(s.dataDir, ledgerDBName)
	store, err := kv.Open(path, kv.Options{
		CacheSize:              s.cache,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "open ledger database [%v]", path)
	}
	// about 4k decoded entities per MiB
	db, err := ledgerdb.New(store, s.cache*4096)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, db, nil
}

func parseAddressFlag(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	str := ctx.String(flag.Name)
	if str == "" {
		return thor.Address{}, errors.Errorf("missing --%v", flag.Name)
	}
	addr, err := thor.ParseAddress(str)
	if err != nil {
		return thor.Address{}, errors.Wrapf(err, "invalid --%v", flag.Name)
	}
	return *addr, nil
}
