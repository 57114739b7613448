// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stackedstate/ledgerdb"
)

func seedAction(ctx *cli.Context) error {
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	if s.config == nil {
		return errors.Errorf("seed requires --%v", configFlag.Name)
	}
	blockNum := uint32(0)
	if s.block > 0 {
		blockNum = uint32(s.block)
	}

	entities, err := s.config.Entities()
	if err != nil {
		return err
	}

	store, db, err := s.openLedgerDB()
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing ledger database..."); store.Close() }()

	n, err := seed(db, blockNum, entities, true)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d entities at block %d into %v\n", n, blockNum, s.dataDir)
	return nil
}

func seed(db *ledgerdb.DB, blockNum uint32, entities []any, progress bool) (int, error) {
	var bar *pb.ProgressBar
	if progress {
		bar = pb.New(len(entities)).
			SetMaxWidth(90).
			Start()
		defer func() { bar.NotPrint = true }()
	}

	w := db.NewWriter(blockNum)
	for _, e := range entities {
		if err := w.Put(e); err != nil {
			return 0, err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	n := w.Len()
	if err := w.Write(); err != nil {
		return 0, err
	}
	if bar != nil {
		bar.Finish()
	}
	return n, nil
}
