// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stackedstate/cache"
	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/simulation"
	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/state"
	"github.com/vechain/stackedstate/thor"
)

type simulationResult struct {
	err       error
	from, to  ledger.Account
	hit, miss int64
}

func simulateAction(ctx *cli.Context) error {
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	from, err := parseAddressFlag(ctx, fromFlag)
	if err != nil {
		return err
	}
	to, err := parseAddressFlag(ctx, toFlag)
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}

	store, db, err := s.openLedgerDB()
	if err != nil {
		return err
	}
	defer store.Close()

	stater := state.NewStater(db.Accessors()...)
	transfer := simulation.Transfer{From: from, To: to, Amount: amount}
	results, err := simulate(stater, s.revision(), transfer, ctx.Int(runsFlag.Name), ctx.Int(parallelFlag.Name))
	if err != nil {
		return err
	}
	maxAmount, err := simulation.MaxTransferable(stater, s.revision(), from, to)
	if err != nil {
		return err
	}
	printResults(os.Stdout, transfer, results, maxAmount)

	hit, miss := db.CacheStats()
	logger.Debug("ledger cache stats", "hit", hit, "miss", miss, "rate", cache.HitRate(hit, miss))
	return nil
}

// simulate runs the transfer in runs independent states, at most parallel at once.
func simulate(stater *state.Stater, rev stackedstate.Revision, transfer simulation.Transfer, runs, parallel int) ([]simulationResult, error) {
	if runs <= 0 {
		return nil, errors.New("runs must be positive")
	}
	var g errgroup.Group
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	results := make([]simulationResult, runs)
	for i := range results {
		i := i
		g.Go(func() error {
			st, err := stater.NewState(rev)
			if err != nil {
				return err
			}
			r := &results[i]
			r.err = simulation.Run(st, transfer)
			if r.err != nil && !simulation.IsFailure(r.err) {
				return r.err
			}
			if r.from, err = st.GetAccount(transfer.From, state.EmptyOnMissing); err != nil {
				return err
			}
			if r.to, err = st.GetAccount(transfer.To, state.EmptyOnMissing); err != nil {
				return err
			}
			r.hit, r.miss = st.CacheStats()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResults(w io.Writer, transfer simulation.Transfer, results []simulationResult, maxAmount uint256.Int) {
	fmt.Fprintln(w, transfer)
	for i, r := range results {
		status := "ok"
		if r.err != nil {
			status = r.err.Error()
		}
		fmt.Fprintf(w, "#%d %v: %v=%v %v=%v (cache hit %d miss %d)\n", i, status,
			shortAddr(transfer.From), r.from.Balance.Dec(), shortAddr(transfer.To), r.to.Balance.Dec(), r.hit, r.miss)
	}
	fmt.Fprintf(w, "max transferable: %v\n", maxAmount.Dec())
}

func shortAddr(addr thor.Address) string {
	s := addr.String()
	if len(s) <= 10 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}
