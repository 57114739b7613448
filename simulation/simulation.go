// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package simulation runs transactions speculatively against the ledger state.
package simulation

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/log"
	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/state"
	"github.com/vechain/stackedstate/thor"
)

var logger = log.WithContext("pkg", "simulation")

// apply applies op in a scope of its own, which is committed on success.
func apply(st *state.State, op Op) error {
	st.Wrap()
	if err := op.Apply(st); err != nil {
		if perr := st.Pop(); perr != nil {
			return perr
		}
		return errors.WithMessage(err, op.String())
	}
	if err := st.Commit(); err != nil {
		return err
	}
	return st.Pop()
}

// Run applies ops as one transaction. The changes are left in a new scope on
// success. On failure, nothing is changed.
func Run(st *state.State, ops ...Op) error {
	checkpoint := st.Wrap()
	for i, op := range ops {
		if err := apply(st, op); err != nil {
			if rerr := st.RevertTo(checkpoint); rerr != nil {
				return rerr
			}
			logger.Trace("transaction failed", "op", i, "err", err)
			return err
		}
	}
	return nil
}

// MaxTransferable returns the largest amount from can transfer to to, at rev.
// The state is reset between attempts, so the ledger is only read once per entity.
func MaxTransferable(stater *state.Stater, rev stackedstate.Revision, from, to thor.Address) (uint256.Int, error) {
	st, err := stater.NewState(rev)
	if err != nil {
		return uint256.Int{}, err
	}
	acc, err := st.GetAccount(from, state.FailOnMissing)
	if err != nil {
		return uint256.Int{}, err
	}

	var (
		lo, hi = uint256.Int{}, acc.Balance
		one    = uint256.NewInt(1)
		runs   int
	)
	for lo.Lt(&hi) {
		// mid = lo + (hi - lo + 1) / 2
		var mid uint256.Int
		mid.Sub(&hi, &lo)
		mid.Add(&mid, one)
		mid.Rsh(&mid, 1)
		mid.Add(&mid, &lo)

		st.Reset()
		runs++
		err := Run(st, Transfer{From: from, To: to, Amount: mid})
		switch {
		case err == nil:
			lo = mid
		case IsFailure(err):
			hi.Sub(&mid, one)
		default:
			return uint256.Int{}, err
		}
	}
	st.Reset()

	hit, miss := st.CacheStats()
	logger.Debug("max transferable found", "from", from, "to", to, "amount", lo.Dec(), "runs", runs, "hit", hit, "miss", miss)
	return lo, nil
}
