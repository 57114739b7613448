// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package simulation_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stackedstate/kv"
	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/ledgerdb"
	"github.com/vechain/stackedstate/simulation"
	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/state"
	"github.com/vechain/stackedstate/thor"
)

var (
	alice    = thor.BytesToAddress([]byte("alice"))
	bob      = thor.BytesToAddress([]byte("bob"))
	treasury = thor.BytesToAddress([]byte("treasury"))
	coin     = thor.BytesToAddress([]byte("coin"))
	art      = thor.BytesToAddress([]byte("art"))
)

func amount(v uint64) uint256.Int { return *uint256.NewInt(v) }

type fixture struct {
	stater *state.Stater
	db     *ledgerdb.DB
}

func newFixture(t *testing.T) *fixture {
	store, err := kv.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	db, err := ledgerdb.New(store, 128)
	require.NoError(t, err)

	w := db.NewWriter(1)
	for _, e := range []any{
		ledger.Account{Address: alice, Balance: amount(100)},
		ledger.Account{Address: bob, Balance: amount(5)},
		ledger.Account{Address: treasury},
		ledger.Token{Address: coin, Treasury: treasury, Symbol: "C", TotalSupply: amount(50), MaxSupply: amount(60)},
		ledger.Token{Address: art, Type: ledger.NonFungibleUnique, Treasury: treasury, Symbol: "A"},
		ledger.TokenRelationship{Account: treasury, Token: coin, Balance: amount(40)},
		ledger.TokenRelationship{Account: alice, Token: coin, Balance: amount(10)},
		ledger.TokenRelationship{Account: bob, Token: coin, Frozen: true},
		ledger.TokenRelationship{Account: treasury, Token: art},
	} {
		require.NoError(t, w.Put(e))
	}
	require.NoError(t, w.Write())
	return &fixture{state.NewStater(db.Accessors()...), db}
}

func (f *fixture) newState(t *testing.T) *state.State {
	st, err := f.stater.NewState(stackedstate.Latest())
	require.NoError(t, err)
	return st
}

func balanceOf(t *testing.T, st *state.State, addr thor.Address) uint64 {
	acc, err := st.GetAccount(addr, state.EmptyOnMissing)
	require.NoError(t, err)
	return acc.Balance.Uint64()
}

func TestTransfer(t *testing.T) {
	st := newFixture(t).newState(t)
	carol := thor.BytesToAddress([]byte("carol"))

	require.NoError(t, simulation.Run(st,
		simulation.Transfer{From: alice, To: bob, Amount: amount(30)},
		simulation.Transfer{From: bob, To: carol, Amount: amount(20)},
	))
	assert.Equal(t, 1, st.Height())
	assert.Equal(t, uint64(70), balanceOf(t, st, alice))
	assert.Equal(t, uint64(15), balanceOf(t, st, bob))
	assert.Equal(t, uint64(20), balanceOf(t, st, carol))

	// self transfer keeps the balance
	require.NoError(t, simulation.Run(st, simulation.Transfer{From: alice, To: alice, Amount: amount(70)}))
	assert.Equal(t, uint64(70), balanceOf(t, st, alice))
}

func TestFailedTransactionLeavesNoTrace(t *testing.T) {
	st := newFixture(t).newState(t)

	err := simulation.Run(st,
		simulation.Transfer{From: alice, To: bob, Amount: amount(30)},
		simulation.Transfer{From: bob, To: alice, Amount: amount(100)},
	)
	assert.True(t, errors.Is(err, simulation.ErrInsufficientBalance))
	assert.True(t, simulation.IsFailure(err))
	assert.Equal(t, 0, st.Height())
	assert.Equal(t, uint64(100), balanceOf(t, st, alice))
	assert.Equal(t, uint64(5), balanceOf(t, st, bob))

	err = simulation.Run(st, simulation.Transfer{From: thor.BytesToAddress([]byte("nobody")), To: bob, Amount: amount(1)})
	var missing *state.MissingError
	assert.True(t, errors.As(err, &missing))
	assert.True(t, simulation.IsFailure(err))
}

func TestTokenTransfer(t *testing.T) {
	st := newFixture(t).newState(t)

	require.NoError(t, simulation.Run(st, simulation.TokenTransfer{Token: coin, From: treasury, To: alice, Amount: amount(15)}))
	rel, err := st.GetTokenRelationship(alice, coin, state.FailOnMissing)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), rel.Balance.Uint64())

	err = simulation.Run(st, simulation.TokenTransfer{Token: coin, From: alice, To: bob, Amount: amount(1)})
	assert.True(t, errors.Is(err, simulation.ErrFrozen))

	err = simulation.Run(st, simulation.TokenTransfer{Token: art, From: treasury, To: alice, Amount: amount(1)})
	assert.True(t, errors.Is(err, simulation.ErrWrongTokenType))

	// alice's earlier transfer survives the failures
	rel, err = st.GetTokenRelationship(alice, coin, state.FailOnMissing)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), rel.Balance.Uint64())
}

func TestMint(t *testing.T) {
	st := newFixture(t).newState(t)

	require.NoError(t, simulation.Run(st, simulation.Mint{Token: coin, Amount: amount(10)}))
	token, err := st.GetToken(coin, state.FailOnMissing)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), token.TotalSupply.Uint64())

	err = simulation.Run(st, simulation.Mint{Token: coin, Amount: amount(1)})
	assert.True(t, errors.Is(err, simulation.ErrSupplyExceeded))

	require.NoError(t, simulation.Run(st,
		simulation.Mint{Token: art, Metadata: "first"},
		simulation.Mint{Token: art, Metadata: "second"},
	))
	nft, err := st.GetUniqueToken(art, 2, state.FailOnMissing)
	require.NoError(t, err)
	assert.Equal(t, "second", nft.Metadata)
	assert.Equal(t, treasury, nft.Owner)

	rel, err := st.GetTokenRelationship(treasury, art, state.FailOnMissing)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), rel.Balance.Uint64())
}

func TestBurnAndDissociate(t *testing.T) {
	st := newFixture(t).newState(t)

	require.NoError(t, simulation.Run(st,
		simulation.Mint{Token: art, Metadata: "x"},
		simulation.BurnUnique{Token: art, Serial: 1},
	))
	_, err := st.GetUniqueToken(art, 1, state.FailOnMissing)
	var missing *state.MissingError
	assert.True(t, errors.As(err, &missing))

	token, err := st.GetToken(art, state.FailOnMissing)
	require.NoError(t, err)
	assert.True(t, token.TotalSupply.IsZero())
	assert.Equal(t, uint64(1), token.LastSerial)

	err = simulation.Run(st, simulation.Dissociate{Account: alice, Token: coin})
	assert.True(t, errors.Is(err, simulation.ErrNonZeroBalance))

	require.NoError(t, simulation.Run(st, simulation.Dissociate{Account: bob, Token: coin}))
	_, err = st.GetTokenRelationship(bob, coin, state.FailOnMissing)
	assert.True(t, errors.As(err, &missing))
}

func TestMaxTransferable(t *testing.T) {
	f := newFixture(t)

	got, err := simulation.MaxTransferable(f.stater, stackedstate.Latest(), alice, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.Uint64())

	// the receiver can't hold more than 2^256-1
	rich := thor.BytesToAddress([]byte("rich"))
	var huge uint256.Int
	huge.SetAllOne()
	huge.Sub(&huge, uint256.NewInt(41))
	w := f.db.NewWriter(2)
	require.NoError(t, w.Put(ledger.Account{Address: rich, Balance: huge}))
	require.NoError(t, w.Write())

	got, err = simulation.MaxTransferable(f.stater, stackedstate.Latest(), alice, rich)
	require.NoError(t, err)
	assert.Equal(t, uint64(41), got.Uint64())

	// pinned before the rich account existed
	got, err = simulation.MaxTransferable(f.stater, stackedstate.At(1), alice, rich)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.Uint64())

	_, err = simulation.MaxTransferable(f.stater, stackedstate.Latest(), thor.BytesToAddress([]byte("nobody")), bob)
	assert.Error(t, err)
}
