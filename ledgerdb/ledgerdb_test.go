// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledgerdb

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stackedstate/kv"
	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/thor"
)

func newTestDB(t *testing.T) *DB {
	store, err := kv.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db, err := New(store, 64)
	require.NoError(t, err)
	return db
}

func account(addr thor.Address, balance uint64) ledger.Account {
	return ledger.Account{Address: addr, Balance: *uint256.NewInt(balance), Nonce: 1}
}

func TestVersionedRead(t *testing.T) {
	db := newTestDB(t)
	addr := thor.BytesToAddress([]byte("acc"))

	w := db.NewWriter(10)
	require.NoError(t, w.Put(account(addr, 100)))
	assert.Equal(t, 1, w.Len())
	require.NoError(t, w.Write())

	w = db.NewWriter(20)
	require.NoError(t, w.Put(account(addr, 200)))
	require.NoError(t, w.Write())

	tests := []struct {
		rev     stackedstate.Revision
		exists  bool
		balance uint64
	}{
		{stackedstate.At(5), false, 0},
		{stackedstate.At(10), true, 100},
		{stackedstate.At(19), true, 100},
		{stackedstate.At(20), true, 200},
		{stackedstate.At(1 << 31), true, 200},
		{stackedstate.Latest(), true, 200},
	}
	for _, tt := range tests {
		t.Run(tt.rev.String(), func(t *testing.T) {
			acc, ok, err := db.Accounts().Get(ledger.AccountKey(addr), tt.rev)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, ok)
			if tt.exists {
				assert.Equal(t, tt.balance, acc.Balance.Uint64())
				assert.Equal(t, addr, acc.Address)
			}
		})
	}
}

func TestTombstone(t *testing.T) {
	db := newTestDB(t)
	owner, token := thor.BytesToAddress([]byte("a")), thor.BytesToAddress([]byte("t"))
	rel := ledger.TokenRelationship{Account: owner, Token: token, Balance: *uint256.NewInt(7)}

	w := db.NewWriter(1)
	require.NoError(t, w.Put(rel))
	require.NoError(t, w.Write())

	w = db.NewWriter(2)
	require.NoError(t, w.Delete(ledger.TokenRelationshipKind, rel.Key()))
	require.NoError(t, w.Write())

	got, ok, err := db.TokenRelationships().Get(rel.Key(), stackedstate.At(1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rel, got)

	_, ok, err = db.TokenRelationships().Get(rel.Key(), stackedstate.Latest())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSpacesAreSeparated(t *testing.T) {
	db := newTestDB(t)
	addr := thor.BytesToAddress([]byte("x"))

	w := db.NewWriter(1)
	require.NoError(t, w.Put(ledger.Token{Address: addr, Name: "X", Symbol: "X", MaxSupply: *uint256.NewInt(1000)}))
	require.NoError(t, w.Write())

	_, ok, err := db.Accounts().Get(ledger.AccountKey(addr), stackedstate.Latest())
	require.NoError(t, err)
	assert.False(t, ok)

	tok, ok, err := db.Tokens().Get(ledger.TokenKey(addr), stackedstate.Latest())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "X", tok.Symbol)
}

func TestUniqueToken(t *testing.T) {
	db := newTestDB(t)
	nft := ledger.UniqueToken{
		Token:    thor.BytesToAddress([]byte("nft")),
		Serial:   3,
		Owner:    thor.BytesToAddress([]byte("owner")),
		Metadata: "ipfs://x",
	}
	w := db.NewWriter(1)
	require.NoError(t, w.Put(nft))
	require.NoError(t, w.Write())

	got, ok, err := db.UniqueTokens().Get(ledger.UniqueTokenKey(nft.Token, 3), stackedstate.Latest())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, nft, got)

	_, ok, err = db.UniqueTokens().Get(ledger.UniqueTokenKey(nft.Token, 4), stackedstate.Latest())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachePurgedOnWrite(t *testing.T) {
	db := newTestDB(t)
	addr := thor.BytesToAddress([]byte("acc"))
	key := ledger.AccountKey(addr)

	_, ok, err := db.Accounts().Get(key, stackedstate.Latest())
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = db.Accounts().Get(key, stackedstate.Latest())
	require.NoError(t, err)
	assert.False(t, ok)
	hit, miss := db.CacheStats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	w := db.NewWriter(1)
	require.NoError(t, w.Put(account(addr, 1)))
	require.NoError(t, w.Write())

	_, ok, err = db.Accounts().Get(key, stackedstate.Latest())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriterRejectsUnknown(t *testing.T) {
	db := newTestDB(t)
	w := db.NewWriter(1)
	assert.Error(t, w.Put("not an entity"))
	assert.Error(t, w.Delete(stackedstate.NewKind[int]("int"), ledger.Key{}))
}

func TestAccessorsInStack(t *testing.T) {
	db := newTestDB(t)
	addr := thor.BytesToAddress([]byte("acc"))
	w := db.NewWriter(1)
	require.NoError(t, w.Put(account(addr, 100)))
	require.NoError(t, w.Write())

	s, err := stackedstate.NewStack(stackedstate.Latest(), db.Accessors()...)
	require.NoError(t, err)
	assert.Len(t, s.Kinds(), 4)

	acc, err := stackedstate.Access(s.Top(), ledger.AccountKind)
	require.NoError(t, err)
	got, ok, err := acc.Get(ledger.AccountKey(addr))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(100), got.Balance.Uint64())
}

func TestBlobCache(t *testing.T) {
	db := newTestDB(t)
	addr := thor.BytesToAddress([]byte("acc"))
	key := ledger.AccountKey(addr)

	w := db.NewWriter(1)
	require.NoError(t, w.Put(account(addr, 100)))
	require.NoError(t, w.Write())

	_, ok, err := db.Accounts().Get(key, stackedstate.Latest())
	require.NoError(t, err)
	assert.True(t, ok)

	// decoded entity dropped, encoded one still cached
	db.cache.Purge()
	got, ok, err := db.Accounts().Get(key, stackedstate.Latest())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(100), got.Balance.Uint64())
	hit, miss := db.blobStats.Counts()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	// a write makes cached lookups unreachable
	w = db.NewWriter(2)
	require.NoError(t, w.Put(account(addr, 200)))
	require.NoError(t, w.Write())
	got, _, err = db.Accounts().Get(key, stackedstate.Latest())
	require.NoError(t, err)
	assert.Equal(t, uint64(200), got.Balance.Uint64())
	_, miss = db.blobStats.Counts()
	assert.Equal(t, int64(2), miss)
}
