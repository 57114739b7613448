// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stackedstate/thor"
)

func TestKey(t *testing.T) {
	acc := thor.BytesToAddress([]byte("acc"))
	tok := thor.BytesToAddress([]byte("tok"))

	keys := []Key{
		AccountKey(acc),
		RelationshipKey(acc, tok),
		UniqueTokenKey(tok, 7),
	}
	for _, k := range keys {
		b := k.Bytes()
		assert.Len(t, b, KeyLength)
		decoded, err := KeyFromBytes(b)
		require.NoError(t, err)
		assert.Equal(t, k, decoded)
	}

	assert.Equal(t, AccountKey(acc), TokenKey(acc), "accounts and tokens share the address space")
	assert.NotEqual(t, RelationshipKey(acc, tok), RelationshipKey(tok, acc))
	assert.Equal(t, tok.String()+"#7", UniqueTokenKey(tok, 7).String())
	assert.Equal(t, acc.String()+"/"+tok.String(), RelationshipKey(acc, tok).String())

	_, err := KeyFromBytes([]byte{1, 2})
	assert.Error(t, err)
}

func TestEntityKeys(t *testing.T) {
	acc := thor.BytesToAddress([]byte("acc"))
	tok := thor.BytesToAddress([]byte("tok"))

	assert.Equal(t, AccountKey(acc), EmptyAccount(acc).Key())
	assert.Equal(t, TokenKey(tok), EmptyToken(tok).Key())
	assert.Equal(t, RelationshipKey(acc, tok), EmptyTokenRelationship(acc, tok).Key())
	assert.Equal(t, UniqueTokenKey(tok, 3), EmptyUniqueToken(tok, 3).Key())
	assert.True(t, EmptyAccount(acc).IsEmpty())
	assert.Len(t, Kinds(), 4)
}
