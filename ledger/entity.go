// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/thor"
)

// Entities are plain comparable values. Once cached they are copied, never shared,
// so a cached entity can't be modified in place.

// Account is a ledger account.
type Account struct {
	Address           thor.Address
	Balance           uint256.Int
	Nonce             uint64
	Expiry            uint64
	AutoRenewSecs     uint64
	NumTreasuryTitles uint32
	Proxy             thor.Address
}

// Token is a fungible or non-fungible token.
type Token struct {
	Address     thor.Address
	Type        TokenType
	Treasury    thor.Address
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply uint256.Int
	MaxSupply   uint256.Int
	LastSerial  uint64
	Paused      bool
	Deleted     bool
}

// TokenType is the type of a token.
type TokenType uint8

// Token types.
const (
	FungibleCommon TokenType = iota
	NonFungibleUnique
)

func (t TokenType) String() string {
	if t == NonFungibleUnique {
		return "non-fungible-unique"
	}
	return "fungible-common"
}

// TokenRelationship is the association of an account with a token.
type TokenRelationship struct {
	Account    thor.Address
	Token      thor.Address
	Balance    uint256.Int
	Frozen     bool
	KycGranted bool
	Automatic  bool
}

// UniqueToken is one serial of a non-fungible token.
type UniqueToken struct {
	Token     thor.Address
	Serial    uint64
	Owner     thor.Address
	Spender   thor.Address
	Metadata  string
	CreatedAt uint64
}

// Kinds of the entities cached by state frames.
var (
	AccountKind           = stackedstate.NewKind[Account]("account")
	TokenKind             = stackedstate.NewKind[Token]("token")
	TokenRelationshipKind = stackedstate.NewKind[TokenRelationship]("token_relationship")
	UniqueTokenKind       = stackedstate.NewKind[UniqueToken]("unique_token")
)

// Kinds returns all entity kinds.
func Kinds() []stackedstate.Kind {
	return []stackedstate.Kind{AccountKind, TokenKind, TokenRelationshipKind, UniqueTokenKind}
}

// Key returns the key of the account.
func (a Account) Key() Key { return AccountKey(a.Address) }

// Key returns the key of the token.
func (t Token) Key() Key { return TokenKey(t.Address) }

// Key returns the key of the relationship.
func (r TokenRelationship) Key() Key { return RelationshipKey(r.Account, r.Token) }

// Key returns the key of the unique token.
func (u UniqueToken) Key() Key { return UniqueTokenKey(u.Token, u.Serial) }

// IsEmpty returns if the account has no balance, nonce or proxy.
func (a Account) IsEmpty() bool {
	return a.Balance.IsZero() && a.Nonce == 0 && a.Proxy.IsZero()
}

// EmptyAccount returns the empty account at addr.
func EmptyAccount(addr thor.Address) Account { return Account{Address: addr} }

// EmptyToken returns the empty token at addr.
func EmptyToken(addr thor.Address) Token { return Token{Address: addr} }

// EmptyTokenRelationship returns the empty relationship of account and token.
func EmptyTokenRelationship(account, token thor.Address) TokenRelationship {
	return TokenRelationship{Account: account, Token: token}
}

// EmptyUniqueToken returns the empty unique token of the given serial.
func EmptyUniqueToken(token thor.Address, serial uint64) UniqueToken {
	return UniqueToken{Token: token, Serial: serial}
}
