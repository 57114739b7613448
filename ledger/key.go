// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/thor"
)

// KeyLength is the length of the byte form of Key.
const KeyLength = thor.AddressLength*2 + 8

// Key identifies an entity of any kind on the ledger.
//
//	account:            {Addr: account}
//	token:              {Addr: token}
//	token relationship: {Addr: account, Target: token}
//	unique token:       {Addr: token, Serial: serial}
type Key struct {
	Addr   thor.Address
	Target thor.Address
	Serial uint64
}

// AccountKey returns the key of an account.
func AccountKey(addr thor.Address) Key { return Key{Addr: addr} }

// TokenKey returns the key of a token.
func TokenKey(token thor.Address) Key { return Key{Addr: token} }

// RelationshipKey returns the key of the relationship between an account and a token.
func RelationshipKey(account, token thor.Address) Key { return Key{Addr: account, Target: token} }

// UniqueTokenKey returns the key of one serial of a non-fungible token.
func UniqueTokenKey(token thor.Address, serial uint64) Key { return Key{Addr: token, Serial: serial} }

// Bytes returns the fixed length byte form of the key.
func (k Key) Bytes() []byte {
	b := make([]byte, 0, KeyLength)
	b = append(b, k.Addr[:]...)
	b = append(b, k.Target[:]...)
	return binary.BigEndian.AppendUint64(b, k.Serial)
}

// KeyFromBytes decodes the byte form of a key.
func KeyFromBytes(b []byte) (Key, error) {
	if len(b) != KeyLength {
		return Key{}, errors.Errorf("invalid key length %v", len(b))
	}
	var k Key
	copy(k.Addr[:], b[:thor.AddressLength])
	copy(k.Target[:], b[thor.AddressLength:2*thor.AddressLength])
	k.Serial = binary.BigEndian.Uint64(b[2*thor.AddressLength:])
	return k, nil
}

func (k Key) String() string {
	switch {
	case !k.Target.IsZero():
		return fmt.Sprintf("%v/%v", k.Addr, k.Target)
	case k.Serial != 0:
		return fmt.Sprintf("%v#%d", k.Addr, k.Serial)
	default:
		return k.Addr.String()
	}
}
