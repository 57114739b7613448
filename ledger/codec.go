// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/thor"
)

// the rlp forms of entities, with 256-bit numbers as big ints.
type (
	accountRLP struct {
		Address           thor.Address
		Balance           *big.Int
		Nonce             uint64
		Expiry            uint64
		AutoRenewSecs     uint64
		NumTreasuryTitles uint32
		Proxy             thor.Address
	}
	tokenRLP struct {
		Address     thor.Address
		Type        TokenType
		Treasury    thor.Address
		Name        string
		Symbol      string
		Decimals    uint8
		TotalSupply *big.Int
		MaxSupply   *big.Int
		LastSerial  uint64
		Paused      bool
		Deleted     bool
	}
	relationshipRLP struct {
		Account    thor.Address
		Token      thor.Address
		Balance    *big.Int
		Frozen     bool
		KycGranted bool
		Automatic  bool
	}
)

func toUint256(b *big.Int) (uint256.Int, error) {
	var v uint256.Int
	if b == nil {
		return v, nil
	}
	if v.SetFromBig(b) {
		return v, errors.New("256-bit overflow")
	}
	return v, nil
}

// EncodeRLP implements rlp.Encoder.
func (a *Account) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &accountRLP{
		a.Address,
		a.Balance.ToBig(),
		a.Nonce,
		a.Expiry,
		a.AutoRenewSecs,
		a.NumTreasuryTitles,
		a.Proxy,
	})
}

// DecodeRLP implements rlp.Decoder.
func (a *Account) DecodeRLP(s *rlp.Stream) error {
	var obj accountRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	balance, err := toUint256(obj.Balance)
	if err != nil {
		return errors.Wrap(err, "account balance")
	}
	*a = Account{
		Address:           obj.Address,
		Balance:           balance,
		Nonce:             obj.Nonce,
		Expiry:            obj.Expiry,
		AutoRenewSecs:     obj.AutoRenewSecs,
		NumTreasuryTitles: obj.NumTreasuryTitles,
		Proxy:             obj.Proxy,
	}
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (t *Token) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &tokenRLP{
		t.Address,
		t.Type,
		t.Treasury,
		t.Name,
		t.Symbol,
		t.Decimals,
		t.TotalSupply.ToBig(),
		t.MaxSupply.ToBig(),
		t.LastSerial,
		t.Paused,
		t.Deleted,
	})
}

// DecodeRLP implements rlp.Decoder.
func (t *Token) DecodeRLP(s *rlp.Stream) error {
	var obj tokenRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	total, err := toUint256(obj.TotalSupply)
	if err != nil {
		return errors.Wrap(err, "token total supply")
	}
	max, err := toUint256(obj.MaxSupply)
	if err != nil {
		return errors.Wrap(err, "token max supply")
	}
	*t = Token{
		Address:     obj.Address,
		Type:        obj.Type,
		Treasury:    obj.Treasury,
		Name:        obj.Name,
		Symbol:      obj.Symbol,
		Decimals:    obj.Decimals,
		TotalSupply: total,
		MaxSupply:   max,
		LastSerial:  obj.LastSerial,
		Paused:      obj.Paused,
		Deleted:     obj.Deleted,
	}
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (r *TokenRelationship) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &relationshipRLP{
		r.Account,
		r.Token,
		r.Balance.ToBig(),
		r.Frozen,
		r.KycGranted,
		r.Automatic,
	})
}

// DecodeRLP implements rlp.Decoder.
func (r *TokenRelationship) DecodeRLP(s *rlp.Stream) error {
	var obj relationshipRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	balance, err := toUint256(obj.Balance)
	if err != nil {
		return errors.Wrap(err, "relationship balance")
	}
	*r = TokenRelationship{
		Account:    obj.Account,
		Token:      obj.Token,
		Balance:    balance,
		Frozen:     obj.Frozen,
		KycGranted: obj.KycGranted,
		Automatic:  obj.Automatic,
	}
	return nil
}
