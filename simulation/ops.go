// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package simulation

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/state"
	"github.com/vechain/stackedstate/thor"
)

// Failures of an operation. They fail the transaction, and leave the state untouched.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrOverflow            = errors.New("balance overflow")
	ErrFrozen              = errors.New("token relationship frozen")
	ErrTokenPaused         = errors.New("token paused or deleted")
	ErrSupplyExceeded      = errors.New("max supply exceeded")
	ErrWrongTokenType      = errors.New("wrong token type")
	ErrNonZeroBalance      = errors.New("non-zero token balance")
	ErrNotTreasuryOwned    = errors.New("unique token not owned by treasury")
)

// IsFailure returns whether err fails the transaction, rather than being a
// fault of the state.
func IsFailure(err error) bool {
	var missing *state.MissingError
	if errors.As(err, &missing) {
		return true
	}
	for _, e := range []error{
		ErrInsufficientBalance, ErrOverflow, ErrFrozen, ErrTokenPaused,
		ErrSupplyExceeded, ErrWrongTokenType, ErrNonZeroBalance, ErrNotTreasuryOwned,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Op is an operation of a transaction.
type Op interface {
	Apply(st *state.State) error
	fmt.Stringer
}

func sub(a, b *uint256.Int) (uint256.Int, error) {
	if a.Lt(b) {
		return uint256.Int{}, errors.WithStack(ErrInsufficientBalance)
	}
	var r uint256.Int
	r.Sub(a, b)
	return r, nil
}

func add(a, b *uint256.Int) (uint256.Int, error) {
	var r uint256.Int
	if _, overflow := r.AddOverflow(a, b); overflow {
		return uint256.Int{}, errors.WithStack(ErrOverflow)
	}
	return r, nil
}

// Transfer moves balance between accounts. The sender must exist.
type Transfer struct {
	From, To thor.Address
	Amount   uint256.Int
}

func (t Transfer) String() string {
	return fmt.Sprintf("transfer %v from %v to %v", t.Amount.Dec(), t.From, t.To)
}

// Apply implements Op.
func (t Transfer) Apply(st *state.State) error {
	from, err := st.GetAccount(t.From, state.FailOnMissing)
	if err != nil {
		return err
	}
	if from.Balance, err = sub(&from.Balance, &t.Amount); err != nil {
		return err
	}
	if err := st.UpdateAccount(from); err != nil {
		return err
	}
	// read after the sender is written, to do right with self transfer
	to, err := st.GetAccount(t.To, state.EmptyOnMissing)
	if err != nil {
		return err
	}
	if to.Balance, err = add(&to.Balance, &t.Amount); err != nil {
		return err
	}
	return st.UpdateAccount(to)
}

// TokenTransfer moves fungible token balance between associated accounts.
type TokenTransfer struct {
	Token, From, To thor.Address
	Amount          uint256.Int
}

func (t TokenTransfer) String() string {
	return fmt.Sprintf("transfer %v of token %v from %v to %v", t.Amount.Dec(), t.Token, t.From, t.To)
}

// Apply implements Op.
func (t TokenTransfer) Apply(st *state.State) error {
	token, err := usableToken(st, t.Token)
	if err != nil {
		return err
	}
	if token.Type != ledger.FungibleCommon {
		return errors.Wrapf(ErrWrongTokenType, "%v", token.Type)
	}

	from, err := usableRelationship(st, t.From, t.Token)
	if err != nil {
		return err
	}
	if from.Balance, err = sub(&from.Balance, &t.Amount); err != nil {
		return err
	}
	if err := st.UpdateTokenRelationship(from); err != nil {
		return err
	}

	to, err := usableRelationship(st, t.To, t.Token)
	if err != nil {
		return err
	}
	if to.Balance, err = add(&to.Balance, &t.Amount); err != nil {
		return err
	}
	return st.UpdateTokenRelationship(to)
}

// Mint mints fungible tokens, or one serial of a non-fungible token, to the treasury.
type Mint struct {
	Token    thor.Address
	Amount   uint256.Int // fungible only
	Metadata string      // non-fungible only
}

func (m Mint) String() string {
	return fmt.Sprintf("mint %v of token %v", m.Amount.Dec(), m.Token)
}

// Apply implements Op.
func (m Mint) Apply(st *state.State) error {
	token, err := usableToken(st, m.Token)
	if err != nil {
		return err
	}
	treasury, err := st.GetTokenRelationship(token.Treasury, token.Address, state.FailOnMissing)
	if err != nil {
		return err
	}

	amount := m.Amount
	if token.Type == ledger.NonFungibleUnique {
		amount = *uint256.NewInt(1)
		token.LastSerial++
		nft := ledger.UniqueToken{
			Token:    token.Address,
			Serial:   token.LastSerial,
			Owner:    token.Treasury,
			Metadata: m.Metadata,
		}
		if err := st.UpdateUniqueToken(nft); err != nil {
			return err
		}
	}

	if token.TotalSupply, err = add(&token.TotalSupply, &amount); err != nil {
		return err
	}
	if !token.MaxSupply.IsZero() && token.TotalSupply.Gt(&token.MaxSupply) {
		return errors.WithStack(ErrSupplyExceeded)
	}
	if treasury.Balance, err = add(&treasury.Balance, &amount); err != nil {
		return err
	}
	if err := st.UpdateToken(token); err != nil {
		return err
	}
	return st.UpdateTokenRelationship(treasury)
}

// BurnUnique burns one serial of a non-fungible token held by the treasury.
type BurnUnique struct {
	Token  thor.Address
	Serial uint64
}

func (b BurnUnique) String() string {
	return fmt.Sprintf("burn serial %v of token %v", b.Serial, b.Token)
}

// Apply implements Op.
func (b BurnUnique) Apply(st *state.State) error {
	token, err := usableToken(st, b.Token)
	if err != nil {
		return err
	}
	if token.Type != ledger.NonFungibleUnique {
		return errors.Wrapf(ErrWrongTokenType, "%v", token.Type)
	}
	nft, err := st.GetUniqueToken(b.Token, b.Serial, state.FailOnMissing)
	if err != nil {
		return err
	}
	if nft.Owner != token.Treasury {
		return errors.WithStack(ErrNotTreasuryOwned)
	}
	treasury, err := st.GetTokenRelationship(token.Treasury, token.Address, state.FailOnMissing)
	if err != nil {
		return err
	}
	one := uint256.NewInt(1)
	if token.TotalSupply, err = sub(&token.TotalSupply, one); err != nil {
		return err
	}
	if treasury.Balance, err = sub(&treasury.Balance, one); err != nil {
		return err
	}
	if err := st.DeleteUniqueToken(b.Token, b.Serial); err != nil {
		return err
	}
	if err := st.UpdateToken(token); err != nil {
		return err
	}
	return st.UpdateTokenRelationship(treasury)
}

// Dissociate removes the relationship of an account with a token.
// The token balance must be zero.
type Dissociate struct {
	Account, Token thor.Address
}

func (d Dissociate) String() string {
	return fmt.Sprintf("dissociate %v from token %v", d.Account, d.Token)
}

// Apply implements Op.
func (d Dissociate) Apply(st *state.State) error {
	rel, err := st.GetTokenRelationship(d.Account, d.Token, state.FailOnMissing)
	if err != nil {
		return err
	}
	if !rel.Balance.IsZero() {
		return errors.WithStack(ErrNonZeroBalance)
	}
	return st.DeleteTokenRelationship(d.Account, d.Token)
}

func usableToken(st *state.State, addr thor.Address) (ledger.Token, error) {
	token, err := st.GetToken(addr, state.FailOnMissing)
	if err != nil {
		return ledger.Token{}, err
	}
	if token.Paused || token.Deleted {
		return ledger.Token{}, errors.WithStack(ErrTokenPaused)
	}
	return token, nil
}

func usableRelationship(st *state.State, account, token thor.Address) (ledger.TokenRelationship, error) {
	rel, err := st.GetTokenRelationship(account, token, state.FailOnMissing)
	if err != nil {
		return ledger.TokenRelationship{}, err
	}
	if rel.Frozen {
		return ledger.TokenRelationship{}, errors.WithStack(ErrFrozen)
	}
	return rel, nil
}
