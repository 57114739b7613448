// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/stackedstate"
	"github.com/vechain/stackedstate/thor"
)

// OnMissing tells getters what to do when the entity doesn't exist.
type OnMissing int

const (
	// FailOnMissing makes getters return *MissingError.
	FailOnMissing OnMissing = iota
	// EmptyOnMissing makes getters return the empty entity.
	EmptyOnMissing
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// MissingError is returned by getters called with FailOnMissing for an entity
// that doesn't exist. It fails the transaction, not the state.
type MissingError struct {
	Kind string
	Key  ledger.Key
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("state: %v %v not found", e.Kind, e.Key)
}

// State is the ledger state with nestable scopes of changes.
// It's not safe for concurrent use, callers create their own State with Stater.
type State struct {
	stack *stackedstate.Stack[ledger.Key]
}

// New creates a state reading the ledger at rev through the given accessors.
func New(rev stackedstate.Revision, accessors ...stackedstate.DatabaseAccessor[ledger.Key]) (*State, error) {
	stack, err := stackedstate.NewStack(rev, accessors...)
	if err != nil {
		return nil, &Error{err}
	}
	for _, kind := range ledger.Kinds() {
		found := false
		for _, k := range stack.Kinds() {
			if k == kind {
				found = true
				break
			}
		}
		if !found {
			return nil, &Error{errors.Wrapf(stackedstate.ErrMisconfigured, "no accessor for kind %v", kind)}
		}
	}
	return &State{stack}, nil
}

// Revision returns the revision the state reads the ledger at.
func (s *State) Revision() stackedstate.Revision {
	return s.stack.Revision()
}

func get[V any](s *State, kind *stackedstate.TypedKind[V], key ledger.Key, onMissing OnMissing, empty func() V) (V, error) {
	var zero V
	acc, err := stackedstate.Access(s.stack.Top(), kind)
	if err != nil {
		return zero, &Error{err}
	}
	v, ok, err := acc.Get(key)
	if err != nil {
		return zero, &Error{err}
	}
	if ok {
		return v, nil
	}
	if onMissing == EmptyOnMissing {
		return empty(), nil
	}
	return zero, &MissingError{kind.Name(), key}
}

func set[V any](s *State, kind *stackedstate.TypedKind[V], key ledger.Key, v V) error {
	acc, err := stackedstate.Access(s.stack.Top(), kind)
	if err != nil {
		return &Error{err}
	}
	if err := acc.Set(key, v); err != nil {
		return &Error{err}
	}
	metricEntityCounter().AddWithLabel(1, map[string]string{"type": "write", "target": kind.Name()})
	return nil
}

func del[V any](s *State, kind *stackedstate.TypedKind[V], key ledger.Key) error {
	acc, err := stackedstate.Access(s.stack.Top(), kind)
	if err != nil {
		return &Error{err}
	}
	if err := acc.Delete(key); err != nil {
		return &Error{err}
	}
	metricEntityCounter().AddWithLabel(1, map[string]string{"type": "delete", "target": kind.Name()})
	return nil
}

// GetAccount returns the account at addr.
func (s *State) GetAccount(addr thor.Address, onMissing OnMissing) (ledger.Account, error) {
	return get(s, ledger.AccountKind, ledger.AccountKey(addr), onMissing, func() ledger.Account {
		return ledger.EmptyAccount(addr)
	})
}

// GetToken returns the token at addr.
func (s *State) GetToken(addr thor.Address, onMissing OnMissing) (ledger.Token, error) {
	return get(s, ledger.TokenKind, ledger.TokenKey(addr), onMissing, func() ledger.Token {
		return ledger.EmptyToken(addr)
	})
}

// GetTokenRelationship returns the relationship between account and token.
func (s *State) GetTokenRelationship(account, token thor.Address, onMissing OnMissing) (ledger.TokenRelationship, error) {
	return get(s, ledger.TokenRelationshipKind, ledger.RelationshipKey(account, token), onMissing, func() ledger.TokenRelationship {
		return ledger.EmptyTokenRelationship(account, token)
	})
}

// GetUniqueToken returns the given serial of a non-fungible token.
func (s *State) GetUniqueToken(token thor.Address, serial uint64, onMissing OnMissing) (ledger.UniqueToken, error) {
	return get(s, ledger.UniqueTokenKind, ledger.UniqueTokenKey(token, serial), onMissing, func() ledger.UniqueToken {
		return ledger.EmptyUniqueToken(token, serial)
	})
}

// UpdateAccount writes the account into the current scope.
func (s *State) UpdateAccount(acc ledger.Account) error {
	return set(s, ledger.AccountKind, acc.Key(), acc)
}

// UpdateToken writes the token into the current scope.
func (s *State) UpdateToken(token ledger.Token) error {
	return set(s, ledger.TokenKind, token.Key(), token)
}

// UpdateTokenRelationship writes the relationship into the current scope.
func (s *State) UpdateTokenRelationship(rel ledger.TokenRelationship) error {
	return set(s, ledger.TokenRelationshipKind, rel.Key(), rel)
}

// UpdateUniqueToken writes the unique token into the current scope.
func (s *State) UpdateUniqueToken(nft ledger.UniqueToken) error {
	return set(s, ledger.UniqueTokenKind, nft.Key(), nft)
}

// DeleteTokenRelationship dissociates account from token in the current scope.
// The relationship must be read before.
func (s *State) DeleteTokenRelationship(account, token thor.Address) error {
	return del(s, ledger.TokenRelationshipKind, ledger.RelationshipKey(account, token))
}

// DeleteUniqueToken burns the serial of token in the current scope.
// The unique token must be read before.
func (s *State) DeleteUniqueToken(token thor.Address, serial uint64) error {
	return del(s, ledger.UniqueTokenKind, ledger.UniqueTokenKey(token, serial))
}

// Wrap opens a new scope, and returns its height. The height can be passed
// to RevertTo to drop the scope and everything opened after it.
func (s *State) Wrap() int {
	s.stack.Push()
	h := s.stack.Height()
	metricScopeDepth().Observe(int64(h))
	return h
}

// Height returns the count of open scopes.
func (s *State) Height() int {
	return s.stack.Height()
}

// Commit folds the changes of the current scope into the scope beneath it.
// The outermost scope never commits, since beneath it is the read-only base.
func (s *State) Commit() error {
	if s.stack.Height() <= 1 {
		return nil
	}
	if err := s.stack.Top().Commit(); err != nil {
		return &Error{err}
	}
	return nil
}

// Pop drops the current scope with its changes.
func (s *State) Pop() error {
	if err := s.stack.Pop(); err != nil {
		return &Error{err}
	}
	return nil
}

// RevertTo drops scopes until the height is below the given one.
// Reverting to height h drops the scope Wrap returned h for.
func (s *State) RevertTo(height int) error {
	if height < 1 {
		return &Error{errors.Errorf("invalid scope height %v", height)}
	}
	if err := s.stack.PopTo(height - 1); err != nil {
		return &Error{err}
	}
	return nil
}

// Reset drops all scopes. What has been read from the ledger stays cached.
func (s *State) Reset() {
	s.stack.ResetToBase()
}

// CacheStats returns hits and misses of reads answered by the scopes and the base.
func (s *State) CacheStats() (hit, miss int64) {
	return s.stack.CacheStats()
}
