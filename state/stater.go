// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/stackedstate"
)

// Stater is the state creator.
type Stater struct {
	accessors []stackedstate.DatabaseAccessor[ledger.Key]
}

// NewStater create a new stater.
func NewStater(accessors ...stackedstate.DatabaseAccessor[ledger.Key]) *Stater {
	return &Stater{accessors}
}

// NewState create a new state object reading the ledger at rev.
func (s *Stater) NewState(rev stackedstate.Revision) (*State, error) {
	return New(rev, s.accessors...)
}
