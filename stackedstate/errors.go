// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import "github.com/pkg/errors"

// Errors returned by frames and stacks. They are usage or configuration faults of
// the caller and should never be retried. Use errors.Is to test for them.
var (
	ErrIncorrectType     = errors.New("incorrect type")
	ErrIllegalTransition = errors.New("illegal cache line transition")
	ErrReadOnly          = errors.New("unsupported on read-only frame")
	ErrEmptyStack        = errors.New("stack is already at base")
	ErrMisconfigured     = errors.New("misconfigured")
)
