// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedstate maintains typed caches of ledger entities in a stack of frames.
// Lookups that miss a frame fall through to the frame beneath it, and every frame
// memoizes what it learned from below:
//
//	[ read-write frame ]   <- Push / Pop, Commit folds into the frame below
//	         |
//	[ read-write frame ]
//	         |
//	[ read-only frame  ]   \
//	         |              > the base, survives ResetToBase
//	[ database frame   ]   /  -> DatabaseAccessor -> backing store
//
// A Stack is owned by exactly one caller. Concurrent simulations must each build
// their own Stack.
package stackedstate
