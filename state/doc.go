// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state is the ledger state seen by transaction execution.
// It follows the flow as bellow:
//
//	      o
//	      |
//	[ scope frames ]   <- Wrap / Commit / Pop / RevertTo
//	      |
//	[ read-only base ] <- Reset drops scopes, keeps it
//	      |
//	[ ledgerdb at revision ]
//
// Reads go down until some frame knows the entity. Writes only touch the
// top scope, and reach the scope beneath it on Commit.
package state
