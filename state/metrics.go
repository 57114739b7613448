// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/stackedstate/metrics"

var (
	metricEntityCounter = metrics.LazyLoadCounterVec("entity_state_count", []string{"type", "target"})
	metricScopeDepth    = metrics.LazyLoadHistogram("scope_depth", []int64{1, 2, 4, 8, 16, 32, 64})
)
