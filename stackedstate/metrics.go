// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import "github.com/vechain/stackedstate/metrics"

var (
	metricFrameReads           = metrics.LazyLoadCounterVec("frame_read_count", []string{"frame", "kind", "result"})
	metricFrameCommits         = metrics.LazyLoadCounter("frame_commit_count")
	metricBaseRebuilds         = metrics.LazyLoadCounter("stack_base_rebuild_count")
	metricDatabaseReadDuration = metrics.LazyLoadHistogramVec("database_read_duration_us", []string{"kind"}, metrics.BucketReadMicros)
)
