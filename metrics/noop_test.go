// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	require.IsType(t, &noopMetrics{}, metrics)

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	lookups := CounterVec("noop_frame_lookups", []string{"kind", "event"})
	depth := Histogram("noop_scope_depth", []int64{1, 2, 4})
	cached := GaugeVec("noop_cached_lines", []string{"kind"})
	for depthValue := 0; depthValue < 8; depthValue++ {
		lookups.AddWithLabel(1, map[string]string{"kind": "account", "event": "hit"})
		depth.Observe(int64(depthValue))
		cached.SetWithLabel(int64(depthValue), map[string]string{"kind": "token"})
	}
	Counter("noop_writes").Add(3)

	// labels are not validated by the noop meters
	HistogramVec("noop_read_micros", []string{"kind"}, nil).
		ObserveWithLabels(10, map[string]string{"unknown": "label"})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLazyLoadNoop(t *testing.T) {
	calls := 0
	meter := LazyLoad(func() CountMeter {
		calls++
		return Counter("noop_lazy")
	})
	assert.Equal(t, 0, calls)

	meter().Add(1)
	meter().Add(1)
	assert.Equal(t, 1, calls)
	assert.Same(t, meter(), meter())
}
