// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stackedstate/metrics"
)

// counterValue returns the value of the named counter with the given labels, 0 if absent.
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := len(m.GetLabel()) == len(labels)
			for _, l := range m.GetLabel() {
				match = match && labels[l.GetName()] == l.GetValue()
			}
			if !match {
				continue
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

// Runs before the external tests of the package, so the meters are loaded
// after prometheus is initialized.
func TestFrameMeters(t *testing.T) {
	metrics.InitializePrometheusMetrics()

	kind := NewKind[string]("metered")
	r := ReaderFunc[string, string](func(key string, _ Revision) (string, bool, error) {
		return "v", key == "k", nil
	})
	commits := counterValue(t, "stackedstate_frame_commit_count", nil)
	rebuilds := counterValue(t, "stackedstate_stack_base_rebuild_count", nil)

	s, err := NewStack(Latest(), Bind[string](kind, r))
	require.NoError(t, err)
	s.Push()
	acc, err := Access(s.Top(), kind)
	require.NoError(t, err)
	for _, key := range []string{"k", "k", "absent"} {
		_, _, err := acc.Get(key)
		require.NoError(t, err)
	}

	reads := func(frame, result string) float64 {
		return counterValue(t, "stackedstate_frame_read_count", map[string]string{"frame": frame, "kind": "metered", "result": result})
	}
	assert.Equal(t, float64(2), reads("readwrite", "miss"))
	assert.Equal(t, float64(1), reads("readwrite", "hit"))
	assert.Equal(t, float64(2), reads("readonly", "miss"))
	assert.Equal(t, float64(0), reads("readonly", "hit"))
	assert.Equal(t, float64(2), counterValue(t, "stackedstate_database_read_duration_us", map[string]string{"kind": "metered"}))

	top := s.Push()
	require.NoError(t, top.SetValue(kind, "k", "w"))
	require.NoError(t, top.Commit())
	assert.Equal(t, commits+1, counterValue(t, "stackedstate_frame_commit_count", nil))

	require.NoError(t, s.RebuildBase())
	assert.Equal(t, rebuilds+2, counterValue(t, "stackedstate_stack_base_rebuild_count", nil))
}
