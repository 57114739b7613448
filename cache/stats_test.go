// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsCounts(t *testing.T) {
	var cs Stats
	assert.Equal(t, float64(0), cs.Rate())
	assert.False(t, cs.RateChanged(), "nothing looked up yet")

	cs.Hit()
	cs.Miss()
	hit, miss := cs.Counts()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
	assert.Equal(t, 0.5, cs.Rate())

	assert.True(t, cs.RateChanged())
	assert.False(t, cs.RateChanged())

	cs.Hit()
	assert.Equal(t, int64(3), cs.Hit())
	assert.True(t, cs.RateChanged())
	assert.Equal(t, 0.75, cs.Rate())
}

func TestStatsConcurrent(t *testing.T) {
	var (
		cs Stats
		wg sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cs.Hit()
				cs.Miss()
			}
		}()
	}
	wg.Wait()

	hit, miss := cs.Counts()
	assert.Equal(t, int64(800), hit)
	assert.Equal(t, int64(800), miss)
}

func TestHitRate(t *testing.T) {
	assert.Equal(t, float64(0), HitRate(0, 0))
	assert.Equal(t, 0.75, HitRate(3, 1))
}
