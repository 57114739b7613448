// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineCacheFill(t *testing.T) {
	lc := newLineCache[string]()

	state, v := lc.get("a")
	assert.Equal(t, NotYetFetched, state)
	assert.Nil(t, v)

	require.NoError(t, lc.fill("a", 1, true))
	require.NoError(t, lc.fill("b", nil, false))

	state, v = lc.get("a")
	assert.Equal(t, Present, state)
	assert.Equal(t, 1, v)
	state, _ = lc.get("b")
	assert.Equal(t, Missing, state)

	err := lc.fill("a", 2, true)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Contains(t, err.Error(), "trying to override a lower-level entry")

	require.NoError(t, lc.update("c", 3))
	err = lc.fill("c", 3, true)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Contains(t, err.Error(), "trying to override an updated entry")

	assert.True(t, errors.Is(lc.fill("d", nil, true), ErrIncorrectType))
}

func TestLineCacheUpdate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(lc *lineCache[string])
	}{
		{"not-yet-fetched", func(*lineCache[string]) {}},
		{"present", func(lc *lineCache[string]) { lc.fill("k", 1, true) }},
		{"missing", func(lc *lineCache[string]) { lc.fill("k", nil, false) }},
		{"updated", func(lc *lineCache[string]) { lc.update("k", 1) }},
		{"deleted", func(lc *lineCache[string]) { lc.fill("k", 1, true); lc.delete("k") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := newLineCache[string]()
			tt.setup(lc)
			require.NoError(t, lc.update("k", 2))
			state, v := lc.get("k")
			assert.Equal(t, Updated, state)
			assert.Equal(t, 2, v)
		})
	}

	lc := newLineCache[string]()
	assert.True(t, errors.Is(lc.update("k", nil), ErrIncorrectType))
}

func TestLineCacheAliasingGuard(t *testing.T) {
	type entity struct{ n int }

	lc := newLineCache[string]()
	cached := &entity{1}
	require.NoError(t, lc.fill("k", cached, true))

	cached.n = 2
	err := lc.update("k", cached)
	assert.True(t, errors.Is(err, ErrIllegalTransition))

	require.NoError(t, lc.update("k", &entity{2}))
	state, v := lc.get("k")
	assert.Equal(t, Updated, state)
	assert.Equal(t, &entity{2}, v)

	// plain values never alias
	lc = newLineCache[string]()
	require.NoError(t, lc.fill("k", entity{1}, true))
	require.NoError(t, lc.update("k", entity{1}))
}

func TestLineCacheDelete(t *testing.T) {
	lc := newLineCache[string]()

	err := lc.delete("k")
	assert.True(t, errors.Is(err, ErrIllegalTransition))

	require.NoError(t, lc.fill("gone", nil, false))
	assert.True(t, errors.Is(lc.delete("gone"), ErrIllegalTransition))

	require.NoError(t, lc.fill("k", 1, true))
	require.NoError(t, lc.delete("k"))
	state, _ := lc.get("k")
	assert.Equal(t, Deleted, state)
	assert.True(t, errors.Is(lc.delete("k"), ErrIllegalTransition))

	// deleting an updated line records a deletion too
	require.NoError(t, lc.update("u", 1))
	require.NoError(t, lc.delete("u"))
	state, _ = lc.get("u")
	assert.Equal(t, Deleted, state)
}

func TestLineCacheCoalesce(t *testing.T) {
	parent, child := newLineCache[string](), newLineCache[string]()
	require.NoError(t, parent.fill("a", 1, true))
	require.NoError(t, child.fill("a", 1, true))
	require.NoError(t, child.fill("x", 9, true))
	require.NoError(t, child.update("a", 2))
	require.NoError(t, child.update("b", 3))
	require.NoError(t, child.delete("x"))

	parent.coalesceFrom(child)
	assert.Equal(t, 3, parent.pending())

	state, v := parent.get("a")
	assert.Equal(t, Updated, state)
	assert.Equal(t, 2, v)
	state, _ = parent.get("x")
	assert.Equal(t, Deleted, state)
	// originals are not merged
	_, ok := parent.original["x"]
	assert.False(t, ok)
}

func TestLineCacheInvalid(t *testing.T) {
	lc := newLineCache[string]()
	lc.original["k"] = originalEntry{value: 1, exists: false}
	state, _ := lc.get("k")
	assert.Equal(t, Invalid, state)
	assert.Equal(t, "invalid", state.String())

	lc.current["c"] = currentEntry{value: 1, deleted: true}
	state, _ = lc.get("c")
	assert.Equal(t, Invalid, state)
	assert.True(t, errors.Is(lc.update("c", 2), ErrIllegalTransition))
}
