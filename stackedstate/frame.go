// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/cache"
)

// Frame is one level of a stack of caches.
// Each frame caches a fixed set of kinds and has zero or one upstream frame.
type Frame[K comparable] interface {
	// Upstream returns the frame beneath, or nil for the root frame.
	Upstream() Frame[K]
	// Height returns 1 plus the height of the upstream frame, or 1 for the root frame.
	Height() int
	// Kinds returns the kinds cached by the frame.
	Kinds() []Kind
	// Caches returns whether the frame caches the kind.
	Caches(kind Kind) bool

	// GetValue returns the value of kind for the given key.
	// The second return value is false if the value doesn't exist.
	GetValue(kind Kind, key K) (any, bool, error)
	// SetValue sets the value of kind for the given key.
	SetValue(kind Kind, key K, value any) error
	// DeleteValue deletes the value of kind for the given key.
	DeleteValue(kind Kind, key K) error

	// UpdatesFromDownstream absorbs the pending writes of a child frame.
	UpdatesFromDownstream(child Frame[K]) error
	// Commit folds pending writes into the upstream frame.
	Commit() error

	lines(kind Kind) (*lineCache[K], error)
}

// frame implements the parts shared by all kinds of frames.
type frame[K comparable] struct {
	name     string
	upstream Frame[K]
	height   int
	kinds    []Kind
	caches   map[Kind]*lineCache[K]
	stats    *cache.Stats
}

func newFrame[K comparable](name string, upstream Frame[K], kinds []Kind, stats *cache.Stats) (frame[K], error) {
	if len(kinds) == 0 {
		return frame[K]{}, errors.Wrapf(ErrMisconfigured, "%v frame: no kinds", name)
	}
	f := frame[K]{
		name:     name,
		upstream: upstream,
		height:   1,
		caches:   make(map[Kind]*lineCache[K], len(kinds)),
		stats:    stats,
	}
	if upstream != nil {
		f.height = upstream.Height() + 1
	}
	for _, kind := range kinds {
		if kind == nil {
			return frame[K]{}, errors.Wrapf(ErrMisconfigured, "%v frame: nil kind", name)
		}
		if _, ok := f.caches[kind]; ok {
			continue
		}
		f.caches[kind] = newLineCache[K]()
		f.kinds = append(f.kinds, kind)
	}
	return f, nil
}

func (f *frame[K]) Upstream() Frame[K] { return f.upstream }

func (f *frame[K]) Height() int { return f.height }

func (f *frame[K]) Kinds() []Kind {
	return append([]Kind(nil), f.kinds...)
}

func (f *frame[K]) Caches(kind Kind) bool {
	_, ok := f.caches[kind]
	return ok
}

func (f *frame[K]) lines(kind Kind) (*lineCache[K], error) {
	if lc, ok := f.caches[kind]; ok {
		return lc, nil
	}
	return nil, errors.Wrapf(ErrIncorrectType, "kind %v not cached here", kind)
}

// linesFor returns the cache lines of kind, after checking value belongs to kind.
func (f *frame[K]) linesFor(kind Kind, value any) (*lineCache[K], error) {
	lc, err := f.lines(kind)
	if err != nil {
		return nil, err
	}
	if !kind.accepts(value) {
		return nil, errors.Wrapf(ErrIncorrectType, "kind %v doesn't accept %T", kind, value)
	}
	return lc, nil
}

// readThrough answers from the local cache lines, or fetches from upstream and
// remembers what upstream said.
func (f *frame[K]) readThrough(kind Kind, key K) (any, bool, error) {
	lc, err := f.lines(kind)
	if err != nil {
		return nil, false, err
	}
	state, v := lc.get(key)
	switch state {
	case NotYetFetched:
		f.record(kind, false)
		v, exists, err := f.upstream.GetValue(kind, key)
		if err != nil {
			return nil, false, err
		}
		if err := lc.fill(key, v, exists); err != nil {
			return nil, false, err
		}
		return v, exists, nil
	case Present, Updated:
		f.record(kind, true)
		return v, true, nil
	case Missing, Deleted:
		f.record(kind, true)
		return nil, false, nil
	}
	panic(fmt.Errorf("%v frame: invalid cache line for %v %v", f.name, kind, key))
}

func (f *frame[K]) record(kind Kind, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
		if f.stats != nil {
			f.stats.Hit()
		}
	} else if f.stats != nil {
		f.stats.Miss()
	}
	metricFrameReads().AddWithLabel(1, map[string]string{"frame": f.name, "kind": kind.Name(), "result": result})
}

// commitTo hands self to the upstream frame. self is the frame embedding f.
func (f *frame[K]) commitTo(self Frame[K]) error {
	if f.upstream == nil {
		return errors.Wrapf(ErrReadOnly, "%v frame: nothing to commit into", f.name)
	}
	if err := f.upstream.UpdatesFromDownstream(self); err != nil {
		return err
	}
	metricFrameCommits().Add(1)
	logger.Trace("frame committed", "frame", f.name, "height", f.height)
	return nil
}

// coalesce merges the pending writes of child into f, for every kind both cache.
func (f *frame[K]) coalesce(self, child Frame[K]) error {
	if child == nil || child.Upstream() != self {
		return errors.Wrapf(ErrIllegalTransition, "%v frame: updates must come from an immediate child", f.name)
	}
	for _, kind := range f.kinds {
		if !child.Caches(kind) {
			continue
		}
		from, err := child.lines(kind)
		if err != nil {
			return err
		}
		f.caches[kind].coalesceFrom(from)
	}
	return nil
}

// Pending returns the count of local writes of kind held by frame f.
func Pending[K comparable](f Frame[K], kind Kind) int {
	lc, err := f.lines(kind)
	if err != nil {
		return 0
	}
	return lc.pending()
}
