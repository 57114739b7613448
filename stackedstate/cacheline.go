// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"reflect"

	"github.com/pkg/errors"
)

// LineState describes what a frame knows about one key of one kind.
type LineState int

// Cache line states.
const (
	NotYetFetched LineState = iota // nothing known
	Present                        // fetched from upstream, unmodified
	Updated                        // written in this frame
	Missing                        // fetched from upstream, confirmed absent
	Deleted                        // deleted in this frame
	Invalid                        // contradictory entry
)

func (s LineState) String() string {
	switch s {
	case NotYetFetched:
		return "not-yet-fetched"
	case Present:
		return "present"
	case Updated:
		return "updated"
	case Missing:
		return "missing"
	case Deleted:
		return "deleted"
	default:
		return "invalid"
	}
}

type (
	// originalEntry is a value pulled from upstream. exists is false for a confirmed absence.
	originalEntry struct {
		value  any
		exists bool
	}
	// currentEntry is a value written locally, or a local deletion.
	currentEntry struct {
		value   any
		deleted bool
	}
)

// lineCache tracks the cache lines of one kind in one frame.
type lineCache[K comparable] struct {
	original map[K]originalEntry
	current  map[K]currentEntry
}

func newLineCache[K comparable]() *lineCache[K] {
	return &lineCache[K]{
		original: make(map[K]originalEntry),
		current:  make(map[K]currentEntry),
	}
}

// get classifies the line of the given key.
// The returned value is non-nil only for Present and Updated lines.
func (lc *lineCache[K]) get(key K) (LineState, any) {
	if c, ok := lc.current[key]; ok {
		switch {
		case c.deleted && c.value == nil:
			return Deleted, nil
		case !c.deleted && c.value != nil:
			return Updated, c.value
		default:
			return Invalid, nil
		}
	}
	if o, ok := lc.original[key]; ok {
		switch {
		case !o.exists && o.value == nil:
			return Missing, nil
		case o.exists && o.value != nil:
			return Present, o.value
		default:
			return Invalid, nil
		}
	}
	return NotYetFetched, nil
}

// fill records what upstream has for the key. It's only allowed once per key.
func (lc *lineCache[K]) fill(key K, value any, exists bool) error {
	switch state, _ := lc.get(key); state {
	case NotYetFetched:
	case Updated, Deleted:
		return errors.Wrapf(ErrIllegalTransition, "trying to override an updated entry (%v)", state)
	default:
		return errors.Wrapf(ErrIllegalTransition, "trying to override a lower-level entry (%v)", state)
	}
	if !exists {
		value = nil
	} else if value == nil {
		return errors.Wrap(ErrIncorrectType, "nil value for an existing entry")
	}
	lc.original[key] = originalEntry{value, exists}
	return nil
}

// update records a local write.
func (lc *lineCache[K]) update(key K, value any) error {
	if value == nil {
		return errors.Wrap(ErrIncorrectType, "nil value")
	}
	switch state, cached := lc.get(key); state {
	case Present:
		// the cached value is shared with the frame beneath
		if sameReference(cached, value) {
			return errors.Wrap(ErrIllegalTransition, "trying to update a fetched entry in place")
		}
	case NotYetFetched, Missing, Updated, Deleted:
	default:
		return errors.Wrapf(ErrIllegalTransition, "trying to update an %v entry", state)
	}
	lc.current[key] = currentEntry{value: value}
	return nil
}

// delete records a local deletion.
func (lc *lineCache[K]) delete(key K) error {
	switch state, _ := lc.get(key); state {
	case Present, Updated:
		lc.current[key] = currentEntry{deleted: true}
		return nil
	case NotYetFetched:
		return errors.Wrap(ErrIllegalTransition, "trying to delete an entry that hasn't been fetched")
	case Missing, Deleted:
		return errors.Wrapf(ErrIllegalTransition, "trying to delete an entry that is already gone (%v)", state)
	default:
		return errors.Wrapf(ErrIllegalTransition, "trying to delete an %v entry", state)
	}
}

// coalesceFrom merges the local writes of child into lc.
// Originals are left alone, lc already has or can derive them.
func (lc *lineCache[K]) coalesceFrom(child *lineCache[K]) {
	for key, c := range child.current {
		lc.current[key] = c
	}
}

// pending returns the count of local writes.
func (lc *lineCache[K]) pending() int {
	return len(lc.current)
}

// sameReference reports whether a and b refer to the same underlying object.
// Plain values never alias, so they are never the same reference.
func sameReference(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		p := va.Pointer()
		return p != 0 && p == vb.Pointer()
	}
	return false
}
