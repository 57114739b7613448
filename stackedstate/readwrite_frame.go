// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/cache"
)

// ReadWriteFrame memoizes reads of its upstream frame and keeps local writes
// until they are committed into upstream or the frame is dropped.
//
// Within a Stack only the top frame takes writes. A frame with another frame
// pushed on it is frozen until that frame is popped, and a popped frame is dropped
// for good.
type ReadWriteFrame[K comparable] struct {
	frame[K]
	status frameStatus
}

type frameStatus int

const (
	frameActive frameStatus = iota
	frameFrozen
	frameDropped
)

func (s frameStatus) String() string {
	switch s {
	case frameActive:
		return "active"
	case frameFrozen:
		return "frozen"
	default:
		return "dropped"
	}
}

var _ Frame[string] = (*ReadWriteFrame[string])(nil)

// NewReadWriteFrame creates a read-write frame on top of upstream.
func NewReadWriteFrame[K comparable](upstream Frame[K]) (*ReadWriteFrame[K], error) {
	return newReadWriteFrame(upstream, nil)
}

func newReadWriteFrame[K comparable](upstream Frame[K], stats *cache.Stats) (*ReadWriteFrame[K], error) {
	if upstream == nil {
		return nil, errors.Wrap(ErrMisconfigured, "read-write frame: no upstream")
	}
	f, err := newFrame("readwrite", upstream, upstream.Kinds(), stats)
	if err != nil {
		return nil, err
	}
	return &ReadWriteFrame[K]{frame: f}, nil
}

// GetValue implements Frame.
func (f *ReadWriteFrame[K]) GetValue(kind Kind, key K) (any, bool, error) {
	return f.readThrough(kind, key)
}

// SetValue implements Frame.
func (f *ReadWriteFrame[K]) SetValue(kind Kind, key K, value any) error {
	if err := f.writable("set"); err != nil {
		return err
	}
	lc, err := f.linesFor(kind, value)
	if err != nil {
		return err
	}
	return errors.WithMessagef(lc.update(key, value), "set %v %v", kind, key)
}

// DeleteValue implements Frame.
func (f *ReadWriteFrame[K]) DeleteValue(kind Kind, key K) error {
	if err := f.writable("delete"); err != nil {
		return err
	}
	lc, err := f.lines(kind)
	if err != nil {
		return err
	}
	return errors.WithMessagef(lc.delete(key), "delete %v %v", kind, key)
}

// UpdatesFromDownstream implements Frame.
// A frozen frame still takes the writes of its immediate child.
func (f *ReadWriteFrame[K]) UpdatesFromDownstream(child Frame[K]) error {
	if f.status == frameDropped {
		return f.writable("absorb")
	}
	if rw, ok := child.(*ReadWriteFrame[K]); ok && rw.status == frameDropped {
		return rw.writable("commit")
	}
	return f.coalesce(f, child)
}

// Commit implements Frame.
func (f *ReadWriteFrame[K]) Commit() error {
	if err := f.writable("commit"); err != nil {
		return err
	}
	return f.commitTo(f)
}

func (f *ReadWriteFrame[K]) writable(op string) error {
	if f.status != frameActive {
		return errors.Wrapf(ErrReadOnly, "%v on %v frame at height %v", op, f.status, f.height)
	}
	return nil
}
