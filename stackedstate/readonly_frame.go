// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/cache"
)

// ReadOnlyFrame memoizes reads of its upstream frame and refuses writes.
type ReadOnlyFrame[K comparable] struct {
	frame[K]
}

var _ Frame[string] = (*ReadOnlyFrame[string])(nil)

// NewReadOnlyFrame creates a read-only frame on top of upstream.
func NewReadOnlyFrame[K comparable](upstream Frame[K]) (*ReadOnlyFrame[K], error) {
	return newReadOnlyFrame(upstream, nil)
}

func newReadOnlyFrame[K comparable](upstream Frame[K], stats *cache.Stats) (*ReadOnlyFrame[K], error) {
	if upstream == nil {
		return nil, errors.Wrap(ErrMisconfigured, "read-only frame: no upstream")
	}
	f, err := newFrame("readonly", upstream, upstream.Kinds(), stats)
	if err != nil {
		return nil, err
	}
	return &ReadOnlyFrame[K]{f}, nil
}

// GetValue implements Frame.
func (f *ReadOnlyFrame[K]) GetValue(kind Kind, key K) (any, bool, error) {
	return f.readThrough(kind, key)
}

// SetValue implements Frame. It always fails.
func (f *ReadOnlyFrame[K]) SetValue(Kind, K, any) error {
	return errors.Wrap(ErrReadOnly, "set on read-only frame")
}

// DeleteValue implements Frame. It always fails.
func (f *ReadOnlyFrame[K]) DeleteValue(Kind, K) error {
	return errors.Wrap(ErrReadOnly, "delete on read-only frame")
}

// UpdatesFromDownstream implements Frame. It always fails.
func (f *ReadOnlyFrame[K]) UpdatesFromDownstream(Frame[K]) error {
	return errors.Wrap(ErrReadOnly, "commit into read-only frame")
}

// Commit implements Frame. It always fails.
func (f *ReadOnlyFrame[K]) Commit() error {
	return errors.Wrap(ErrReadOnly, "commit of read-only frame")
}
