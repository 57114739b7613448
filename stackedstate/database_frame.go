// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"time"

	"github.com/pkg/errors"
)

// DatabaseFrame is the root frame. It answers every lookup by asking the
// database accessors, and never changes.
type DatabaseFrame[K comparable] struct {
	frame[K]
	rev       Revision
	accessors map[Kind]DatabaseAccessor[K]
}

var _ Frame[string] = (*DatabaseFrame[string])(nil)

// NewDatabaseFrame creates a database frame reading at the given revision.
// Each kind must be served by exactly one accessor.
func NewDatabaseFrame[K comparable](rev Revision, accessors ...DatabaseAccessor[K]) (*DatabaseFrame[K], error) {
	if len(accessors) == 0 {
		return nil, errors.Wrap(ErrMisconfigured, "database frame: no accessors")
	}
	byKind := make(map[Kind]DatabaseAccessor[K], len(accessors))
	kinds := make([]Kind, 0, len(accessors))
	for _, acc := range accessors {
		if acc == nil || acc.Kind() == nil {
			return nil, errors.Wrap(ErrMisconfigured, "database frame: nil accessor")
		}
		kind := acc.Kind()
		if _, dup := byKind[kind]; dup {
			return nil, errors.Wrapf(ErrMisconfigured, "database frame: duplicated accessor for kind %v", kind)
		}
		byKind[kind] = acc
		kinds = append(kinds, kind)
	}
	f, err := newFrame[K]("database", nil, kinds, nil)
	if err != nil {
		return nil, err
	}
	return &DatabaseFrame[K]{f, rev, byKind}, nil
}

// Revision returns the revision the frame reads at.
func (f *DatabaseFrame[K]) Revision() Revision { return f.rev }

// GetValue implements Frame.
func (f *DatabaseFrame[K]) GetValue(kind Kind, key K) (any, bool, error) {
	acc, ok := f.accessors[kind]
	if !ok {
		return nil, false, errors.Wrapf(ErrIncorrectType, "kind %v not cached here", kind)
	}

	start := time.Now()
	v, exists, err := acc.Get(key, f.rev)
	metricDatabaseReadDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"kind": kind.Name()})
	if err != nil {
		return nil, false, errors.Wrapf(err, "read %v at %v", kind, f.rev)
	}
	if !exists {
		return nil, false, nil
	}
	if !kind.accepts(v) {
		return nil, false, errors.Wrapf(ErrIncorrectType, "accessor of kind %v returned %T", kind, v)
	}
	return v, true, nil
}

// SetValue implements Frame. It always fails.
func (f *DatabaseFrame[K]) SetValue(Kind, K, any) error {
	return errors.Wrap(ErrReadOnly, "set on database frame")
}

// DeleteValue implements Frame. It always fails.
func (f *DatabaseFrame[K]) DeleteValue(Kind, K) error {
	return errors.Wrap(ErrReadOnly, "delete on database frame")
}

// UpdatesFromDownstream implements Frame. It always fails.
func (f *DatabaseFrame[K]) UpdatesFromDownstream(Frame[K]) error {
	return errors.Wrap(ErrReadOnly, "commit into database frame")
}

// Commit implements Frame. It always fails.
func (f *DatabaseFrame[K]) Commit() error {
	return errors.Wrap(ErrReadOnly, "commit of database frame")
}
