// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

// Reader reads values of type V from the backing store.
// It must be free of side effects: reading the same key at the same revision
// always gives the same answer.
type Reader[K comparable, V any] interface {
	// Get returns the value at the given revision.
	// The second return value is false if the value doesn't exist.
	Get(key K, rev Revision) (V, bool, error)
}

// ReaderFunc implements Reader with a function.
type ReaderFunc[K comparable, V any] func(key K, rev Revision) (V, bool, error)

// Get implements Reader.
func (f ReaderFunc[K, V]) Get(key K, rev Revision) (V, bool, error) { return f(key, rev) }

// DatabaseAccessor is a Reader bound to the kind it serves.
type DatabaseAccessor[K comparable] interface {
	Kind() Kind
	Get(key K, rev Revision) (any, bool, error)
}

// Bind binds a reader to the kind of values it reads.
func Bind[K comparable, V any](kind *TypedKind[V], r Reader[K, V]) DatabaseAccessor[K] {
	return &boundReader[K, V]{kind, r}
}

type boundReader[K comparable, V any] struct {
	kind   *TypedKind[V]
	reader Reader[K, V]
}

func (b *boundReader[K, V]) Kind() Kind { return b.kind }

func (b *boundReader[K, V]) Get(key K, rev Revision) (any, bool, error) {
	v, ok, err := b.reader.Get(key, rev)
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}
