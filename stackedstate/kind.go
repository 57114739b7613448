// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import "github.com/pkg/errors"

// Kind tags one kind of value cached by frames.
// It's implemented only by *TypedKind.
type Kind interface {
	Name() string
	accepts(v any) bool
}

// TypedKind is the Kind of values of type V.
// Kinds are compared by identity, so two kinds may share the same V.
type TypedKind[V any] struct {
	name string
}

// NewKind creates a kind for values of type V.
func NewKind[V any](name string) *TypedKind[V] {
	return &TypedKind[V]{name}
}

// Name returns the name of the kind.
func (k *TypedKind[V]) Name() string { return k.name }

func (k *TypedKind[V]) String() string { return k.name }

func (k *TypedKind[V]) accepts(v any) bool {
	_, ok := v.(V)
	return ok
}

// Accessor is a typed handle to the cache of one kind within a frame.
type Accessor[K comparable, V any] struct {
	frame Frame[K]
	kind  *TypedKind[V]
}

// Access returns the accessor of kind in frame f.
// ErrIncorrectType is returned if f doesn't cache the kind.
func Access[K comparable, V any](f Frame[K], kind *TypedKind[V]) (*Accessor[K, V], error) {
	if kind == nil || !f.Caches(kind) {
		return nil, errors.Wrapf(ErrIncorrectType, "kind %v not cached here", kind)
	}
	return &Accessor[K, V]{f, kind}, nil
}

// Kind returns the kind served by the accessor.
func (a *Accessor[K, V]) Kind() *TypedKind[V] { return a.kind }

// Frame returns the frame the accessor reads and writes.
func (a *Accessor[K, V]) Frame() Frame[K] { return a.frame }

// Get returns the value for the given key.
// The second return value is false if the value doesn't exist.
func (a *Accessor[K, V]) Get(key K) (V, bool, error) {
	var zero V
	raw, ok, err := a.frame.GetValue(a.kind, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false, errors.Wrapf(ErrIncorrectType, "kind %v holds %T", a.kind, raw)
	}
	return v, true, nil
}

// Set sets the value for the given key.
func (a *Accessor[K, V]) Set(key K, value V) error {
	return a.frame.SetValue(a.kind, key, value)
}

// Delete deletes the value for the given key.
func (a *Accessor[K, V]) Delete(key K) error {
	return a.frame.DeleteValue(a.kind, key)
}
