// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import (
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/cache"
	"github.com/vechain/stackedstate/log"
)

var logger = log.WithContext("pkg", "stackedstate")

// Stack maintains frames in a stack.
// The base, a read-only frame over the database frame, is always at the bottom.
// Read-write frames are pushed on top of it.
//
// A Stack is not safe for concurrent use. Every caller owns its own Stack.
type Stack[K comparable] struct {
	rev       Revision
	accessors []DatabaseAccessor[K]
	base      *ReadOnlyFrame[K]
	top       Frame[K]
	stats     cache.Stats
}

// NewStack creates a stack whose database frame reads through the given accessors at rev.
func NewStack[K comparable](rev Revision, accessors ...DatabaseAccessor[K]) (*Stack[K], error) {
	s := &Stack[K]{
		rev:       rev,
		accessors: append([]DatabaseAccessor[K](nil), accessors...),
	}
	if err := s.RebuildBase(); err != nil {
		return nil, err
	}
	return s, nil
}

// RebuildBase replaces the base with a fresh one, dropping all pushed frames and
// everything the base has memoized.
func (s *Stack[K]) RebuildBase() error {
	db, err := NewDatabaseFrame(s.rev, s.accessors...)
	if err != nil {
		return err
	}
	base, err := newReadOnlyFrame[K](db, &s.stats)
	if err != nil {
		return err
	}
	s.dropAbove(nil)
	s.base, s.top = base, base
	metricBaseRebuilds().Add(1)
	logger.Debug("stack base rebuilt", "revision", s.rev, "kinds", len(s.base.kinds))
	return nil
}

// Revision returns the revision the stack reads the database at.
func (s *Stack[K]) Revision() Revision { return s.rev }

// Kinds returns the kinds cached by the stack.
func (s *Stack[K]) Kinds() []Kind { return s.base.Kinds() }

// Base returns the base frame.
func (s *Stack[K]) Base() Frame[K] { return s.base }

// Top returns the frame at stack top.
func (s *Stack[K]) Top() Frame[K] { return s.top }

// Push pushes a new read-write frame on stack, and returns it.
// The previous top is frozen until the new frame is popped.
func (s *Stack[K]) Push() *ReadWriteFrame[K] {
	f, err := newReadWriteFrame(s.top, &s.stats)
	if err != nil {
		// top is never nil and caches at least one kind
		panic(err)
	}
	setStatus(s.top, frameFrozen)
	s.top = f
	return f
}

// Pop drops the frame at stack top, discarding its pending writes.
func (s *Stack[K]) Pop() error {
	if s.top == Frame[K](s.base) {
		return errors.WithStack(ErrEmptyStack)
	}
	setStatus(s.top, frameDropped)
	s.top = s.top.Upstream()
	setStatus(s.top, frameActive)
	return nil
}

// PopTo pops frames until the stack height reaches height.
func (s *Stack[K]) PopTo(height int) error {
	if height < 0 {
		return errors.Wrapf(ErrEmptyStack, "pop to height %v", height)
	}
	if h := s.Height(); height > h {
		return errors.Errorf("pop to height %v above stack height %v", height, h)
	}
	for s.Height() > height {
		if err := s.Pop(); err != nil {
			return err
		}
	}
	return nil
}

// ResetToBase drops all pushed frames at once.
// What the base has memoized is kept.
func (s *Stack[K]) ResetToBase() {
	if s.top != Frame[K](s.base) {
		logger.Trace("stack reset to base", "height", s.Height())
	}
	s.dropAbove(s.base)
	s.top = s.base
}

// dropAbove drops every pushed frame from top down to, not including, bottom.
func (s *Stack[K]) dropAbove(bottom Frame[K]) {
	for f := s.top; f != nil && f != bottom; f = f.Upstream() {
		setStatus(f, frameDropped)
	}
}

func setStatus[K comparable](f Frame[K], status frameStatus) {
	if rw, ok := f.(*ReadWriteFrame[K]); ok {
		rw.status = status
	}
}

// Height returns the count of frames pushed on top of the base.
func (s *Stack[K]) Height() int {
	return s.top.Height() - s.base.Height()
}

// CachedFramesDepth returns the count of all frames, including the base.
func (s *Stack[K]) CachedFramesDepth() int {
	return s.top.Height()
}

// CacheStats returns hits and misses of lookups answered by the caching frames.
func (s *Stack[K]) CacheStats() (hit, miss int64) {
	hit, miss = s.stats.Counts()
	return
}
