package repository

import "sync/atomic"

// Sequence hands out ticket identifiers. Each repository owner holds its own.
type Sequence struct {
	last atomic.Int64
}

// NewSequence starts a sequence whose first Next returns start+1.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start)
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Reset sets the last issued identifier.
func (s *Sequence) Reset(last int64) {
	s.last.Store(last)
}

// Current returns the last issued identifier.
func (s *Sequence) Current() int64 {
	return s.last.Load()
}
