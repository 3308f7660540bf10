package sync

import (
	base "sync"
)

const (
	hashEntriesPerLock = 200
)

// StripedLock consistently maps a key space, such as account addresses, onto
// a fixed set of locks. Unrelated keys rarely contend while memory stays
// bounded regardless of how many keys are seen.
type StripedLock struct {
	locks    []base.RWMutex
	hashRing *ring
}

// NewStripedLock returns a new StripedLock with a static number of stripes.
func NewStripedLock(stripes uint) *StripedLock {
	if stripes == 0 {
		stripes = 1
	}

	return &StripedLock{
		locks:    make([]base.RWMutex, stripes),
		hashRing: newRing(stripes, hashEntriesPerLock),
	}
}

// Get gets the lock for a key
func (l *StripedLock) Get(key []byte) *base.RWMutex {
	return &l.locks[l.hashRing.shard(key)]
}
