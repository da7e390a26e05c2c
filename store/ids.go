// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

// Allocator hands out increasing ids starting at 1. Ids are never reused,
// even after the entity they named is deleted.
type Allocator struct {
	next int
}

func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the next unused id
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// peek returns the id the next call to Next will return
func (a *Allocator) peek() int {
	return a.next
}
