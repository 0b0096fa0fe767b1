// Package memtable implements the in-memory ordered table behind SkipKV: a
// skip list whose nodes are addressed by index inside a single arena.
package memtable

import (
	"cmp"
	"iter"
)

// Entry is a key-value pair as returned by ordered scans.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Memtable defines the interface for an in-memory table of unique keys.
type Memtable[K cmp.Ordered, V any] interface {
	Insert(key K, value V) bool
	Delete(key K) bool
	Get(key K) (V, bool)
	Contains(key K) bool
	All() iter.Seq2[K, V]
	Entries() []Entry[K, V]
	Range(start, end K) []Entry[K, V]
	Levels() [][]K
	Size() int
	Level() int
	MaxLevel() int
	Clear()
}

var _ Memtable[int, string] = (*SkipList[int, string])(nil)

// NewMemtable creates an empty skip-list backed Memtable.
func NewMemtable[K cmp.Ordered, V any](maxLevel int, seed uint64) Memtable[K, V] {
	return NewSkipList[K, V](maxLevel, seed)
}
