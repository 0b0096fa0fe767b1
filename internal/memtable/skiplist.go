package memtable

import (
	"cmp"
	"iter"
	"math/rand/v2"
	"time"
)

// nilRef marks the end of a chain at some level.
const nilRef int32 = -1

// header is the arena slot of the sentinel node every search starts from.
const header int32 = 0

// skipListNode is a key-value pair plus one forward link per level it
// participates in. Links are arena indices. Key, value and level are fixed
// once the node is linked in; only next is rewritten.
type skipListNode[K cmp.Ordered, V any] struct {
	key   K
	value V
	next  []int32
}

// SkipList is a probabilistic ordered structure with expected O(log n)
// search, insertion and deletion. Nodes live in an arena slice and refer to
// each other by index; slots freed by Delete are reused by later inserts.
//
// SkipList is not safe for concurrent use.
type SkipList[K cmp.Ordered, V any] struct {
	nodes    []skipListNode[K, V]
	free     []int32
	maxLevel int
	level    int
	size     int
	rng      *rand.Rand

	// update holds the per-level anchors of the last search.
	update []int32
}

// NewSkipList returns an empty SkipList whose nodes never exceed maxLevel.
// A zero seed seeds the level sampler from the clock.
func NewSkipList[K cmp.Ordered, V any](maxLevel int, seed uint64) *SkipList[K, V] {
	if maxLevel < 0 {
		maxLevel = 0
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sl := &SkipList[K, V]{
		maxLevel: maxLevel,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		update:   make([]int32, maxLevel+1),
	}
	sl.nodes = append(sl.nodes, skipListNode[K, V]{next: newLinks(maxLevel)})
	return sl
}

func newLinks(level int) []int32 {
	next := make([]int32, level+1)
	for i := range next {
		next[i] = nilRef
	}
	return next
}

// randomLevel returns 1 plus the number of consecutive fair coin successes,
// capped at maxLevel.
func (sl *SkipList[K, V]) randomLevel() int {
	level := 1
	for level < sl.maxLevel && sl.rng.Uint64()&1 == 1 {
		level++
	}
	return min(level, sl.maxLevel)
}

// search walks from the header at the current top level down to level 0.
// At each level it records in update the rightmost node whose key is
// strictly less than key, then returns the level-0 successor of that node.
// Keys are ordered by cmp.Compare, under which NaN equals itself and sorts
// first.
func (sl *SkipList[K, V]) search(key K) int32 {
	x := header
	for i := sl.level; i >= 0; i-- {
		for {
			next := sl.nodes[x].next[i]
			if next == nilRef || !cmp.Less(sl.nodes[next].key, key) {
				break
			}
			x = next
		}
		sl.update[i] = x
	}
	return sl.nodes[x].next[0]
}

// alloc places a new unlinked node in the arena and returns its index.
func (sl *SkipList[K, V]) alloc(key K, value V, level int) int32 {
	if n := len(sl.free); n > 0 {
		idx := sl.free[n-1]
		sl.free = sl.free[:n-1]

		node := &sl.nodes[idx]
		node.key, node.value = key, value
		if cap(node.next) > level {
			node.next = node.next[:level+1]
			for i := range node.next {
				node.next[i] = nilRef
			}
		} else {
			node.next = newLinks(level)
		}
		return idx
	}

	sl.nodes = append(sl.nodes, skipListNode[K, V]{key: key, value: value, next: newLinks(level)})
	return int32(len(sl.nodes) - 1)
}

// release returns a detached node's slot to the free list.
func (sl *SkipList[K, V]) release(idx int32) {
	var (
		zeroK K
		zeroV V
	)
	node := &sl.nodes[idx]
	node.key, node.value = zeroK, zeroV
	node.next = node.next[:0]
	sl.free = append(sl.free, idx)
}

// Insert adds key with value. It returns false without touching the stored
// value if key is already present.
func (sl *SkipList[K, V]) Insert(key K, value V) bool {
	candidate := sl.search(key)
	if candidate != nilRef && cmp.Compare(sl.nodes[candidate].key, key) == 0 {
		return false
	}

	newLevel := sl.randomLevel()
	if newLevel > sl.level {
		for i := sl.level + 1; i <= newLevel; i++ {
			sl.update[i] = header
		}
		sl.level = newLevel
	}

	idx := sl.alloc(key, value, newLevel)
	for i := 0; i <= newLevel; i++ {
		prev := sl.update[i]
		sl.nodes[idx].next[i] = sl.nodes[prev].next[i]
		sl.nodes[prev].next[i] = idx
	}

	sl.size++
	return true
}

// Delete unlinks key from every level it occupies. It returns false if key
// is absent.
func (sl *SkipList[K, V]) Delete(key K) bool {
	target := sl.search(key)
	if target == nilRef || cmp.Compare(sl.nodes[target].key, key) != 0 {
		return false
	}

	// A node occupies a contiguous run of levels starting at 0, so the
	// first anchor that does not point at target ends the unlink.
	for i := 0; i <= sl.level; i++ {
		prev := sl.update[i]
		if sl.nodes[prev].next[i] != target {
			break
		}
		sl.nodes[prev].next[i] = sl.nodes[target].next[i]
	}

	for sl.level > 0 && sl.nodes[header].next[sl.level] == nilRef {
		sl.level--
	}

	sl.release(target)
	sl.size--
	return true
}

// Get returns the value stored under key.
func (sl *SkipList[K, V]) Get(key K) (V, bool) {
	candidate := sl.search(key)
	if candidate != nilRef && cmp.Compare(sl.nodes[candidate].key, key) == 0 {
		return sl.nodes[candidate].value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (sl *SkipList[K, V]) Contains(key K) bool {
	candidate := sl.search(key)
	return candidate != nilRef && cmp.Compare(sl.nodes[candidate].key, key) == 0
}

// All yields every pair in ascending key order. The list must not be
// modified during iteration.
func (sl *SkipList[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for x := sl.nodes[header].next[0]; x != nilRef; x = sl.nodes[x].next[0] {
			if !yield(sl.nodes[x].key, sl.nodes[x].value) {
				return
			}
		}
	}
}

// Entries returns a copy of every pair in ascending key order.
func (sl *SkipList[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, sl.size)
	for k, v := range sl.All() {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return entries
}

// Range returns the pairs with start <= key <= end in ascending order.
func (sl *SkipList[K, V]) Range(start, end K) []Entry[K, V] {
	var result []Entry[K, V]
	for x := sl.search(start); x != nilRef && cmp.Compare(sl.nodes[x].key, end) <= 0; x = sl.nodes[x].next[0] {
		result = append(result, Entry[K, V]{Key: sl.nodes[x].key, Value: sl.nodes[x].value})
	}
	return result
}

// Levels returns the key chain of every level from 0 up to the current
// level.
func (sl *SkipList[K, V]) Levels() [][]K {
	levels := make([][]K, sl.level+1)
	for i := range levels {
		for x := sl.nodes[header].next[i]; x != nilRef; x = sl.nodes[x].next[i] {
			levels[i] = append(levels[i], sl.nodes[x].key)
		}
	}
	return levels
}

// Size returns the number of key-value pairs currently stored.
func (sl *SkipList[K, V]) Size() int {
	return sl.size
}

// Level returns the highest level occupied by any node, or 0 when empty.
func (sl *SkipList[K, V]) Level() int {
	return sl.level
}

// MaxLevel returns the level ceiling fixed at construction.
func (sl *SkipList[K, V]) MaxLevel() int {
	return sl.maxLevel
}

// Clear drops every node, keeping only the header.
func (sl *SkipList[K, V]) Clear() {
	clear(sl.nodes[1:])
	sl.nodes = sl.nodes[:1]
	for i := range sl.nodes[header].next {
		sl.nodes[header].next[i] = nilRef
	}
	sl.free = sl.free[:0]
	sl.level = 0
	sl.size = 0
}
