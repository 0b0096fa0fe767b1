package memtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipList_ReusesFreedSlots(t *testing.T) {
	sl := NewSkipList[int, string](8, 1)
	for i := range 32 {
		sl.Insert(i, "v")
	}
	slots := len(sl.nodes)

	for i := range 16 {
		sl.Delete(i)
	}
	assert.Len(t, sl.free, 16)

	for i := 100; i < 116; i++ {
		sl.Insert(i, "w")
	}
	assert.Len(t, sl.nodes, slots, "inserts after deletes must reuse arena slots")
	assert.Empty(t, sl.free)
}

func TestSkipList_ReleaseDropsReferences(t *testing.T) {
	sl := NewSkipList[string, *int](4, 1)
	v := new(int)
	sl.Insert("k", v)
	idx := sl.nodes[header].next[0]

	sl.Delete("k")
	assert.Nil(t, sl.nodes[idx].value)
	assert.Empty(t, sl.nodes[idx].key)
	assert.Empty(t, sl.nodes[idx].next)
}

func TestSkipList_HeaderSpansMaxLevel(t *testing.T) {
	sl := NewSkipList[int, int](6, 1)
	assert.Len(t, sl.nodes[header].next, 7)
	for _, link := range sl.nodes[header].next {
		assert.Equal(t, nilRef, link)
	}
}
