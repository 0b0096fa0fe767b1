package memtable_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/MikhailWahib/skipkv/internal/memtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 42

// checkInvariants verifies the structural properties that must hold between
// operations: every level is sorted and duplicate-free, every level is a
// subsequence of the one below it, the top level is occupied unless the list
// is empty, and level 0 holds exactly Size() keys.
func checkInvariants(t *testing.T, sl *memtable.SkipList[int, string]) {
	t.Helper()

	levels := sl.Levels()
	require.Len(t, levels, sl.Level()+1)
	require.LessOrEqual(t, sl.Level(), sl.MaxLevel())

	for l, chain := range levels {
		for i := 1; i < len(chain); i++ {
			require.Less(t, chain[i-1], chain[i], "level %d not strictly increasing", l)
		}
		if l > 0 {
			for _, k := range chain {
				_, found := slices.BinarySearch(levels[l-1], k)
				require.True(t, found, "key %d on level %d missing from level %d", k, l, l-1)
			}
		}
	}

	assert.Len(t, levels[0], sl.Size())
	if sl.Size() == 0 {
		assert.Equal(t, 0, sl.Level())
	} else {
		assert.NotEmpty(t, levels[sl.Level()], "top level must be occupied")
	}
}

func TestSkipListInsertAndGet(t *testing.T) {
	sl := memtable.NewSkipList[string, string](6, testSeed)

	assert.True(t, sl.Insert("apple", "red"))
	assert.True(t, sl.Insert("banana", "yellow"))
	assert.True(t, sl.Insert("cherry", "dark red"))
	assert.True(t, sl.Insert("Hello", "World"))
	assert.True(t, sl.Insert("hello", "world"))

	tests := []struct {
		key, expectedValue string
		expectedFound      bool
	}{
		{"apple", "red", true},
		{"banana", "yellow", true},
		{"cherry", "dark red", true},
		{"Hello", "World", true},
		{"grape", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			actualValue, found := sl.Get(tt.key)
			assert.Equal(t, tt.expectedFound, found, "unexpected found value for key %v", tt.key)
			assert.Equal(t, tt.expectedValue, actualValue, "unexpected value for key %v", tt.key)
			assert.Equal(t, tt.expectedFound, sl.Contains(tt.key))
		})
	}
}

func TestSkipListInsertNeverOverwrites(t *testing.T) {
	sl := memtable.NewSkipList[int, string](6, testSeed)

	assert.True(t, sl.Insert(5, "x"))
	assert.False(t, sl.Insert(5, "y"), "expected duplicate insert to be rejected")

	val, found := sl.Get(5)
	assert.True(t, found)
	assert.Equal(t, "x", val, "expected first value to be kept")
	assert.Equal(t, 1, sl.Size())
}

func TestSkipListOrderedIteration(t *testing.T) {
	sl := memtable.NewSkipList[int, string](6, testSeed)

	sl.Insert(2, "a")
	sl.Insert(1, "b")
	sl.Insert(3, "c")

	assert.Equal(t, 3, sl.Size())
	assert.True(t, sl.Contains(2))

	var keys []int
	for k := range sl.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{1, 2, 3}, keys)

	assert.Equal(t, []memtable.Entry[int, string]{
		{Key: 1, Value: "b"}, {Key: 2, Value: "a"}, {Key: 3, Value: "c"},
	}, sl.Entries())

	// iteration is restartable and honours early termination
	var first []int
	for k := range sl.All() {
		first = append(first, k)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, first)
}

func TestSkipListDelete(t *testing.T) {
	sl := memtable.NewSkipList[int, string](6, testSeed)

	sl.Insert(1, "a")
	sl.Insert(2, "b")

	assert.True(t, sl.Delete(1))
	assert.Equal(t, 1, sl.Size())
	assert.False(t, sl.Contains(1), "expected 1 to be deleted")
	assert.True(t, sl.Contains(2), "expected 2 to remain")

	assert.False(t, sl.Delete(1), "second delete must report absence")
	assert.Equal(t, 1, sl.Size())
	checkInvariants(t, sl)
}

func TestSkipListEmpty(t *testing.T) {
	sl := memtable.NewSkipList[int, string](6, testSeed)

	_, found := sl.Get(1)
	assert.False(t, found)
	assert.False(t, sl.Delete(1), "delete on empty list must return false")
	assert.Equal(t, 0, sl.Size())
	assert.Equal(t, 0, sl.Level())
	assert.Empty(t, sl.Entries())
	checkInvariants(t, sl)
}

func TestSkipListReinsertAfterDelete(t *testing.T) {
	sl := memtable.NewSkipList[string, string](6, testSeed)

	sl.Insert("apple", "red")
	sl.Delete("apple")

	_, found := sl.Get("apple")
	assert.False(t, found, "expected 'apple' to be deleted")

	assert.True(t, sl.Insert("apple", "green"))
	val, found := sl.Get("apple")
	assert.True(t, found, "expected 'apple' to be found after re-insertion")
	assert.Equal(t, "green", val)
}

func TestSkipListLevelCeiling(t *testing.T) {
	for _, maxLevel := range []int{0, 1, 3} {
		sl := memtable.NewSkipList[int, string](maxLevel, testSeed)
		for i := range 500 {
			sl.Insert(i, "v")
		}
		assert.LessOrEqual(t, sl.Level(), maxLevel)
		assert.Equal(t, maxLevel, sl.MaxLevel())
		assert.Equal(t, 500, sl.Size())
		for i := range 500 {
			require.True(t, sl.Contains(i), "max level %d lost key %d", maxLevel, i)
		}
	}
}

func TestSkipListLevelDistribution(t *testing.T) {
	sl := memtable.NewSkipList[int, string](32, testSeed)
	const n = 1 << 14
	for i := range n {
		sl.Insert(i, "")
	}

	levels := sl.Levels()
	// every node reaches level 1; roughly half of those reach level 2
	assert.Len(t, levels[1], n)
	ratio := float64(len(levels[2])) / float64(len(levels[1]))
	assert.InDelta(t, 0.5, ratio, 0.05)
	assert.Less(t, sl.Level(), 28, "height should stay near log2(n)")
}

func TestSkipListDeleteLowersLevel(t *testing.T) {
	hits := 0
	for seed := uint64(1); seed <= 64; seed++ {
		sl := memtable.NewSkipList[int, string](12, seed)
		for i := range 16 {
			sl.Insert(i, "v")
		}

		top := sl.Levels()[sl.Level()]
		if len(top) != 1 {
			continue
		}
		hits++
		before := sl.Level()

		require.True(t, sl.Delete(top[0]))
		checkInvariants(t, sl)
		assert.Less(t, sl.Level(), before, "seed %d: level must drop after removing the sole top node", seed)
	}
	assert.Positive(t, hits, "expected at least one seed with a sole top-level node")
}

func TestSkipListDeleteAllResetsLevel(t *testing.T) {
	sl := memtable.NewSkipList[int, string](8, testSeed)
	for i := range 64 {
		sl.Insert(i, "v")
	}
	for i := range 64 {
		require.True(t, sl.Delete(i))
	}
	assert.Equal(t, 0, sl.Size())
	assert.Equal(t, 0, sl.Level())
}

func TestSkipListRandomOperations(t *testing.T) {
	sl := memtable.NewSkipList[int, string](10, testSeed)
	rng := rand.New(rand.NewPCG(7, 7))
	model := map[int]string{}

	for i := range 3000 {
		k := rng.IntN(300)
		switch rng.IntN(3) {
		case 0, 1:
			v := string(rune('a' + i%26))
			_, exists := model[k]
			assert.Equal(t, !exists, sl.Insert(k, v))
			if !exists {
				model[k] = v
			}
		case 2:
			_, exists := model[k]
			assert.Equal(t, exists, sl.Delete(k))
			delete(model, k)
		}
		if i%100 == 0 {
			checkInvariants(t, sl)
		}
	}
	checkInvariants(t, sl)

	assert.Equal(t, len(model), sl.Size())
	for k, v := range model {
		got, found := sl.Get(k)
		require.True(t, found)
		assert.Equal(t, v, got)
	}
}

func TestSkipListNaNKey(t *testing.T) {
	sl := memtable.NewSkipList[float64, string](6, testSeed)
	nan := math.NaN()

	assert.True(t, sl.Insert(1.5, "x"))
	assert.True(t, sl.Insert(nan, "a"))
	assert.False(t, sl.Insert(nan, "b"), "NaN must collide with itself")
	assert.True(t, sl.Insert(-1, "y"))
	assert.Equal(t, 3, sl.Size())

	val, found := sl.Get(nan)
	assert.True(t, found)
	assert.Equal(t, "a", val)

	var keys []float64
	for k := range sl.All() {
		keys = append(keys, k)
	}
	require.Len(t, keys, 3)
	assert.True(t, math.IsNaN(keys[0]), "NaN sorts before every other key")
	assert.Equal(t, []float64{-1, 1.5}, keys[1:])

	assert.True(t, sl.Delete(nan))
	assert.False(t, sl.Contains(nan))
	assert.Equal(t, 2, sl.Size())
}

func TestSkipListRange(t *testing.T) {
	sl := memtable.NewSkipList[int, string](6, testSeed)
	for _, k := range []int{10, 20, 30, 40, 50} {
		sl.Insert(k, "v")
	}

	keys := func(entries []memtable.Entry[int, string]) []int {
		var out []int
		for _, e := range entries {
			out = append(out, e.Key)
		}
		return out
	}

	assert.Equal(t, []int{20, 30, 40}, keys(sl.Range(15, 40)))
	assert.Equal(t, []int{10}, keys(sl.Range(10, 10)))
	assert.Empty(t, sl.Range(51, 100))
	assert.Empty(t, sl.Range(40, 20))
}

func TestSkipListClear(t *testing.T) {
	sl := memtable.NewSkipList[int, string](6, testSeed)
	for i := range 50 {
		sl.Insert(i, "v")
	}

	sl.Clear()
	assert.Equal(t, 0, sl.Size())
	assert.Equal(t, 0, sl.Level())
	assert.False(t, sl.Contains(10))
	checkInvariants(t, sl)

	assert.True(t, sl.Insert(10, "again"))
	checkInvariants(t, sl)
}

func TestNewMemtable(t *testing.T) {
	mt := memtable.NewMemtable[string, int](4, testSeed)
	assert.True(t, mt.Insert("k", 1))
	v, ok := mt.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 4, mt.MaxLevel())
}
