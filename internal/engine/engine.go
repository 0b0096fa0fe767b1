// Package engine implements the SkipKV storage engine: a memtable guarded by
// a single mutex, plus dumping to and loading from a flat text file.
package engine

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/MikhailWahib/skipkv/internal/codec"
	"github.com/MikhailWahib/skipkv/internal/config"
	"github.com/MikhailWahib/skipkv/internal/diskmanager"
	"github.com/MikhailWahib/skipkv/internal/logger"
	"github.com/MikhailWahib/skipkv/internal/memtable"
)

// Engine serializes every operation on its memtable behind one mutex,
// including the file I/O performed by Save and Restore. Diagnostics go to
// logger.Engine as configured at the time of each call.
type Engine[K cmp.Ordered, V any] struct {
	mu       sync.Mutex
	memtable memtable.Memtable[K, V]
	dm       diskmanager.DiskManager
	keys     codec.Codec[K]
	values   codec.Codec[V]
	dataPath string
	sep      byte
}

// NewEngine builds an empty engine. A nil cfg uses the defaults and a nil dm
// uses the local filesystem.
func NewEngine[K cmp.Ordered, V any](cfg *config.Config, dm diskmanager.DiskManager, keys codec.Codec[K], values codec.Codec[V]) (*Engine[K, V], error) {
	c := config.DefaultConfig()
	if cfg != nil {
		*c = *cfg
		c.FillDefaults()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if keys == nil || values == nil {
		return nil, fmt.Errorf("engine: key and value codecs are required")
	}
	if dm == nil {
		dm = diskmanager.NewDiskManager()
	}

	return &Engine[K, V]{
		memtable: memtable.NewMemtable[K, V](c.MaxLevel, c.Seed),
		dm:       dm,
		keys:     keys,
		values:   values,
		dataPath: c.DataPath,
		sep:      c.Separator,
	}, nil
}

// Insert stores value under key. It returns false and keeps the existing
// value if key is already present.
func (e *Engine[K, V]) Insert(key K, value V) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.memtable.Insert(key, value)
	if ev := logger.Engine.Debug(); ev.Enabled() {
		if ok {
			ev.Str("key", e.keys.Encode(key)).Str("value", e.values.Encode(value)).Msg("inserted")
		} else {
			ev.Str("key", e.keys.Encode(key)).Msg("insert skipped, key exists")
		}
	}
	return ok
}

// Delete removes key. It returns false if key is absent.
func (e *Engine[K, V]) Delete(key K) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.memtable.Delete(key)
	if ev := logger.Engine.Debug(); ev.Enabled() {
		ev.Str("key", e.keys.Encode(key)).Bool("existed", ok).Msg("deleted")
	}
	return ok
}

// Find reports whether key is present.
func (e *Engine[K, V]) Find(key K) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.memtable.Contains(key)
	if ev := logger.Engine.Debug(); ev.Enabled() {
		ev.Str("key", e.keys.Encode(key)).Bool("found", ok).Msg("find")
	}
	return ok
}

// Get returns the value stored under key.
func (e *Engine[K, V]) Get(key K) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memtable.Get(key)
}

func (e *Engine[K, V]) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memtable.Size()
}

// Level returns the current top level of the skip list.
func (e *Engine[K, V]) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memtable.Level()
}

func (e *Engine[K, V]) MaxLevel() int {
	return e.memtable.MaxLevel()
}

// Levels returns the key chain of every occupied level, bottom first.
func (e *Engine[K, V]) Levels() [][]K {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memtable.Levels()
}

// Entries returns a copy of every pair in ascending key order.
func (e *Engine[K, V]) Entries() []memtable.Entry[K, V] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memtable.Entries()
}

// Range returns the pairs with start <= key <= end in ascending order.
func (e *Engine[K, V]) Range(start, end K) []memtable.Entry[K, V] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memtable.Range(start, end)
}

// All yields every pair in ascending key order while holding the engine
// lock. The loop body must not call back into the engine.
func (e *Engine[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		e.mu.Lock()
		defer e.mu.Unlock()
		for k, v := range e.memtable.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Clear removes every entry.
func (e *Engine[K, V]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memtable.Clear()
}

// Print writes a framed listing of every pair to w.
func (e *Engine[K, V]) Print(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("/-------------|print:begin|------------\\\n")
	for k, v := range e.memtable.All() {
		fmt.Fprintf(&sb, "|-> %s:%s;\n", e.keys.Encode(k), e.values.Encode(v))
	}
	sb.WriteString("\\-------------|print:end|--------------/\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// PrintLevels writes the key chain of each level to w, top level first.
func (e *Engine[K, V]) PrintLevels(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	levels := e.memtable.Levels()
	var sb strings.Builder
	for i := len(levels) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "Level %2d:", i)
		for _, k := range levels[i] {
			sb.WriteByte(' ')
			sb.WriteString(e.keys.Encode(k))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
