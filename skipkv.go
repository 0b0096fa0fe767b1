// Package skipkv is an embedded, in-memory ordered key-value store built on a
// skip list.
//
// Keys are unique and kept in ascending order. Every operation is serialized
// behind one mutex, so a DB may be shared freely between goroutines. The whole
// data set can be dumped to, and reloaded from, a flat text file with one
// KEY:VALUE record per line.
//
// Example usage:
//
//	db, err := skipkv.New(&skipkv.Config{MaxLevel: 6}, skipkv.IntCodec(), skipkv.StringCodec())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	db.Insert(1, "They're")
//	db.Insert(2, "not looking for")
//
//	if v, ok := db.Get(1); ok {
//		fmt.Println(v)
//	}
//
//	db.Dump() // writes save/data
package skipkv

import (
	"cmp"
	"io"
	"iter"
	"os"

	"github.com/MikhailWahib/skipkv/internal/codec"
	"github.com/MikhailWahib/skipkv/internal/config"
	"github.com/MikhailWahib/skipkv/internal/engine"
	"github.com/MikhailWahib/skipkv/internal/memtable"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// DefaultConfig returns a Config struct populated with default values. Re-exported for user convenience.
var DefaultConfig = config.DefaultConfig

// Codec converts keys or values to and from their text form in the data file.
type Codec[T any] = codec.Codec[T]

// Entry is a key-value pair returned by ordered scans.
type Entry[K cmp.Ordered, V any] = memtable.Entry[K, V]

// LoadStats summarizes a Restore.
type LoadStats = engine.LoadStats

// ErrParse is wrapped by every codec decode failure.
var ErrParse = codec.ErrParse

// StringCodec stores strings as they are.
func StringCodec() Codec[string] { return codec.String() }

// IntCodec stores ints in base 10.
func IntCodec() Codec[int] { return codec.Int() }

// Int64Codec stores int64 values in base 10.
func Int64Codec() Codec[int64] { return codec.Int64() }

// Uint64Codec stores uint64 values in base 10.
func Uint64Codec() Codec[uint64] { return codec.Uint64() }

// Float64Codec stores float64 values in their shortest exact form.
func Float64Codec() Codec[float64] { return codec.Float64() }

// BoolCodec stores booleans as "true" or "false".
func BoolCodec() Codec[bool] { return codec.Bool() }

// CodecFunc builds a Codec from an encode and a decode function.
func CodecFunc[T any](encode func(T) string, decode func(string) (T, error)) Codec[T] {
	return codec.Func(encode, decode)
}

// DB represents a thread-safe SkipKV instance.
type DB[K cmp.Ordered, V any] struct {
	engine *engine.Engine[K, V]
}

// New creates an empty DB. A nil cfg uses DefaultConfig. Otherwise an empty
// DataPath or Separator falls back to its default and MaxLevel is used as
// given. The codecs are used by Dump, Load and Print.
func New[K cmp.Ordered, V any](cfg *Config, keys Codec[K], values Codec[V]) (*DB[K, V], error) {
	e, err := engine.NewEngine(cfg, nil, keys, values)
	if err != nil {
		return nil, err
	}
	return &DB[K, V]{engine: e}, nil
}

// Insert stores value under key.
// It returns false and leaves the stored value untouched if key already exists.
func (db *DB[K, V]) Insert(key K, value V) bool {
	return db.engine.Insert(key, value)
}

// Delete removes key. It returns false if key does not exist.
func (db *DB[K, V]) Delete(key K) bool {
	return db.engine.Delete(key)
}

// Find reports whether key exists.
func (db *DB[K, V]) Find(key K) bool {
	return db.engine.Find(key)
}

// Get retrieves the value for a given key.
func (db *DB[K, V]) Get(key K) (V, bool) {
	return db.engine.Get(key)
}

// Size returns the number of stored pairs.
func (db *DB[K, V]) Size() int {
	return db.engine.Size()
}

// Level returns the current height of the skip list.
func (db *DB[K, V]) Level() int {
	return db.engine.Level()
}

// MaxLevel returns the height ceiling chosen at construction.
func (db *DB[K, V]) MaxLevel() int {
	return db.engine.MaxLevel()
}

// All yields every pair in ascending key order. The DB stays locked for the
// whole loop, so the loop body must not call methods on db.
func (db *DB[K, V]) All() iter.Seq2[K, V] {
	return db.engine.All()
}

// Entries returns a snapshot of every pair in ascending key order.
func (db *DB[K, V]) Entries() []Entry[K, V] {
	return db.engine.Entries()
}

// Range returns the pairs with start <= key <= end in ascending key order.
func (db *DB[K, V]) Range(start, end K) []Entry[K, V] {
	return db.engine.Range(start, end)
}

// Clear removes every pair.
func (db *DB[K, V]) Clear() {
	db.engine.Clear()
}

// Print writes a listing of every pair to standard output.
func (db *DB[K, V]) Print() {
	_ = db.engine.Print(os.Stdout)
}

// PrintTo writes a listing of every pair to w.
func (db *DB[K, V]) PrintTo(w io.Writer) error {
	return db.engine.Print(w)
}

// PrintLevels writes the keys of every skip-list level to w.
func (db *DB[K, V]) PrintLevels(w io.Writer) error {
	return db.engine.PrintLevels(w)
}

// Dump writes every pair to the configured data file, replacing it.
// Failures are logged and otherwise ignored; use Save to observe them.
func (db *DB[K, V]) Dump() {
	db.engine.Dump()
}

// Load inserts every record of the configured data file. Keys already
// present keep their value. Failures are logged and otherwise ignored; use
// Restore to observe them.
func (db *DB[K, V]) Load() {
	db.engine.Load()
}

// Save is Dump returning the I/O error instead of logging it.
func (db *DB[K, V]) Save() error {
	return db.engine.Save()
}

// Restore is Load returning statistics and the I/O error.
func (db *DB[K, V]) Restore() (LoadStats, error) {
	return db.engine.Restore()
}
