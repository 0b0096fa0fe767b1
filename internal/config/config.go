// Package config provides configuration structures and defaults for SkipKV.
package config

import (
	"errors"
	"fmt"
)

const (
	defaultMaxLevel  = 16
	defaultDataPath  = "save/data"
	defaultSeparator = ':'
)

var (
	// ErrInvalidMaxLevel is returned when MaxLevel is negative.
	ErrInvalidMaxLevel = errors.New("config: max level must not be negative")
	// ErrInvalidSeparator is returned when the record separator is a line break.
	ErrInvalidSeparator = errors.New("config: separator must not be a line break")
)

// Config holds the tunable parameters of a SkipKV instance.
type Config struct {
	// MaxLevel is the structural height ceiling of the skip list.
	// It never changes after construction. Zero is a valid ceiling and
	// keeps every node on level 0; start from DefaultConfig for the usual
	// height.
	MaxLevel int
	// DataPath is the file Dump writes to and Load reads from.
	DataPath string
	// Separator splits key text from value text in the data file.
	Separator byte
	// Seed seeds the level sampler. Zero means seed from the clock.
	Seed uint64
}

// DefaultConfig returns a Config struct populated with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxLevel:  defaultMaxLevel,
		DataPath:  defaultDataPath,
		Separator: defaultSeparator,
	}
}

// FillDefaults sets zero-value DataPath and Separator to their defaults.
// MaxLevel is taken as given.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.DataPath == "" {
		c.DataPath = def.DataPath
	}
	if c.Separator == 0 {
		c.Separator = def.Separator
	}
}

// Validate reports whether the Config can be used to build an engine.
func (c *Config) Validate() error {
	if c.MaxLevel < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxLevel, c.MaxLevel)
	}
	if c.Separator == '\n' || c.Separator == '\r' {
		return ErrInvalidSeparator
	}
	return nil
}
