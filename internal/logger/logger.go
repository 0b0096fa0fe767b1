// Package logger holds the component loggers used across SkipKV.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Type selects the output encoding of the loggers.
type Type uint8

const (
	ConsoleLogger Type = iota
	JSONLogger
)

var (
	Root    zerolog.Logger
	Engine  zerolog.Logger
	Storage zerolog.Logger
)

// Options for Init
type Options struct {
	Level zerolog.Level
	Type  Type
	// Out defaults to os.Stderr.
	Out io.Writer
}

func init() {
	Init(Options{Level: zerolog.InfoLevel})
}

func ParseLevel(level string) (zerolog.Level, error) {
	return zerolog.ParseLevel(level)
}

// Init rebuilds every component logger from opts. Callers read the
// component loggers on each use, so existing engines pick up the change.
// Init must not race with logging.
func Init(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	switch opts.Type {
	case ConsoleLogger:
		Root = zerolog.New(newConsoleWriter(out)).Level(opts.Level).
			With().Timestamp().Logger()
	default:
		Root = zerolog.New(out).Level(opts.Level).
			With().Timestamp().Logger()
	}
	Engine = Root.With().Str("component", "engine").Logger()
	Storage = Root.With().Str("component", "storage").Logger()
}

// Disable silences every component logger.
func Disable() {
	Root = zerolog.Nop()
	Engine = zerolog.Nop()
	Storage = zerolog.Nop()
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	cw.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("|-> %s", i)
	}

	return cw
}
