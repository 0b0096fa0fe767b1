package skipkv

import (
	"github.com/rs/zerolog"

	"github.com/MikhailWahib/skipkv/internal/logger"
)

// LogOptions configures the diagnostics every DB writes.
type LogOptions = logger.Options

// LogType selects the log encoding.
type LogType = logger.Type

const (
	ConsoleLogger = logger.ConsoleLogger
	JSONLogger    = logger.JSONLogger
)

// InitLogging replaces the loggers of every DB, including ones already
// open. Logs go to stderr at info level until it is called. It must not run
// concurrently with DB operations.
func InitLogging(opts LogOptions) {
	logger.Init(opts)
}

// DisableLogging silences every DB.
func DisableLogging() {
	logger.Disable()
}

// ParseLogLevel converts a level name such as "debug" or "warn".
func ParseLogLevel(level string) (zerolog.Level, error) {
	return logger.ParseLevel(level)
}
