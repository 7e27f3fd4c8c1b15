// Package logger owns the process-wide log sink. Both surfaces of the
// app draw the terminal, so nothing here may touch stdout: the rotated
// file under the config dir is the only destination, with a stderr
// echo in debug mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/squashclub/courtbook/internal/constants"
)

// A booking client logs a handful of lines per session, so the
// rotation keeps a couple of months of history in very little space.
const (
	logFileName = constants.AppName + ".log"
	maxSizeMB   = 5
	maxBackups  = 4
	maxAgeDays  = 60
)

var global *log.Logger

// Setup opens the rotated log file under <configDir>/logs and installs
// the package logger. Debug lowers the level to debug, echoes to
// stderr, and reports callers so a misbehaving async command can be
// traced to its closure.
func Setup(configDir string, debug bool) error {
	dir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	sink := io.Writer(&lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
		sink = io.MultiWriter(sink, os.Stderr)
	}

	global = log.NewWithOptions(sink, log.Options{
		Level:           level,
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    debug,
	})
	return nil
}

// The wrappers tolerate a nil logger so library code can log without
// caring whether Setup ran (tests, mostly).

func Debug(msg string, keyvals ...any) {
	if global != nil {
		global.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if global != nil {
		global.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if global != nil {
		global.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if global != nil {
		global.Error(msg, keyvals...)
	}
}
