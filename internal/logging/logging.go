package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelTrace sits below slog's built-in debug level.
const LevelTrace = slog.LevelDebug - 4

var (
	levelVar         = new(slog.LevelVar)
	logger           *slog.Logger
	currentVerbosity = 0
)

func init() {
	levelVar.Set(slog.LevelWarn)
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      levelVar,
		TimeFormat: time.RFC3339,
	}))
}

// SetVerbosity configures logger output from count of -v flags (0-4).
func SetVerbosity(count int) {
	if count < 0 {
		count = 0
	}
	if count > 4 {
		count = 4
	}
	currentVerbosity = count
	switch count {
	case 0:
		levelVar.Set(slog.LevelWarn)
	case 1:
		levelVar.Set(slog.LevelInfo)
	case 2:
		levelVar.Set(slog.LevelDebug)
	default:
		levelVar.Set(LevelTrace)
	}
}

// Verbosity returns the stored -v count.
func Verbosity() int {
	return currentVerbosity
}

// LevelName returns current level label.
func LevelName() string {
	switch levelVar.Level() {
	case slog.LevelError:
		return "error"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelInfo:
		return "info"
	case slog.LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel returns the verbosity count matching a level name.
func ParseLevel(s string) (int, error) {
	switch strings.ToLower(s) {
	case "error", "warn", "warning":
		return 0, nil
	case "info":
		return 1, nil
	case "debug":
		return 2, nil
	case "trace":
		return 4, nil
	default:
		return currentVerbosity, fmt.Errorf("unknown level %s", s)
	}
}

func logf(level slog.Level, format string, args ...any) {
	logger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	logf(slog.LevelError, format, args...)
}

func Warnf(format string, args ...any) {
	logf(slog.LevelWarn, format, args...)
}

func Infof(format string, args ...any) {
	logf(slog.LevelInfo, format, args...)
}

func Debugf(format string, args ...any) {
	logf(slog.LevelDebug, format, args...)
}

func Tracef(format string, args ...any) {
	logf(LevelTrace, format, args...)
}
