// Package logging provides leveled logging to stderr.
//
// stdout belongs to the MCP protocol when the server is running, so every
// message goes to stderr unless SetOutput redirects it. The level comes from
// WORDSEARCH_LOG_LEVEL or the --verbose flag.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders message severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	mu     sync.RWMutex
	level  = LevelWarn
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime)
)

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput redirects log output. Timestamps are dropped for writers other
// than stderr so tests can match lines exactly.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	flags := 0
	if w == os.Stderr {
		flags = log.Ldate | log.Ltime
	}
	logger = log.New(w, "", flags)
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	logger.Printf("["+levelNames[l]+"] "+format, args...)
}

// Debug logs per-stage detail.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info logs progress.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn logs recoverable problems.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error logs failures.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header at debug level.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level <= LevelDebug {
		logger.Printf("=== %s ===", name)
	}
}
