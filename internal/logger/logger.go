// Package logger is a small leveled wrapper around the standard log package.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level orders log severities from most to least verbose.
type Level int32

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
	PanicLevel
)

var levelNames = map[Level]string{
	TraceLevel: "trace",
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
	PanicLevel: "panic",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int32(l))
}

// debugBuild is set via ldflags for debug builds.
var debugBuild = ""

var (
	current atomic.Int32
	std     = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	current.Store(int32(InfoLevel))
	if DebugForced() {
		current.Store(int32(DebugLevel))
	}
}

// DebugForced reports whether this is a debug build or QUESTGEN_DEBUG=1 is set.
func DebugForced() bool {
	return debugBuild == "true" || os.Getenv("QUESTGEN_DEBUG") == "1"
}

// ParseLevel maps a level name to a Level. "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	case "panic":
		return PanicLevel, nil
	}
	return InfoLevel, fmt.Errorf("invalid log level %q (want trace, debug, info, warn, error, fatal, panic)", s)
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) { current.Store(int32(l)) }

// GetLevel returns the minimum level that is written.
func GetLevel() Level { return Level(current.Load()) }

// SetOutput redirects log output.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool { return l >= GetLevel() }

func logf(l Level, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	std.Output(3, "["+strings.ToUpper(l.String())+"] "+fmt.Sprintf(format, args...))
}

func Trace(format string, args ...any) { logf(TraceLevel, format, args...) }
func Debug(format string, args ...any) { logf(DebugLevel, format, args...) }
func Info(format string, args ...any)  { logf(InfoLevel, format, args...) }
func Warn(format string, args ...any)  { logf(WarnLevel, format, args...) }
func Error(format string, args ...any) { logf(ErrorLevel, format, args...) }

// Fatal logs and exits with status 1.
func Fatal(format string, args ...any) {
	logf(FatalLevel, format, args...)
	os.Exit(1)
}
