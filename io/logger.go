package cliio

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogFormat selects the line prefix.
type LogFormat int

const (
	LogFormatTagged  LogFormat = iota // [INFO] message
	LogFormatSymbols                  // ℹ message
	LogFormatPlain                    // message
)

var symbolPrefixes = map[LogLevel]string{
	LevelDebug:   "•",
	LevelInfo:    "ℹ",
	LevelSuccess: "✓",
	LevelWarning: "⚠",
	LevelError:   "✗",
}

// Logger writes levelled, optionally styled lines through an IOManager.
type Logger struct {
	io           *IOManager
	format       LogFormat
	minLevel     LogLevel
	withTime     bool
	timeFormat   string
	errorsStderr bool
	now          func() time.Time
}

// NewLogger returns an Info-level tagged logger bound to m. Debug, warning
// and error lines go to the error stream.
func NewLogger(m *IOManager) *Logger {
	return &Logger{
		io:           m,
		format:       LogFormatTagged,
		minLevel:     LevelInfo,
		timeFormat:   "15:04:05",
		errorsStderr: true,
		now:          time.Now,
	}
}

func (l *Logger) WithFormat(f LogFormat) *Logger { l.format = f; return l }

// WithLevel drops lines below level.
func (l *Logger) WithLevel(level LogLevel) *Logger { l.minLevel = level; return l }

func (l *Logger) WithTimestamp(enabled bool) *Logger { l.withTime = enabled; return l }

func (l *Logger) WithTimeFormat(layout string) *Logger { l.timeFormat = layout; return l }

// ErrorsToStderr controls whether debug, warning and error lines use the
// error stream.
func (l *Logger) ErrorsToStderr(enabled bool) *Logger { l.errorsStderr = enabled; return l }

// Enabled reports whether lines at level are written.
func (l *Logger) Enabled(level LogLevel) bool { return level >= l.minLevel }

// Log formats and writes one line.
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	fmt.Fprintln(l.writer(level), l.format1(level, fmt.Sprintf(format, args...)))
}

func (l *Logger) format1(level LogLevel, msg string) string {
	if strings.TrimSpace(msg) == "" {
		return msg
	}
	var b strings.Builder
	switch l.format {
	case LogFormatTagged:
		b.WriteString("[" + level.String() + "]")
	case LogFormatSymbols:
		b.WriteString(symbolPrefixes[level])
	}
	if l.withTime {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(l.now().Format(l.timeFormat))
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(msg)
	return l.io.Style(l.style(level), b.String())
}

func (l *Logger) style(level LogLevel) Style {
	t := l.io.Theme()
	switch level {
	case LevelDebug:
		return t.Debug
	case LevelInfo:
		return t.Info
	case LevelSuccess:
		return t.Success
	case LevelWarning:
		return t.Warning
	default:
		return t.Error
	}
}

func (l *Logger) writer(level LogLevel) io.Writer {
	if l.errorsStderr && (level >= LevelWarning || level == LevelDebug) {
		return l.io.Err()
	}
	return l.io.Out()
}

func (l *Logger) Debug(format string, args ...any)   { l.Log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)    { l.Log(LevelInfo, format, args...) }
func (l *Logger) Success(format string, args ...any) { l.Log(LevelSuccess, format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.Log(LevelWarning, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.Log(LevelError, format, args...) }
