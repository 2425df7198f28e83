package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/dzonerzy/go-zcli/internal/pool"
)

// execution is one logged handler run.
type execution struct {
	Command   string
	Args      []string
	StartTime time.Time
	Duration  time.Duration
	ExitCode  int
}

var executions = pool.NewPoolWithReset(
	func() *execution { return &execution{Args: make([]string, 0, 8)} },
	func(e *execution) {
		e.Command = ""
		e.Args = e.Args[:0]
		e.StartTime = time.Time{}
		e.Duration = 0
		e.ExitCode = 0
	},
)

// Logger writes one line per handler run: START at debug level, then
// SUCCESS for exit code 0 or ERROR otherwise.
func Logger(opts ...Option) Middleware {
	cfg := newConfig(opts)
	now := time.Now
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx Context) int {
			if cfg.LogLevel == LogLevelNone {
				return next(ctx)
			}

			e := executions.Get()
			defer executions.Put(e)
			e.Command = ctx.Path()
			e.Args = append(e.Args, ctx.Args()...)
			e.StartTime = now()
			ctx.Set(KeyStartTime, e.StartTime)

			out := cfg.output(ctx)
			if cfg.LogLevel >= LogLevelDebug {
				writeLog(out, cfg, e, "START")
			}

			e.ExitCode = next(ctx)
			e.Duration = time.Since(e.StartTime)

			level := "SUCCESS"
			if e.ExitCode != 0 {
				level = "ERROR"
			}
			if shouldLog(cfg.LogLevel, level) {
				writeLog(out, cfg, e, level)
			}
			return e.ExitCode
		}
	}
}

func shouldLog(configured LogLevel, level string) bool {
	switch level {
	case "ERROR":
		return configured >= LogLevelError
	case "START":
		return configured >= LogLevelDebug
	default:
		return configured >= LogLevelInfo
	}
}

func writeLog(w io.Writer, cfg *Config, e *execution, level string) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if cfg.LogFormat == LogFormatJSON {
		writeJSON(buf, cfg, e, level)
	} else {
		writeText(buf, cfg, e, level)
	}
	//nolint:errcheck // logging is best-effort
	w.Write(buf.Bytes())
}

func writeText(buf *bytes.Buffer, cfg *Config, e *execution, level string) {
	buf.WriteByte('[')
	buf.WriteString(e.StartTime.Format("2006-01-02 15:04:05"))
	buf.WriteString("] ")
	buf.WriteString(level)
	buf.WriteString(" command=")
	buf.WriteString(strconv.Quote(e.Command))
	if level != "START" {
		buf.WriteString(" exit=")
		buf.WriteString(strconv.Itoa(e.ExitCode))
		buf.WriteString(" duration=")
		buf.WriteString(e.Duration.String())
	}
	if cfg.IncludeArgs && len(e.Args) > 0 {
		buf.WriteString(" args=")
		for i, a := range e.Args {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(a)
		}
	}
	buf.WriteByte('\n')
}

func writeJSON(buf *bytes.Buffer, cfg *Config, e *execution, level string) {
	buf.WriteString(`{"timestamp":"`)
	buf.WriteString(e.StartTime.Format(time.RFC3339))
	buf.WriteString(`","level":"`)
	buf.WriteString(level)
	buf.WriteString(`","command":`)
	writeJSONString(buf, e.Command)
	if level != "START" {
		buf.WriteString(`,"exit_code":`)
		buf.WriteString(strconv.Itoa(e.ExitCode))
		buf.WriteString(`,"duration_ms":`)
		buf.WriteString(strconv.FormatInt(e.Duration.Milliseconds(), 10))
	}
	if cfg.IncludeArgs && len(e.Args) > 0 {
		buf.WriteString(`,"args":[`)
		for i, a := range e.Args {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, a)
		}
		buf.WriteByte(']')
	}
	buf.WriteString("}\n")
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc, _ := json.Marshal(s)
	buf.Write(enc)
}

// DebugLogger logs START lines as well.
func DebugLogger() Middleware { return Logger(WithLogLevel(LogLevelDebug)) }

// ErrorLogger only logs failed runs.
func ErrorLogger() Middleware { return Logger(WithLogLevel(LogLevelError)) }

func JSONLogger() Middleware { return Logger(WithLogFormat(LogFormatJSON)) }
