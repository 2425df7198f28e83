package middleware

import (
	"fmt"
	"runtime"
	"sync"
)

// Recovery turns a handler panic into exit code 1 and an "error:" line on
// the context's stderr. The RecoveryError is stored under KeyRecovered.
func Recovery(opts ...Option) Middleware {
	cfg := newConfig(opts)
	return RecoveryWithHandler(func(ctx Context, rerr *RecoveryError) int {
		out := cfg.output(ctx)
		fmt.Fprintf(ctx.Stderr(), "error: %s\n", rerr.Error())
		if cfg.PrintStack && len(rerr.Stack) > 0 {
			fmt.Fprintf(out, "stack trace:\n%s\n", rerr.Stack)
		}
		return ExitFailure
	}, opts...)
}

// RecoveryWithHandler calls handle with the captured panic and uses its
// return value as the exit code.
func RecoveryWithHandler(handle func(ctx Context, rerr *RecoveryError) int, opts ...Option) Middleware {
	cfg := newConfig(opts)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx Context) (code int) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				rerr := &RecoveryError{Panic: r, Command: ctx.Path(), Stack: captureStack(cfg.StackSize)}
				ctx.Set(KeyRecovered, rerr)
				code = handle(ctx, rerr)
			}()
			return next(ctx)
		}
	}
}

// NoopRecovery lets panics propagate.
func NoopRecovery() Middleware {
	return func(next HandlerFunc) HandlerFunc { return next }
}

func captureStack(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf := make([]byte, size)
	return buf[:runtime.Stack(buf, false)]
}

// RecoveryStats counts recovered panics per command path.
type RecoveryStats struct {
	mu        sync.Mutex
	total     int
	byCommand map[string]int
	last      *RecoveryError
}

func NewRecoveryStats() *RecoveryStats {
	return &RecoveryStats{byCommand: make(map[string]int)}
}

func (s *RecoveryStats) record(rerr *RecoveryError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byCommand[rerr.Command]++
	s.last = rerr
}

// Total returns the number of panics seen.
func (s *RecoveryStats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Count returns the panics seen for one command path.
func (s *RecoveryStats) Count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byCommand[path]
}

// Last returns the most recent panic, or nil.
func (s *RecoveryStats) Last() *RecoveryError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// RecoveryWithStats behaves like Recovery and records each panic in stats.
func RecoveryWithStats(stats *RecoveryStats, opts ...Option) Middleware {
	base := Recovery(opts...)
	return func(next HandlerFunc) HandlerFunc {
		wrapped := base(next)
		return func(ctx Context) int {
			code := wrapped(ctx)
			if rerr, ok := ctx.Get(KeyRecovered).(*RecoveryError); ok && rerr != nil {
				stats.record(rerr)
			}
			return code
		}
	}
}
