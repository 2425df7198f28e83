// Package intern deduplicates the short, highly repetitive strings produced by
// the lexer (flag spellings, command words) so that a long-running
// interactive session does not keep one copy per typed line.
package intern

import (
	"sync"
	"unsafe"
)

// DefaultLimit caps the number of entries held by the package interner.
const DefaultLimit = 4096

// StringInterner is a goroutine-safe interner. Once it holds limit entries it
// stops growing and hands back its input unchanged.
type StringInterner struct {
	mu      sync.RWMutex
	strings map[string]string
	limit   int
	misses  int
}

// NewStringInterner returns an interner pre-sized for capacity entries.
// A limit <= 0 means unbounded.
func NewStringInterner(capacity, limit int) *StringInterner {
	if capacity <= 0 {
		capacity = 64
	}
	return &StringInterner{
		strings: make(map[string]string, capacity),
		limit:   limit,
	}
}

// Intern returns the canonical copy of s.
func (si *StringInterner) Intern(s string) string {
	si.mu.RLock()
	if v, ok := si.strings[s]; ok {
		si.mu.RUnlock()
		return v
	}
	si.mu.RUnlock()

	si.mu.Lock()
	defer si.mu.Unlock()
	if v, ok := si.strings[s]; ok {
		return v
	}
	if si.limit > 0 && len(si.strings) >= si.limit {
		si.misses++
		return s
	}
	si.strings[s] = s
	return s
}

// InternBytes interns b. The lookup does not allocate; a copy is only made
// when b is stored for the first time.
func (si *StringInterner) InternBytes(b []byte) string {
	key := unsafe.String(unsafe.SliceData(b), len(b))

	si.mu.RLock()
	if v, ok := si.strings[key]; ok {
		si.mu.RUnlock()
		return v
	}
	si.mu.RUnlock()

	return si.Intern(string(b))
}

// PreIntern seeds the interner, ignoring the limit.
func (si *StringInterner) PreIntern(values ...string) {
	si.mu.Lock()
	defer si.mu.Unlock()
	for _, s := range values {
		si.strings[s] = s
	}
}

// Size reports how many strings are held.
func (si *StringInterner) Size() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.strings)
}

// Overflow reports how many strings were refused because the limit was hit.
func (si *StringInterner) Overflow() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return si.misses
}

// Reset drops every entry.
func (si *StringInterner) Reset() {
	si.mu.Lock()
	defer si.mu.Unlock()
	clear(si.strings)
	si.misses = 0
}

// CommonSpellings are pre-interned in the package interner.
var CommonSpellings = []string{
	"help", "h", "interactive", "it", "verbose", "v", "quiet", "q",
	"force", "f", "file", "output", "o", "message", "m",
}

var global = func() *StringInterner {
	si := NewStringInterner(128, DefaultLimit)
	si.PreIntern(CommonSpellings...)
	return si
}()

// Intern interns s in the package interner.
func Intern(s string) string { return global.Intern(s) }

// InternBytes interns b in the package interner.
func InternBytes(b []byte) string { return global.InternBytes(b) }

// Size reports the package interner size.
func Size() int { return global.Size() }
