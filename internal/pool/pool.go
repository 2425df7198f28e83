// Package pool recycles the short-lived buffers created on every parse:
// token slices, help-rendering buffers and middleware request records.
package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// Pool is a typed wrapper around sync.Pool with an optional reset hook that
// runs before an object is handed out again.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)

	gets atomic.Int64
	news atomic.Int64
	puts atomic.Int64
}

// NewPool creates a pool that builds fresh objects with factory.
func NewPool[T any](factory func() *T) *Pool[T] {
	p := &Pool[T]{}
	p.pool.New = func() any {
		p.news.Add(1)
		return factory()
	}
	return p
}

// NewPoolWithReset creates a pool whose objects are passed to reset on Get.
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get returns a pooled or freshly built object.
func (p *Pool[T]) Get() *T {
	p.gets.Add(1)
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put hands obj back. Nil is ignored.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.puts.Add(1)
	p.pool.Put(obj)
}

// Stats is a snapshot of pool counters.
type Stats struct {
	Gets int64
	News int64
	Puts int64
}

// Stats returns the pool counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{Gets: p.gets.Load(), News: p.news.Load(), Puts: p.puts.Load()}
}

// SlicePool recycles slices of E. Slices that grew past maxCap are dropped on
// Put so one huge invocation does not pin memory forever.
type SlicePool[E any] struct {
	p      *Pool[[]E]
	maxCap int
}

// NewSlicePool returns a pool of slices pre-sized to initialCap.
func NewSlicePool[E any](initialCap, maxCap int) *SlicePool[E] {
	return &SlicePool[E]{
		p: NewPoolWithReset(
			func() *[]E {
				s := make([]E, 0, initialCap)
				return &s
			},
			func(s *[]E) {
				clear(*s)
				*s = (*s)[:0]
			},
		),
		maxCap: maxCap,
	}
}

// Get returns an empty slice.
func (sp *SlicePool[E]) Get() *[]E { return sp.p.Get() }

// Put returns s to the pool unless it is oversized.
func (sp *SlicePool[E]) Put(s *[]E) {
	if s == nil || (sp.maxCap > 0 && cap(*s) > sp.maxCap) {
		return
	}
	sp.p.Put(s)
}

// Stats returns the underlying pool counters.
func (sp *SlicePool[E]) Stats() Stats { return sp.p.Stats() }

const maxBufferCap = 64 << 10

var buffers = NewPoolWithReset(
	func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 1024)) },
	func(b *bytes.Buffer) { b.Reset() },
)

// GetBuffer returns an empty buffer from the package pool.
func GetBuffer() *bytes.Buffer { return buffers.Get() }

// PutBuffer returns b to the package pool.
func PutBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxBufferCap {
		return
	}
	buffers.Put(b)
}
