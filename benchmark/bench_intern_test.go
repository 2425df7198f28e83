//nolint:testpackage // imports internal packages of the module
package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-zcli/internal/intern"
)

// Category: intern

var internWords = []string{"verbose", "message", "help", "limit", "json", "csv"}

func BenchmarkStringInterner_Intern(b *testing.B) {
	interner := intern.NewStringInterner(0, intern.DefaultLimit)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.Intern(internWords[i%len(internWords)])
	}
}

func BenchmarkStringInterner_InternBytes(b *testing.B) {
	interner := intern.NewStringInterner(0, intern.DefaultLimit)
	words := make([][]byte, len(internWords))
	for i, w := range internWords {
		words[i] = []byte(w)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.InternBytes(words[i%len(words)])
	}
}

func BenchmarkStringInterner_Full(b *testing.B) {
	interner := intern.NewStringInterner(1, 1)
	interner.Intern("first")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.Intern(internWords[i%len(internWords)])
	}
}

func BenchmarkGlobalIntern(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			intern.Intern(internWords[i%len(internWords)])
			i++
		}
	})
}
