package intern

import (
	"sync"
	"testing"
	"unsafe"
)

func TestStringInterner_Intern(t *testing.T) {
	si := NewStringInterner(0, 0)

	a := si.Intern(string([]byte("verbose")))
	b := si.Intern(string([]byte("verbose")))
	if unsafe.StringData(a) != unsafe.StringData(b) {
		t.Errorf("Intern returned distinct copies for equal input")
	}
	if got := si.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestStringInterner_InternBytesCopies(t *testing.T) {
	si := NewStringInterner(0, 0)

	buf := []byte("file")
	s := si.InternBytes(buf)
	buf[0] = 'X'

	if s != "file" {
		t.Errorf("InternBytes result changed with its source buffer: %q", s)
	}
	if again := si.InternBytes([]byte("file")); again != "file" {
		t.Errorf("InternBytes(file) = %q", again)
	}
}

func TestStringInterner_Limit(t *testing.T) {
	si := NewStringInterner(0, 2)

	si.Intern("a")
	si.Intern("b")
	if got := si.Intern("c"); got != "c" {
		t.Errorf("Intern over limit = %q, want input back", got)
	}
	if got := si.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
	if got := si.Overflow(); got != 1 {
		t.Errorf("Overflow() = %d, want 1", got)
	}

	si.Reset()
	if si.Size() != 0 || si.Overflow() != 0 {
		t.Errorf("Reset left size=%d overflow=%d", si.Size(), si.Overflow())
	}
}

func TestStringInterner_PreInternIgnoresLimit(t *testing.T) {
	si := NewStringInterner(0, 1)
	si.PreIntern("x", "y", "z")
	if got := si.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
}

func TestStringInterner_Concurrent(t *testing.T) {
	si := NewStringInterner(0, 0)

	const workers = 32
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				si.Intern("concurrent")
				si.InternBytes([]byte("bytes"))
			}
		}()
	}
	wg.Wait()

	if got := si.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
}

func TestPackageInterner(t *testing.T) {
	for _, s := range CommonSpellings {
		if got := Intern(s); got != s {
			t.Errorf("Intern(%q) = %q", s, got)
		}
	}
	if Size() < len(CommonSpellings) {
		t.Errorf("Size() = %d, want at least %d", Size(), len(CommonSpellings))
	}
}
