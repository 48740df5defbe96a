// Package testkit provides testing helpers
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic asserts that fn does not panic
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle. If not, writes haystack to a temp file for debugging
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, dump(t, haystack))
	}
}

// MustLines asserts that got and want hold the same lines and reports the
// first line that differs
func MustLines(t *testing.T, got, want []string) {
	t.Helper()
	n := min(len(got), len(want))
	for i := range n {
		if got[i] != want[i] {
			t.Fatalf("line %d:\n got %q\nwant %q\n\nfull output written to %s", i, got[i], want[i], dump(t, strings.Join(got, "\n")))
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d\n\nfull output written to %s", len(got), len(want), dump(t, strings.Join(got, "\n")))
	}
}

func dump(t *testing.T, s string) string {
	path := filepath.Join(t.TempDir(), "test_output.txt")
	_ = os.WriteFile(path, []byte(s), 0o600)
	return path
}
