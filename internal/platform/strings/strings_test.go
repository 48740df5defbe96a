package strings

import (
	"reflect"
	"testing"

	kit "rdtlog/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("nil -> %v", got)
	}
	if got := IfEmpty([]string{}, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("empty -> %v", got)
	}
	in := []string{"OPTIONS"}
	if got := IfEmpty(in, def); !reflect.DeepEqual(got, in) {
		t.Fatalf("non-empty -> %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("replay", "name"); got != "replay" {
		t.Fatalf("got %q", got)
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"replay":     "/replay",
		"/replay/":   "/replay",
		" /meta ":    "/meta",
		"replay/sub": "/replay/sub",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix("/") })
	kit.MustPanic(t, func() { MustPrefix("  ") })
}
