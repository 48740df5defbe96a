package module

import (
	"sort"
	"sync"
	"testing"
)

func TestRegistry_RegisterAndPortsAs(t *testing.T) {
	t.Parallel()
	g := NewRegistry()

	g.Register(fakeModule{name: "replay", ports: lister{"dcf77"}})
	got, ok := PortsAs[Lister](g, "replay")
	if !ok || got.Stations()[0] != "dcf77" {
		t.Fatalf("PortsAs = %v %v", got, ok)
	}

	if _, ok := PortsAs[Lister](g, "missing"); ok {
		t.Fatalf("missing name should not resolve")
	}
	if _, ok := PortsAs[int](g, "replay"); ok {
		t.Fatalf("type mismatch should not resolve")
	}
}

func TestRegistry_PutOverwritesAndNames(t *testing.T) {
	t.Parallel()
	g := NewRegistry()

	g.Put("meta", 1)
	g.Put("meta", 2)
	g.Put("replay", 3)

	if v, _ := PortsAs[int](g, "meta"); v != 2 {
		t.Fatalf("overwrite lost, got %d", v)
	}
	names := g.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "meta" || names[1] != "replay" {
		t.Fatalf("Names = %v", names)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	g := NewRegistry()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			g.Put("replay", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, _ = PortsAs[int](g, "replay")
		}
	}()
	wg.Wait()

	if v, ok := PortsAs[int](g, "replay"); !ok || v != n-1 {
		t.Fatalf("final value = %d %v", v, ok)
	}
}
