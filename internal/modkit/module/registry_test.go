package module

import (
	"slices"
	"sync"
	"testing"

	kit "tgcheck/internal/platform/testkit"
)

type loginPorts struct{ Phone string }

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("session", loginPorts{Phone: "+1555"})
	Register("checker", nil)

	got, ok := PortsAs[loginPorts]("session")
	if !ok || got.Phone != "+1555" {
		t.Fatalf("PortsAs = %+v, %v", got, ok)
	}
	if _, ok := PortsAs[loginPorts]("checker"); ok {
		t.Fatal("nil ports should not assert")
	}
	if _, ok := PortsAs[int]("session"); ok {
		t.Fatal("type mismatch should fail")
	}
	if _, ok := PortsAs[loginPorts]("console"); ok {
		t.Fatal("missing name should fail")
	}
	if names := Names(); !slices.Equal(names, []string{"checker", "session"}) {
		t.Fatalf("names = %v", names)
	}

	Register("session", loginPorts{Phone: "+1666"})
	if MustPortsAs[loginPorts]("session").Phone != "+1666" {
		t.Fatal("re-register should replace")
	}
	kit.MustPanic(t, func() { MustPortsAs[loginPorts]("console") })
}

func TestRegistry_Concurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register(string(rune('a'+i)), i)
		}()
		go func() {
			defer wg.Done()
			_ = Names()
			_, _ = PortsAs[int]("a")
		}()
	}
	wg.Wait()
	if len(Names()) != 16 {
		t.Fatalf("names = %v", Names())
	}
}
