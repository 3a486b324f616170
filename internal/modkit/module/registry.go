package module

import (
	"fmt"
	"slices"
	"sync"
)

// registry of port sets by module name, filled once in main
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set of a module; a later call for the same name replaces it
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches the port set registered under name as T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// MustPortsAs is PortsAs for bootstrap code, where a missing port is a wiring bug
func MustPortsAs[T any](name string) T {
	v, ok := PortsAs[T](name)
	if !ok {
		var zero T
		panic(fmt.Sprintf("module: no %T ports registered as %q", zero, name))
	}
	return v
}

// Names lists registered modules in order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for name := range reg {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
