package module

import (
	"slices"
	"sync"
)

// process wide registry filled while the API is mounted
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the ports of a mounted module under its name
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs fetches and type asserts a registered port set
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Names lists registered modules in sorted order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for k := range reg {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Reset clears the registry; tests only
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
