// Package registry provides a global registry for level layout factories.
// Layouts register themselves in init() functions, allowing the engine and
// the CLI to discover them by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/brick-breaker/internal/config"
)

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	ID     string
	Title  string
	Rows   int
	Bricks int
}

// Factory is a function that builds a fresh layout descriptor.
type Factory func() config.Level

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a layout factory to the registry.
// Typically called from an init() function.
// Panics if a layout with the same ID is already registered or if the
// factory produces an invalid descriptor.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", id))
	}
	if err := f().Validate(); err != nil {
		panic(fmt.Sprintf("registry: layout %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered layouts, sorted by ID.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(factories))
	for id, f := range factories {
		l := f()
		result = append(result, LayoutInfo{
			ID:     id,
			Title:  titles[id],
			Rows:   l.Rows(),
			Bricks: l.Bricks(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a layout by its ID.
// Returns an error if the layout ID is not registered.
func Create(id string) (config.Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return config.Level{}, fmt.Errorf("registry: unknown layout %q", id)
	}

	l := f()
	if l.Name == "" {
		l.Name = id
	}
	return l, nil
}

// Exists checks if a layout with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
