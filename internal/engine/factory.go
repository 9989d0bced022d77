package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates engines by registry name.
type Factory interface {
	Get(name string) (Engine, error)
	List() []string
	GetAll() map[string]Engine
	Register(name string, scheduler func() Scheduler) error
}

// DefaultFactory is a concurrency-safe Factory. Engines are created lazily
// and cached.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Scheduler
	engines  map[string]Engine
}

// NewDefaultFactory returns a factory holding the dynamic, pool and queue
// engines.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Scheduler),
		engines:  make(map[string]Engine),
	}
	f.creators["dynamic"] = func() Scheduler { return DynamicScheduler{} }
	f.creators["pool"] = func() Scheduler { return PoolScheduler{} }
	f.creators["queue"] = func() Scheduler { return QueueScheduler{} }
	return f
}

// Register adds a scheduler under name. It fails if the name is taken.
func (f *DefaultFactory) Register(name string, scheduler func() Scheduler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.creators[name]; exists {
		return fmt.Errorf("engine %q already registered", name)
	}
	f.creators[name] = scheduler
	return nil
}

// Get returns the engine registered under name.
func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	if e, ok := f.engines[name]; ok {
		f.mu.RUnlock()
		return e, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.engines[name]; ok {
		return e, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	e := NewReducer(creator())
	f.engines[name] = e
	return e, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered engine keyed by name.
func (f *DefaultFactory) GetAll() map[string]Engine {
	all := make(map[string]Engine)
	for _, name := range f.List() {
		if e, err := f.Get(name); err == nil {
			all[name] = e
		}
	}
	return all
}
