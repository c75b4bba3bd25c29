package multiply

import (
	"fmt"
	"sort"
	"sync"
)

// Factory resolves engines by name.
type Factory interface {
	// Get returns the shared engine registered under name.
	Get(name string) (Engine, error)
	// List returns the registered names in sorted order.
	List() []string
}

// DefaultFactory is a concurrency-safe engine registry that builds each
// engine lazily and caches it.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() CoreEngine
	engines  map[string]Engine
}

// NewDefaultFactory returns a registry holding the ntt, schoolbook, bigint
// and auto engines.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() CoreEngine),
		engines:  make(map[string]Engine),
	}
	_ = f.Register(EngineNTT, func() CoreEngine { return &Multiplier{} })
	_ = f.Register(EngineSchoolbook, func() CoreEngine { return Schoolbook{} })
	_ = f.Register(EngineBigInt, func() CoreEngine { return BigInt{} })
	_ = f.Register(EngineAuto, func() CoreEngine { return &Auto{} })
	return f
}

// Register adds or replaces the engine built by creator under name.
func (f *DefaultFactory) Register(name string, creator func() CoreEngine) error {
	if name == "" || creator == nil {
		return fmt.Errorf("invalid engine registration %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.engines, name)
	return nil
}

// Get implements Factory.
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
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	e := NewEngine(creator())
	f.engines[name] = e
	return e, nil
}

// List implements Factory.
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

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide registry.
func GlobalFactory() *DefaultFactory { return globalFactory }

// RegisterEngine adds an engine to the process-wide registry.
func RegisterEngine(name string, creator func() CoreEngine) error {
	return globalFactory.Register(name, creator)
}
