package environment

import (
	"fmt"
	"sort"
)

// RawName is the reserved backend selector for the raw backend
const RawName = "raw"

// StructuredFactory constructs a structured backend from a Config
type StructuredFactory func(Config) (Structured, error)

// RawFactory constructs the raw backend from a Config
type RawFactory func(Config) (Raw, error)

var (
	structuredFactories = make(map[string]StructuredFactory)
	rawFactory          RawFactory
)

// Register makes a structured backend available to New under the given
// name. Register panics if the name is the reserved raw selector, the
// factory is nil, or the name was already registered.
func Register(name string, f StructuredFactory) {
	if name == RawName {
		panic(fmt.Sprintf("register: %q is reserved for the raw backend",
			RawName))
	}
	if f == nil {
		panic(fmt.Sprintf("register: nil factory for environment %q", name))
	}
	if _, dup := structuredFactories[name]; dup {
		panic(fmt.Sprintf("register: environment %q registered twice", name))
	}
	structuredFactories[name] = f
}

// RegisterRaw makes a raw backend available to New under the reserved
// RawName selector. RegisterRaw panics if called twice or with a nil
// factory.
func RegisterRaw(f RawFactory) {
	if f == nil {
		panic("registerRaw: nil factory")
	}
	if rawFactory != nil {
		panic("registerRaw: raw backend registered twice")
	}
	rawFactory = f
}

// Names returns the sorted names of all registered structured backends
func Names() []string {
	names := make([]string, 0, len(structuredFactories))
	for name := range structuredFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the Adapter selected by cfg.Name. The adapter kind is
// fixed for the lifetime of the run.
//
// For structured backends a configured seed is applied once, before
// the first reset; selecting a seed for a backend that does not
// implement Seeder is an error. For the raw backend the seed is
// ignored, matching its contract.
func New(cfg Config) (Adapter, error) {
	if cfg.Name == RawName {
		if rawFactory == nil {
			return nil, fmt.Errorf("new: no raw backend registered")
		}

		backend, err := rawFactory(cfg)
		if err != nil {
			return nil, fmt.Errorf("new: could not create raw backend: %v",
				err)
		}
		return newRawAdapter(backend), nil
	}

	factory, ok := structuredFactories[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("new: no such environment %q, registered "+
			"environments: %v", cfg.Name, Names())
	}

	backend, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("new: could not create environment %q: %v",
			cfg.Name, err)
	}

	if cfg.Seed != nil {
		seeder, ok := backend.(Seeder)
		if !ok {
			backend.Close()
			return nil, fmt.Errorf("new: environment %q does not support "+
				"seeding", cfg.Name)
		}
		if err := seeder.Seed(*cfg.Seed); err != nil {
			backend.Close()
			return nil, fmt.Errorf("new: could not seed environment %q: %v",
				cfg.Name, err)
		}
	}

	return newStructuredAdapter(backend)
}
