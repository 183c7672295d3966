// Package config defines the format-agnostic configuration model for the
// application, along with the core interfaces for loading project plans and
// experiment definitions from various sources.
//
// A ProjectDef is the single source of truth that the model package turns
// into a simulated project graph. Concrete loaders, such as those for HCL and
// YAML, are provided in separate packages and registered with a Registry.
package config
