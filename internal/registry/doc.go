// Package registry provides the central lookup for builtin computations.
//
// The Registry stores mappings between the string identifiers used in
// grid files (e.g. "mul") and the compiled Go functions that implement
// them. Modules populate a registry at application startup; the builder
// consults it when translating grid tasks into scheduler registrations.
//
// Registration happens once, at startup, from a compiled-in module list,
// so a duplicate name is a programmer error and panics.
package registry
