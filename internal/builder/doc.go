// Package builder translates a loaded grid model into scheduler
// registrations.
//
// The translation assigns task ids in declaration order, classifies every
// argument expression as either a task reference or a literal, evaluates
// literals with a small cty function table, and registers each task's
// builtin computation with the scheduler. The builder also keeps the
// name-to-id index the outer layers use, since the scheduler itself knows
// tasks only by id.
//
// The builder validates grid input up front (unknown builtins, argument
// arity, unsupported parameter types) so that malformed grid files
// surface as errors rather than tripping the scheduler's programmer-error
// panics.
package builder
