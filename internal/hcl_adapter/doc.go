// Package hcl_adapter bridges the cty value system used by HCL expression
// evaluation and native Go values. The builder evaluates literal grid
// arguments into cty.Values and uses this package to turn them into the
// plain Go values the scheduler's computations take.
package hcl_adapter
