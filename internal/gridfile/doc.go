// Package gridfile loads HCL grid files into a format-agnostic model.
//
// A grid file declares tasks as top-level blocks:
//
//	task "delta" {
//	  fn   = "sub"
//	  args = [task.b_squared, task.four_ac]
//	}
//
// fn names a registered builtin; each args element is either a bare
// task.<name> reference or a literal expression. Argument expressions are
// kept unevaluated here — classifying and evaluating them is the
// builder's job. Tasks keep their declaration order: across a directory
// load, files contribute tasks in lexical path order, and that order is
// what assigns task ids downstream.
package gridfile
