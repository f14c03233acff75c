// Package repl implements the interactive session: an HCL-speaking shell
// over one live scheduler. Task blocks typed at the prompt are translated
// by the builder exactly as grid files are, and colon commands probe and
// drive the graph. Evaluation errors never terminate the session, and a
// failed task may simply be evaluated again.
package repl
