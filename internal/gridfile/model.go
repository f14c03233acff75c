package gridfile

import "github.com/hashicorp/hcl/v2"

// Grid is the loaded, declaration-ordered set of task definitions.
type Grid struct {
	Tasks []*Task
}

// Task is one task block from a grid file.
type Task struct {
	Name string
	Fn   string
	// Args holds the unevaluated argument expressions from the args
	// tuple, in declared order. Empty for a zero-argument task.
	Args []hcl.Expression
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}
