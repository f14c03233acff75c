package app

import (
	"io"

	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/modules/arith"
	"github.com/vk/taskgridgo/modules/env_vars"
	"github.com/vk/taskgridgo/modules/print"
	"github.com/vk/taskgridgo/modules/text"
)

// coreModules is the definitive list of all modules that are compiled
// into the taskgridgo binary. The print module writes to the
// application's output writer.
func coreModules(outW io.Writer) []registry.Module {
	return []registry.Module{
		&arith.Module{},
		&text.Module{},
		&env_vars.Module{},
		&print.Module{Out: outW},
	}
}
