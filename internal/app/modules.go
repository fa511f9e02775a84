package app

import (
	"github.com/specialistvlad/opreg/internal/registrar"
	"github.com/specialistvlad/opreg/modules/arith"
	"github.com/specialistvlad/opreg/modules/compare"
	"github.com/specialistvlad/opreg/modules/env_vars"
	"github.com/specialistvlad/opreg/modules/print"
	"github.com/specialistvlad/opreg/modules/typecheck"
)

// CoreModules is the definitive list of provider modules compiled into the
// binary, in registration order.
var CoreModules = []registrar.Module{
	&arith.Module{},
	&compare.Module{},
	&typecheck.Module{},
	&env_vars.Module{},
	&print.Module{},
}
