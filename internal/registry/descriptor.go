package registry

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/zclconf/go-cty/cty"
)

// Category selects the namespace an operation is registered in.
type Category int

const (
	// Call is the namespace of ordinary call sites.
	Call Category = iota
	// Guard is the namespace of guard expressions.
	Guard
)

func (c Category) String() string {
	switch c {
	case Call:
		return "call"
	case Guard:
		return "guard"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory maps the manifest spelling onto a Category. The empty string
// means Call.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "call":
		return Call, nil
	case "guard":
		return Guard, nil
	default:
		return Call, fmt.Errorf("unknown category %q: must be 'call' or 'guard'", s)
	}
}

// CategoryOf returns Guard when guard is set and Call otherwise.
func CategoryOf(guard bool) Category {
	if guard {
		return Guard
	}
	return Call
}

// Descriptor is one native implementation of an operation.
type Descriptor struct {
	// Name is the symbolic operation name call sites use.
	Name string
	// Ident is the implementation's own identifier within its provider.
	Ident string
	// Provider names the module that supplied the implementation.
	Provider string
	// Params is the parameter signature the implementation accepts.
	Params *signature.Signature
	// Result is the static result type.
	Result cty.Type
	// Impl is the provider's callable. The registry never inspects it.
	Impl any
}

// String renders the descriptor as "add(int, int) -> int [arith.AddInts]".
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s%s -> %s [%s]", d.Name, d.Params, optype.Name(d.Result), d.Qualified())
}

// Qualified returns "provider.Ident", or just Ident without a provider.
func (d *Descriptor) Qualified() string {
	if d.Provider == "" {
		return d.Ident
	}
	return d.Provider + "." + d.Ident
}

func (d *Descriptor) validate() error {
	var problems []string
	if d.Name == "" {
		problems = append(problems, "name is empty")
	}
	if d.Params == nil {
		problems = append(problems, "parameter signature is missing")
	} else {
		for i := 0; i < d.Params.Arity(); i++ {
			if d.Params.Slot(i) == cty.NilType {
				problems = append(problems, fmt.Sprintf("parameter %d has no type", i))
			}
		}
	}
	if d.Result == cty.NilType {
		problems = append(problems, "result type is missing")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid descriptor %q: %s", d.Name, strings.Join(problems, ", "))
	}
	return nil
}
