// Package print provides the print built-in.
package print

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/opreg/internal/registrar"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registrar.Module interface for this package.
type Module struct {
	// Out receives printed values. Nil means os.Stdout.
	Out io.Writer
}

// Name implements registrar.Module.
func (m *Module) Name() string { return "print" }

func (m *Module) out() io.Writer {
	if m.Out == nil {
		return os.Stdout
	}
	return m.Out
}

// Print writes v as JSON, or a placeholder for null and unknown values,
// and returns it.
func (m *Module) Print(v cty.Value) (cty.Value, error) {
	switch {
	case !v.IsWhollyKnown():
		fmt.Fprintln(m.out(), "(unknown)")
	case v.IsNull():
		fmt.Fprintln(m.out(), "(null)")
	default:
		b, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to print value: %w", err)
		}
		fmt.Fprintln(m.out(), string(b))
	}
	return v, nil
}

// PrintString writes s without quoting.
func (m *Module) PrintString(s string) string {
	fmt.Fprintln(m.out(), s)
	return s
}

// Register registers the handlers and the manifest declaring them.
func (m *Module) Register(r *registrar.Registrar) {
	r.Handle("Print", m.Print)
	r.Handle("PrintString", m.PrintString)
	r.Manifest("print/manifest.hcl", manifest)
}
