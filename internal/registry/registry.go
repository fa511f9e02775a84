package registry

import (
	"log/slog"
	"sort"

	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/zclconf/go-cty/cty"
)

// Fallback describes a resolution that degraded from an exact signature to
// the generic implementation. It is a diagnostic, not an error.
type Fallback struct {
	Category  Category
	Requested *signature.Signature
	Using     *Descriptor
}

// diagnostics is shared by every overload set of one registry.
type diagnostics struct {
	logger   *slog.Logger
	observer func(Fallback)
}

func (d *diagnostics) fallback(f Fallback) {
	if d == nil {
		return
	}
	if d.logger != nil {
		d.logger.Warn("Missed specialization, using generic implementation.",
			"category", f.Category.String(),
			"operation", f.Using.Name,
			"arity", f.Requested.Arity(),
			"requested", f.Requested.String(),
			"using", f.Using.String(),
		)
	}
	if d.observer != nil {
		d.observer(f)
	}
}

// Registry is the frozen result of a Builder. It is never mutated, so any
// number of goroutines may query it concurrently.
type Registry struct {
	calls  map[string]*OverloadSet
	guards map[string]*OverloadSet
}

func (r *Registry) namespace(c Category) map[string]*OverloadSet {
	if c == Guard {
		return r.guards
	}
	return r.calls
}

// Set returns the overload set registered for name in category.
func (r *Registry) Set(name string, c Category) (*OverloadSet, bool) {
	s, ok := r.namespace(c)[name]
	return s, ok
}

func (r *Registry) set(name string, sig *signature.Signature, guard bool) (*OverloadSet, error) {
	c := CategoryOf(guard)
	s, ok := r.Set(name, c)
	if !ok {
		return nil, &UnknownOperationError{Name: name, Arity: sig.Arity(), Category: c}
	}
	return s, nil
}

// Resolve returns the native implementation a call to name with static
// parameter types sig binds to. guard selects the guard namespace.
//
// An absent name fails with an UnknownOperationError. A present name with no
// candidate at sig or sig.Generic() fails with an UnresolvedOverloadError.
// Binding to the generic candidate logs a warning and notifies the fallback
// observer.
func (r *Registry) Resolve(name string, sig *signature.Signature, guard bool) (*Descriptor, error) {
	if sig == nil {
		sig = signature.Of()
	}
	s, err := r.set(name, sig, guard)
	if err != nil {
		return nil, err
	}
	return s.Resolve(sig)
}

// ResultType returns the static result type of the call Resolve would bind.
// Unlike Resolve it does not report a generic fallback.
func (r *Registry) ResultType(name string, sig *signature.Signature, guard bool) (cty.Type, error) {
	if sig == nil {
		sig = signature.Of()
	}
	s, err := r.set(name, sig, guard)
	if err != nil {
		return cty.NilType, err
	}
	return s.ResultType(sig)
}

// Operations lists the names registered in category, sorted.
func (r *Registry) Operations(c Category) []string {
	ns := r.namespace(c)
	names := make([]string, 0, len(ns))
	for name := range ns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overloads lists the candidates of name in category; nil when absent.
func (r *Registry) Overloads(name string, c Category) []*Descriptor {
	s, ok := r.Set(name, c)
	if !ok {
		return nil
	}
	return s.Candidates()
}

// Len is the number of operation names in category.
func (r *Registry) Len(c Category) int {
	return len(r.namespace(c))
}
