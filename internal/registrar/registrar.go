package registrar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/opreg/internal/config"
	"github.com/specialistvlad/opreg/internal/ctxlog"
	"github.com/specialistvlad/opreg/internal/manifest"
	"github.com/specialistvlad/opreg/internal/registry"
	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface every provider of native implementations
// implements to be registered.
type Module interface {
	// Name identifies the provider in descriptors and logs.
	Name() string
	// Register declares the provider's handlers and natives.
	Register(r *Registrar)
}

// Declaration is one declared native implementation.
type Declaration struct {
	// Name is the operation name. Empty means "derive it from Ident".
	Name string
	// Category selects the call or guard namespace.
	Category registry.Category
	// Ident is the implementation's own identifier.
	Ident string
	// Params are the parameter types, in order.
	Params []cty.Type
	// Result is the result type.
	Result cty.Type
	// Impl is the callable. When nil it is bound to the handler registered
	// under Ident.
	Impl any
	// Source locates the declaration for error messages.
	Source string

	provider string
	category string
}

type handler struct {
	provider string
	impl     any
}

// Registrar collects handlers and declarations from modules. It is used once
// per registry and is not safe for concurrent use.
type Registrar struct {
	ctx      context.Context
	provider string
	handlers map[string]*handler
	used     map[string]bool
	decls    []*Declaration
	errs     []string
}

// New creates an empty registrar logging through the logger in ctx.
func New(ctx context.Context) *Registrar {
	return &Registrar{
		ctx:      ctx,
		handlers: make(map[string]*handler),
		used:     make(map[string]bool),
	}
}

// Load asks each module, in order, to register itself.
func (r *Registrar) Load(modules ...Module) {
	logger := ctxlog.FromContext(r.ctx)
	for _, mod := range modules {
		r.provider = mod.Name()
		mod.Register(r)
		logger.Debug("Provider module registered.", "provider", r.provider)
	}
	r.provider = ""
	logger.Debug("All provider modules registered.", "count", len(modules), "handlers", len(r.handlers))
}

// Handle registers impl under ident for the module currently registering.
// Identifiers are global across providers.
func (r *Registrar) Handle(ident string, impl any) {
	if existing, exists := r.handlers[ident]; exists {
		r.errs = append(r.errs, fmt.Sprintf("handler '%s' registered by both '%s' and '%s'", ident, existing.provider, r.provider))
		return
	}
	if impl == nil {
		r.errs = append(r.errs, fmt.Sprintf("handler '%s' of '%s' is nil", ident, r.provider))
		return
	}
	ctxlog.FromContext(r.ctx).Debug("Registering handler.", "provider", r.provider, "ident", ident)
	r.handlers[ident] = &handler{provider: r.provider, impl: impl}
}

// Declare adds a declaration spelled out in Go.
func (r *Registrar) Declare(d Declaration) {
	d.provider = r.provider
	if d.Source == "" {
		d.Source = fmt.Sprintf("%s:%s", r.provider, d.Ident)
	}
	r.decls = append(r.decls, &d)
}

// Manifest parses a declaration manifest and queues its natives. Parse
// errors surface from Populate.
func (r *Registrar) Manifest(filename string, src []byte) {
	model, err := manifest.Parse(r.ctx, filename, src)
	if err != nil {
		r.errs = append(r.errs, err.Error())
		return
	}
	r.AddModel(model)
}

// AddModel queues the natives of an already loaded model. External manifests
// are added after modules so that they can re-declare module signatures.
func (r *Registrar) AddModel(model *config.Model) {
	for _, n := range model.Natives {
		r.decls = append(r.decls, &Declaration{
			Name:     n.Name,
			Ident:    n.Ident,
			Params:   n.Params,
			Result:   n.Result,
			Source:   n.Source,
			provider: r.provider,
			category: n.Category,
		})
	}
}

// Populate validates all queued declarations and registers them with b in
// the order they were declared. Every problem found is reported in a single
// error; nothing is registered unless validation passes.
func (r *Registrar) Populate(b *registry.Builder) error {
	logger := ctxlog.FromContext(r.ctx)

	errs := append([]string(nil), r.errs...)
	descriptors := make([]*registry.Descriptor, 0, len(r.decls))
	categories := make([]registry.Category, 0, len(r.decls))

	for _, d := range r.decls {
		desc, category, err := r.bind(d)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", d.Source, err))
			continue
		}
		descriptors = append(descriptors, desc)
		categories = append(categories, category)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registrar validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	for i, desc := range descriptors {
		if err := b.Register(categories[i], desc); err != nil {
			return fmt.Errorf("failed to register native '%s': %w", desc.Qualified(), err)
		}
	}

	for _, ident := range r.unusedHandlers() {
		logger.Warn("Handler is not referenced by any declaration.", "ident", ident, "provider", r.handlers[ident].provider)
	}

	logger.Debug("Registrar populated registry.", "natives", len(descriptors))
	return nil
}

// bind resolves a declaration's name, category and implementation.
func (r *Registrar) bind(d *Declaration) (*registry.Descriptor, registry.Category, error) {
	if d.Ident == "" {
		return nil, 0, fmt.Errorf("declaration has no implementation identifier")
	}

	category := d.Category
	if d.category != "" {
		c, err := registry.ParseCategory(d.category)
		if err != nil {
			return nil, 0, fmt.Errorf("native '%s': %w", d.Ident, err)
		}
		category = c
	}

	name := d.Name
	if name == "" {
		name = DefaultName(d.Ident)
	}

	impl, provider := d.Impl, d.provider
	if impl == nil {
		h, ok := r.handlers[d.Ident]
		if !ok {
			return nil, 0, fmt.Errorf("native '%s' declares a handler that is not registered by any module", d.Ident)
		}
		impl, provider = h.impl, h.provider
		r.used[d.Ident] = true
	}

	if d.Result == cty.NilType {
		return nil, 0, fmt.Errorf("native '%s' has no result type", d.Ident)
	}
	for i, p := range d.Params {
		if p == cty.NilType {
			return nil, 0, fmt.Errorf("native '%s': parameter %d has no type", d.Ident, i)
		}
	}
	if err := checkParity(impl, d.Params, d.Result); err != nil {
		return nil, 0, fmt.Errorf("native '%s' does not match its handler: %w", d.Ident, err)
	}

	return &registry.Descriptor{
		Name:     name,
		Ident:    d.Ident,
		Provider: provider,
		Params:   signature.Of(d.Params...),
		Result:   d.Result,
		Impl:     impl,
	}, category, nil
}

func (r *Registrar) unusedHandlers() []string {
	var unused []string
	for ident := range r.handlers {
		if !r.used[ident] {
			unused = append(unused, ident)
		}
	}
	sort.Strings(unused)
	return unused
}
