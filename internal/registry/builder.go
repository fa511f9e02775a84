package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/opreg/internal/ctxlog"
)

// DuplicatePolicy decides what happens when a signature is registered twice
// under the same name and category.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the last registration.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateFirstWins keeps the first registration.
	DuplicateFirstWins
	// DuplicateReject rejects the second registration.
	DuplicateReject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateOverwrite:
		return "overwrite"
	case DuplicateFirstWins:
		return "first"
	case DuplicateReject:
		return "error"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseDuplicatePolicy maps "overwrite", "first" or "error" onto a policy.
// The empty string means DuplicateOverwrite.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return DuplicateOverwrite, nil
	case "first":
		return DuplicateFirstWins, nil
	case "error":
		return DuplicateReject, nil
	default:
		return DuplicateOverwrite, fmt.Errorf("unknown duplicate policy %q: must be 'overwrite', 'first', or 'error'", s)
	}
}

// Option configures a Builder.
type Option func(*Builder)

// WithDuplicatePolicy sets the re-registration policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithFallbackObserver registers fn to be called for every generic
// fallback taken by Resolve on the built registry.
func WithFallbackObserver(fn func(Fallback)) Option {
	return func(b *Builder) { b.diag.observer = fn }
}

// Builder collects registrations during startup. It is not safe for
// concurrent use; callers serialize Register calls.
type Builder struct {
	ctx    context.Context
	calls  map[string]*OverloadSet
	guards map[string]*OverloadSet
	policy DuplicatePolicy
	diag   *diagnostics
	built  bool
}

// NewBuilder returns an empty builder. The logger in ctx is used for
// registration logs and, after Build, for fallback diagnostics.
func NewBuilder(ctx context.Context, opts ...Option) *Builder {
	b := &Builder{
		ctx:    ctx,
		calls:  make(map[string]*OverloadSet),
		guards: make(map[string]*OverloadSet),
		diag:   &diagnostics{logger: ctxlog.FromContext(ctx)},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds d to the overload set of d.Name in category c, creating the
// set on first use.
func (b *Builder) Register(c Category, d *Descriptor) error {
	if b.built {
		return ErrFrozen
	}
	if c != Call && c != Guard {
		return fmt.Errorf("invalid descriptor %q: unknown %s", d.Name, c)
	}
	if err := d.validate(); err != nil {
		return err
	}

	logger := ctxlog.FromContext(b.ctx)
	ns := b.calls
	if c == Guard {
		ns = b.guards
	}

	set, ok := ns[d.Name]
	if !ok {
		set = newOverloadSet(d.Name, c, b.diag)
		ns[d.Name] = set
	}

	if existing, dup := set.Lookup(d.Params); dup {
		switch b.policy {
		case DuplicateReject:
			return &DuplicateError{Category: c, Existing: existing, Incoming: d}
		case DuplicateFirstWins:
			logger.Debug("Ignoring re-registration, first registration wins.",
				"category", c.String(), "operation", d.Name, "signature", d.Params.String(),
				"kept", existing.Qualified(), "ignored", d.Qualified())
			return nil
		default:
			logger.Debug("Overwriting registration.",
				"category", c.String(), "operation", d.Name, "signature", d.Params.String(),
				"replaced", existing.Qualified(), "by", d.Qualified())
		}
	}

	set.put(d)
	logger.Debug("Registered native implementation.",
		"category", c.String(), "operation", d.Name, "signature", d.Params.String(), "impl", d.Qualified())
	return nil
}

// Build freezes the builder and returns the registry. Later calls to
// Register fail with ErrFrozen.
func (b *Builder) Build() *Registry {
	b.built = true
	ctxlog.FromContext(b.ctx).Debug("Registry built.", "calls", len(b.calls), "guards", len(b.guards))
	return &Registry{
		calls:  b.calls,
		guards: b.guards,
	}
}
