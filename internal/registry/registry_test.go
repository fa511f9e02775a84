package registry_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/specialistvlad/opreg/internal/registry"
	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/specialistvlad/opreg/internal/testutil"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// native is a test helper that builds a descriptor for name at params.
func native(name, ident string, result cty.Type, params ...cty.Type) *registry.Descriptor {
	return &registry.Descriptor{
		Name:     name,
		Ident:    ident,
		Provider: "test",
		Params:   signature.Of(params...),
		Result:   result,
		Impl:     ident,
	}
}

// fallbackRecorder collects the fallbacks reported by a registry.
type fallbackRecorder struct {
	mu   sync.Mutex
	seen []registry.Fallback
}

func (r *fallbackRecorder) observe(f registry.Fallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, f)
}

func (r *fallbackRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

// buildAdd registers the three 'add' call candidates used across tests.
func buildAdd(t *testing.T, ctx context.Context, rec *fallbackRecorder) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder(ctx, registry.WithFallbackObserver(rec.observe))
	require.NoError(t, b.Register(registry.Call, native("add", "AddInts", optype.Int, optype.Int, optype.Int)))
	require.NoError(t, b.Register(registry.Call, native("add", "AddDoubles", optype.Double, optype.Double, optype.Double)))
	require.NoError(t, b.Register(registry.Call, native("add", "Add", optype.Dynamic, optype.Dynamic, optype.Dynamic)))
	return b.Build()
}

func TestRegistry_EndToEndAdd(t *testing.T) {
	ctx, logs := testutil.LogContext(t)
	rec := &fallbackRecorder{}
	reg := buildAdd(t, ctx, rec)

	result, err := reg.ResultType("add", signature.Of(optype.Int, optype.Int), false)
	require.NoError(t, err)
	require.True(t, optype.Int.Equals(result))
	require.Zero(t, rec.count())

	d, err := reg.Resolve("add", signature.Of(optype.Int, optype.Double), false)
	require.NoError(t, err)
	require.Equal(t, "Add", d.Ident)
	require.True(t, d.Params.IsGeneric())
	require.Equal(t, 1, rec.count())
	require.Contains(t, logs.String(), "Missed specialization")
	require.Contains(t, logs.String(), "requested=\"(int, double)\"")
}

func TestRegistry_ExactMatchHasNoDiagnostic(t *testing.T) {
	ctx, logs := testutil.LogContext(t)
	rec := &fallbackRecorder{}
	reg := buildAdd(t, ctx, rec)

	d, err := reg.Resolve("add", signature.Of(optype.Double, optype.Double), false)
	require.NoError(t, err)
	require.Equal(t, "AddDoubles", d.Ident)

	d, err = reg.Resolve("add", signature.Of(optype.Dynamic, optype.Dynamic), false)
	require.NoError(t, err)
	require.Equal(t, "Add", d.Ident)

	require.Zero(t, rec.count())
	require.NotContains(t, logs.String(), "Missed specialization")
}

func TestRegistry_GenericOnlyFallsBack(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	rec := &fallbackRecorder{}
	b := registry.NewBuilder(ctx, registry.WithFallbackObserver(rec.observe))
	generic := signature.Of(cty.String, cty.Bool).Generic()
	require.NoError(t, b.Register(registry.Call, &registry.Descriptor{
		Name: "element", Ident: "Element", Params: generic, Result: optype.Dynamic,
	}))
	reg := b.Build()

	requested := signature.Of(optype.Int, cty.List(cty.Number))
	d, err := reg.Resolve("element", requested, false)
	require.NoError(t, err)
	require.Equal(t, "Element", d.Ident)

	require.Equal(t, 1, rec.count())
	f := rec.seen[0]
	require.Equal(t, registry.Call, f.Category)
	require.Same(t, requested, f.Requested)
	require.Same(t, d, f.Using)
}

// ResultType deliberately reports no fallback, unlike Resolve.
func TestRegistry_ResultTypeFallbackIsSilent(t *testing.T) {
	ctx, logs := testutil.LogContext(t)
	rec := &fallbackRecorder{}
	reg := buildAdd(t, ctx, rec)

	result, err := reg.ResultType("add", signature.Of(optype.Int, optype.Double), false)
	require.NoError(t, err)
	require.True(t, optype.IsDynamic(result))
	require.Zero(t, rec.count())
	require.NotContains(t, logs.String(), "Missed specialization")
}

func TestRegistry_UnknownOperation(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	reg := buildAdd(t, ctx, &fallbackRecorder{})

	_, err := reg.Resolve("nonexistent_op", signature.Of(optype.Int, optype.Int), false)
	require.ErrorIs(t, err, registry.ErrUnknownOperation)
	require.NotErrorIs(t, err, registry.ErrUnresolvedOverload)

	var unknown *registry.UnknownOperationError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "nonexistent_op", unknown.Name)
	require.Equal(t, 2, unknown.Arity)
	require.Equal(t, "no call operation named 'nonexistent_op'/2", err.Error())

	_, err = reg.ResultType("nonexistent_op", signature.Of(), false)
	require.ErrorIs(t, err, registry.ErrUnknownOperation)
}

func TestRegistry_UnresolvedOverload(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	b := registry.NewBuilder(ctx)
	require.NoError(t, b.Register(registry.Call, native("add", "AddDoubles", optype.Double, optype.Double, optype.Double)))
	reg := b.Build()

	sig := signature.Of(optype.Int, optype.Int)
	_, err := reg.Resolve("add", sig, false)
	require.ErrorIs(t, err, registry.ErrUnresolvedOverload)

	var unresolved *registry.UnresolvedOverloadError
	require.True(t, errors.As(err, &unresolved))
	require.Equal(t, "add", unresolved.Name)
	require.Same(t, sig, unresolved.Signature)
	require.Equal(t, "no call overload of 'add'/2 accepts (int, int)", err.Error())

	_, err = reg.ResultType("add", sig, false)
	require.ErrorIs(t, err, registry.ErrUnresolvedOverload)

	// A generic candidate of another arity is no help.
	_, err = reg.Resolve("add", signature.Of(optype.Double), false)
	require.ErrorIs(t, err, registry.ErrUnresolvedOverload)
}

func TestRegistry_NamespacesAreIndependent(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	b := registry.NewBuilder(ctx)
	require.NoError(t, b.Register(registry.Guard, native("is_valid", "IsValid", cty.Bool, optype.Dynamic)))
	require.NoError(t, b.Register(registry.Call, native("size", "Size", optype.Int, optype.Dynamic)))
	require.NoError(t, b.Register(registry.Guard, native("size", "GuardSize", optype.Int, optype.Dynamic)))
	reg := b.Build()

	_, err := reg.Resolve("is_valid", signature.Of(optype.Dynamic), false)
	require.ErrorIs(t, err, registry.ErrUnknownOperation)

	d, err := reg.Resolve("is_valid", signature.Of(optype.Dynamic), true)
	require.NoError(t, err)
	require.Equal(t, "IsValid", d.Ident)

	d, err = reg.Resolve("size", signature.Of(optype.Dynamic), false)
	require.NoError(t, err)
	require.Equal(t, "Size", d.Ident)

	d, err = reg.Resolve("size", signature.Of(optype.Dynamic), true)
	require.NoError(t, err)
	require.Equal(t, "GuardSize", d.Ident)

	require.Equal(t, []string{"size"}, reg.Operations(registry.Call))
	require.Equal(t, []string{"is_valid", "size"}, reg.Operations(registry.Guard))
	require.Equal(t, 2, reg.Len(registry.Guard))
}

func TestRegistry_Deterministic(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	reg := buildAdd(t, ctx, &fallbackRecorder{})

	first, err := reg.Resolve("add", signature.Of(cty.String, optype.Int), false)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		d, err := reg.Resolve("add", signature.Of(cty.String, optype.Int), false)
		require.NoError(t, err)
		require.Same(t, first, d)
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	rec := &fallbackRecorder{}
	reg := buildAdd(t, ctx, rec)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sig := signature.Of(optype.Int, optype.Int)
			if i%2 == 1 {
				sig = signature.Of(optype.Int, cty.String)
			}
			_, err := reg.Resolve("add", sig, false)
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, 32, rec.count())
}

func TestBuilder_DuplicatePolicies(t *testing.T) {
	first := native("add", "AddInts", optype.Int, optype.Int, optype.Int)
	second := native("add", "FastAddInts", optype.Int, optype.Int, optype.Int)
	sig := signature.Of(optype.Int, optype.Int)

	t.Run("overwrite is the default", func(t *testing.T) {
		ctx, logs := testutil.LogContext(t)
		b := registry.NewBuilder(ctx)
		require.NoError(t, b.Register(registry.Call, first))
		require.NoError(t, b.Register(registry.Call, second))
		reg := b.Build()

		d, err := reg.Resolve("add", sig, false)
		require.NoError(t, err)
		require.Same(t, second, d)
		require.Len(t, reg.Overloads("add", registry.Call), 1)
		require.Contains(t, logs.String(), "Overwriting registration.")
	})

	t.Run("first wins", func(t *testing.T) {
		ctx, _ := testutil.LogContext(t)
		b := registry.NewBuilder(ctx, registry.WithDuplicatePolicy(registry.DuplicateFirstWins))
		require.NoError(t, b.Register(registry.Call, first))
		require.NoError(t, b.Register(registry.Call, second))

		d, err := b.Build().Resolve("add", sig, false)
		require.NoError(t, err)
		require.Same(t, first, d)
	})

	t.Run("error", func(t *testing.T) {
		ctx, _ := testutil.LogContext(t)
		b := registry.NewBuilder(ctx, registry.WithDuplicatePolicy(registry.DuplicateReject))
		require.NoError(t, b.Register(registry.Call, first))
		err := b.Register(registry.Call, second)
		require.ErrorIs(t, err, registry.ErrDuplicate)
		require.Contains(t, err.Error(), "test.AddInts")
		require.Contains(t, err.Error(), "test.FastAddInts")

		// The same signature in the other namespace is not a duplicate.
		require.NoError(t, b.Register(registry.Guard, second))
	})
}

func TestBuilder_Frozen(t *testing.T) {
	b := registry.NewBuilder(context.Background())
	require.NoError(t, b.Register(registry.Call, native("add", "AddInts", optype.Int, optype.Int, optype.Int)))
	reg := b.Build()

	err := b.Register(registry.Call, native("sub", "SubInts", optype.Int, optype.Int, optype.Int))
	require.ErrorIs(t, err, registry.ErrFrozen)

	_, err = reg.Resolve("sub", signature.Of(optype.Int, optype.Int), false)
	require.ErrorIs(t, err, registry.ErrUnknownOperation)
}

func TestBuilder_RejectsInvalidDescriptors(t *testing.T) {
	b := registry.NewBuilder(context.Background())

	err := b.Register(registry.Call, &registry.Descriptor{Params: signature.Of(), Result: cty.Bool})
	require.ErrorContains(t, err, "name is empty")

	err = b.Register(registry.Call, &registry.Descriptor{Name: "f", Result: cty.Bool})
	require.ErrorContains(t, err, "parameter signature is missing")

	err = b.Register(registry.Call, &registry.Descriptor{Name: "f", Params: signature.Of(cty.NilType)})
	require.ErrorContains(t, err, "parameter 0 has no type")
	require.ErrorContains(t, err, "result type is missing")

	err = b.Register(registry.Category(7), native("f", "F", cty.Bool))
	require.ErrorContains(t, err, "unknown category(7)")

	// Rejected registrations never leave an empty overload set behind.
	require.Zero(t, b.Build().Len(registry.Call))
}

func TestRegistry_Overloads(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	b := registry.NewBuilder(ctx)
	require.NoError(t, b.Register(registry.Call, native("neg", "Neg", optype.Dynamic, optype.Dynamic)))
	require.NoError(t, b.Register(registry.Call, native("neg", "NegInt", optype.Int, optype.Int)))
	require.NoError(t, b.Register(registry.Call, native("neg", "NegDouble", optype.Double, optype.Double)))
	reg := b.Build()

	var rendered []string
	for _, d := range reg.Overloads("neg", registry.Call) {
		rendered = append(rendered, d.String())
	}
	require.Equal(t, strings.Join([]string{
		"neg(any) -> any [test.Neg]",
		"neg(double) -> double [test.NegDouble]",
		"neg(int) -> int [test.NegInt]",
	}, "\n"), strings.Join(rendered, "\n"))

	require.Nil(t, reg.Overloads("neg", registry.Guard))
	set, ok := reg.Set("neg", registry.Call)
	require.True(t, ok)
	require.Equal(t, 3, set.Len())
	require.Equal(t, "neg", set.Name())
}

func TestParseCategoryAndPolicy(t *testing.T) {
	c, err := registry.ParseCategory("")
	require.NoError(t, err)
	require.Equal(t, registry.Call, c)

	c, err = registry.ParseCategory(" Guard ")
	require.NoError(t, err)
	require.Equal(t, registry.Guard, c)

	_, err = registry.ParseCategory("pure")
	require.Error(t, err)

	p, err := registry.ParseDuplicatePolicy("first")
	require.NoError(t, err)
	require.Equal(t, registry.DuplicateFirstWins, p)

	_, err = registry.ParseDuplicatePolicy("last")
	require.Error(t, err)

	require.Equal(t, registry.Guard, registry.CategoryOf(true))
	require.Equal(t, "error", registry.DuplicateReject.String())
}
