package signature_test

import (
	"sync"
	"testing"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSignature_Equals(t *testing.T) {
	a := signature.Of(optype.Int, optype.Double)
	b := signature.Of(optype.Int, optype.Double)

	require.True(t, a.Equals(b))
	require.True(t, b.Equals(a))
	require.Equal(t, a.Hash(), b.Hash())

	require.False(t, a.Equals(signature.Of(optype.Double, optype.Int)), "order matters")
	require.False(t, a.Equals(signature.Of(optype.Int)), "arity matters")
	require.False(t, signature.Of().Equals(signature.Of(optype.Dynamic)))
	require.False(t, a.Equals(nil))
}

func TestSignature_StructuralTokens(t *testing.T) {
	a := signature.Of(cty.Object(map[string]cty.Type{"x": cty.Number, "y": cty.String}))
	b := signature.Of(cty.Object(map[string]cty.Type{"y": cty.String, "x": cty.Number}))
	require.True(t, a.Equals(b))
	require.Equal(t, a.Hash(), b.Hash())

	c := signature.Of(cty.Object(map[string]cty.Type{"x": cty.Bool}))
	require.False(t, a.Equals(c))
}

func TestSignature_InputIsCopied(t *testing.T) {
	slots := []cty.Type{optype.Int, optype.Int}
	s := signature.Of(slots...)
	slots[0] = optype.Double

	require.True(t, optype.Int.Equals(s.Slot(0)))

	out := s.Slots()
	out[1] = optype.Double
	require.True(t, optype.Int.Equals(s.Slot(1)))
}

func TestSignature_Generic(t *testing.T) {
	a := signature.Of(optype.Int, optype.Double)
	b := signature.Of(cty.String, cty.List(cty.Number))
	dyn := signature.Of(optype.Dynamic, optype.Dynamic)

	t.Run("only arity matters", func(t *testing.T) {
		require.True(t, a.Generic().Equals(b.Generic()))
		require.True(t, a.Generic().Equals(dyn))
		require.Equal(t, 2, a.Generic().Arity())
		require.False(t, a.Generic().Equals(signature.Of(optype.Int).Generic()))
	})

	t.Run("memoized", func(t *testing.T) {
		require.Same(t, a.Generic(), a.Generic())
	})

	t.Run("idempotent", func(t *testing.T) {
		require.True(t, a.Generic().IsGeneric())
		require.Same(t, a.Generic(), a.Generic().Generic())
		require.Same(t, dyn, dyn.Generic())
	})

	t.Run("zero arity", func(t *testing.T) {
		empty := signature.Of()
		require.True(t, empty.IsGeneric())
		require.Same(t, empty, empty.Generic())
	})
}

func TestSignature_GenericConcurrent(t *testing.T) {
	s := signature.Of(optype.Int, optype.Int, optype.Int)

	var wg sync.WaitGroup
	results := make([]*signature.Signature, 50)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Generic()
		}()
	}
	wg.Wait()

	for _, g := range results {
		require.Same(t, results[0], g)
	}
}

func TestOfValues(t *testing.T) {
	s := signature.OfValues(cty.NumberIntVal(1), cty.StringVal("x"), cty.DynamicVal)
	require.Equal(t, 3, s.Arity())
	require.True(t, s.Equals(signature.Of(cty.Number, cty.String, cty.DynamicPseudoType)))
}

func TestSignature_String(t *testing.T) {
	require.Equal(t, "(int, double)", signature.Of(optype.Int, optype.Double).String())
	require.Equal(t, "(any, any)", signature.Of(optype.Int, cty.Bool).Generic().String())
	require.Equal(t, "()", signature.Of().String())
	require.Equal(t, "(list of number)", signature.Of(cty.List(cty.Number)).String())
}
