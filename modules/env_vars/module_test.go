package env_vars_test

import (
	"testing"

	"github.com/specialistvlad/opreg/internal/registrar"
	"github.com/specialistvlad/opreg/internal/registry"
	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/specialistvlad/opreg/internal/testutil"
	"github.com/specialistvlad/opreg/modules/env_vars"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestHandlers(t *testing.T) {
	t.Setenv("OPREG_ENV_VARS_TEST", "on")

	all := env_vars.EnvVars()
	require.True(t, all.Type().Equals(cty.Map(cty.String)))
	require.Equal(t, "on", all.Index(cty.StringVal("OPREG_ENV_VARS_TEST")).AsString())

	require.Equal(t, "on", env_vars.Getenv(cty.StringVal("OPREG_ENV_VARS_TEST")).AsString())
	require.Equal(t, "", env_vars.Getenv(cty.StringVal("OPREG_ENV_VARS_UNSET")).AsString())
	require.False(t, env_vars.Getenv(cty.UnknownVal(cty.String)).IsKnown())
}

func TestModule_Register(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	r := registrar.New(ctx)
	r.Load(&env_vars.Module{})
	b := registry.NewBuilder(ctx)
	require.NoError(t, r.Populate(b))
	reg := b.Build()

	require.Equal(t, []string{"env_vars", "getenv"}, reg.Operations(registry.Call))

	d, err := reg.Resolve("env_vars", nil, false)
	require.NoError(t, err)
	require.Equal(t, "env_vars.EnvVars", d.Qualified())

	ty, err := reg.ResultType("getenv", signature.Of(cty.String), false)
	require.NoError(t, err)
	require.True(t, ty.Equals(cty.String))

	_, err = reg.Resolve("getenv", signature.Of(cty.Number), false)
	require.ErrorIs(t, err, registry.ErrUnresolvedOverload)
}
