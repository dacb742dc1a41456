package mdlstyle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle"
	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestDefault_Directives(t *testing.T) {
	t.Parallel()

	s, err := mdlstyle.Default()
	require.NoError(t, err)

	require.Len(t, s.Directives, 5)
	assert.Equal(t, style.KindAll, s.Directives[0].Kind)
	assert.Equal(t, style.KindExcludeRule, s.Directives[1].Kind)
	assert.Equal(t, "MD007", s.Directives[1].Target)
	assert.Equal(t, 3, s.Directives[1].Pos.Line)
}

func TestDefaultRuleSet(t *testing.T) {
	t.Parallel()

	rs, err := mdlstyle.DefaultRuleSet()
	require.NoError(t, err)

	assert.True(t, rs.DefaultEnabled)
	assert.Equal(t, []string{"MD007", "MD033"}, rs.Excluded())

	for _, id := range rules.DefaultRegistry.IDs() {
		if id == "MD007" || id == "MD033" {
			continue
		}
		assert.True(t, rs.Enabled(id), id)
	}

	assert.Equal(t, map[string]any{
		"line_length":        80,
		"ignore_code_blocks": true,
		"tables":             false,
	}, rs.Params("MD013"))
	assert.Equal(t, map[string]any{"style": style.Symbol("ordered")}, rs.Params("MD029"))
	assert.Equal(t, []string{"MD013", "MD029"}, rs.Configured())
}

func TestDefault_ParamsValidate(t *testing.T) {
	t.Parallel()

	rs, err := mdlstyle.DefaultRuleSet()
	require.NoError(t, err)

	for _, id := range rs.Configured() {
		require.NoError(t, rules.DefaultRegistry.ValidateParams(id, rs.Params(id)), id)
	}
}

func TestDefaultSource_IsCopy(t *testing.T) {
	t.Parallel()

	src := mdlstyle.DefaultSource()
	require.NotEmpty(t, src)
	src[0] = 'X'
	assert.Equal(t, byte('a'), mdlstyle.DefaultSource()[0])
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"all", "default", "mdlstyle"}, mdlstyle.BuiltinNames())

	s, ok, err := mdlstyle.Builtin("default")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, s.HasAll())
	assert.Len(t, s.Directives, 1)

	s, ok, err = mdlstyle.Builtin("mdlstyle")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, s.Directives, 5)

	_, ok, err = mdlstyle.Builtin("relaxed")
	require.NoError(t, err)
	assert.False(t, ok)
}
