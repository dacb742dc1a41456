package rules_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestDefaultRegistry_Catalog(t *testing.T) {
	t.Parallel()

	ids := rules.DefaultRegistry.IDs()
	assert.Len(t, ids, 39)
	assert.Equal(t, "MD001", ids[0])
	assert.Equal(t, "MD047", ids[len(ids)-1])
	assert.NotContains(t, ids, "MD008")
	assert.NotContains(t, ids, "MD042")

	for _, rule := range rules.DefaultRegistry.Rules() {
		assert.NotEmpty(t, rule.Alias, rule.ID)
		assert.NotEmpty(t, rule.Description, rule.ID)
		assert.NotEmpty(t, rule.Tags, rule.ID)
		assert.Equal(t, rule.HasParams(), len(rule.Defaults) > 0, rule.ID)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    string
		wantID string
		found  bool
	}{
		{"MD013", "MD013", true},
		{"md013", "MD013", true},
		{" MD013 ", "MD013", true},
		{"line-length", "MD013", true},
		{"Line-Length", "MD013", true},
		{"ul-indent", "MD007", true},
		{"no-inline-html", "MD033", true},
		{"ol-prefix", "MD029", true},
		{"heading-increment", "MD001", true},
		{"header-increment", "MD001", true},
		{"MD042", "", false},
		{"no-empty-links", "", false},
		{"", "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.key, func(t *testing.T) {
			t.Parallel()

			id, rule, found := rules.DefaultRegistry.Resolve(testCase.key)
			assert.Equal(t, testCase.found, found)
			assert.Equal(t, testCase.wantID, id)
			if found {
				assert.Equal(t, id, rule.ID)
			}
		})
	}
}

func TestRegistry_Tags(t *testing.T) {
	t.Parallel()

	reg := rules.DefaultRegistry

	assert.Contains(t, reg.Tags(), "headers")
	assert.Contains(t, reg.Tags(), "line_length")
	assert.Equal(t, []string{"MD013"}, reg.RulesWithTag("line_length"))
	assert.Equal(t, []string{"MD033"}, reg.RulesWithTag(":html"))
	assert.Equal(t, reg.RulesWithTag("headers"), reg.RulesWithTag("headings"))
	assert.Equal(t, []string{"MD005", "MD006", "MD007", "MD027"}, reg.RulesWithTag("indentation"))
	assert.Nil(t, reg.RulesWithTag("nope"))

	assert.True(t, reg.IsTag("HTML"))
	assert.False(t, reg.IsTag("MD013"))

	name, ok := reg.ResolveTag(":headings")
	assert.True(t, ok)
	assert.Equal(t, "headers", name)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := rules.NewRegistry()
	reg.Register(rules.Rule{ID: "X001", Alias: "first", Tags: []string{"a", "b"}})
	reg.Register(rules.Rule{ID: "X002", Alias: "second", Tags: []string{"b"}})
	reg.Register(rules.Rule{ID: "X001", Alias: "first", Tags: []string{"c"}})

	assert.Equal(t, []string{"b", "c"}, reg.Tags())
	assert.Equal(t, []string{"X002"}, reg.RulesWithTag("b"))
	assert.Equal(t, []string{"X001"}, reg.RulesWithTag("c"))

	reg.RegisterAlias("uno", "X001")
	assert.Equal(t, []string{"first", "uno"}, reg.AliasesFor("X001"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := rules.NewDefaultRegistry()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = reg.Resolve("line-length")
			_ = reg.RulesWithTag("headers")
			_ = reg.ValidateParams("MD013", map[string]any{"line_length": 100})
		}()
	}
	wg.Wait()
}

func TestRegistry_ValidateParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    string
		params  map[string]any
		wantErr error
		wantMsg string
	}{
		{"valid line length", "MD013", map[string]any{"line_length": 80, "ignore_code_blocks": true, "tables": false}, nil, ""},
		{"nil params", "MD013", nil, nil, ""},
		{"symbol style", "MD029", map[string]any{"style": style.Symbol("ordered")}, nil, ""},
		{"alias lookup", "ol-prefix", map[string]any{"style": "one"}, nil, ""},
		{"rule without params", "MD001", nil, nil, ""},
		{"unknown param", "MD013", map[string]any{"line_lenght": 80}, rules.ErrInvalidParams, "line_lenght"},
		{"wrong type", "MD013", map[string]any{"line_length": "80"}, rules.ErrInvalidParams, "MD013"},
		{"below minimum", "MD013", map[string]any{"line_length": 0}, rules.ErrInvalidParams, "MD013"},
		{"bad enum", "MD029", map[string]any{"style": style.Symbol("roman")}, rules.ErrInvalidParams, "MD029"},
		{"params on paramless rule", "MD001", map[string]any{"level": 1}, rules.ErrInvalidParams, "takes no parameters"},
		{"unknown rule", "MD999", nil, rules.ErrUnknownRule, "MD999"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := rules.DefaultRegistry.ValidateParams(testCase.rule, testCase.params)
			if testCase.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, testCase.wantErr)
			assert.Contains(t, err.Error(), testCase.wantMsg)
		})
	}
}

func TestRegistry_Schema(t *testing.T) {
	t.Parallel()

	data, err := rules.DefaultRegistry.Schema("line-length")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, rules.SchemaURL("MD013"), doc["$id"])
	assert.Equal(t, "MD013 line-length", doc["title"])
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "line_length")
	assert.Contains(t, props, "ignore_code_blocks")
	assert.Contains(t, props, "tables")

	_, err = rules.DefaultRegistry.Schema("nope")
	require.ErrorIs(t, err, rules.ErrUnknownRule)
}

func TestRegistry_Suggest(t *testing.T) {
	t.Parallel()

	reg := rules.DefaultRegistry

	assert.Contains(t, reg.Suggest("linelen"), "line-length")
	assert.Contains(t, reg.Suggest("MD0133"), "MD013")
	assert.LessOrEqual(t, len(reg.Suggest("M")), 3)
	assert.Empty(t, reg.Suggest(""))
	assert.Empty(t, reg.Suggest("zzzzzzzz"))
}

func TestRule_Helpers(t *testing.T) {
	t.Parallel()

	rule, ok := rules.DefaultRegistry.Get("MD013")
	require.True(t, ok)
	assert.True(t, rule.HasTag("line_length"))
	assert.False(t, rule.HasTag("headers"))
	assert.Equal(t, []string{"code_blocks", "headings", "ignore_code_blocks", "line_length", "tables"}, rule.ParamNames())
}
