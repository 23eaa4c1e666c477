package rules_test

import (
	"testing"
	"time"

	"github.com/limitkit/limitkit/pkg/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Validation(t *testing.T) {
	t.Parallel()

	t.Run("valid rules", func(t *testing.T) {
		t.Parallel()
		table, err := rules.NewTable([]rules.PathRule{
			{Pattern: "/api/strict", Rule: rules.Rule{Window: time.Minute, Max: 1}},
			{Pattern: "/api/health", Disabled: true},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("zero window rejected", func(t *testing.T) {
		t.Parallel()
		_, err := rules.NewTable([]rules.PathRule{
			{Pattern: "/api/x", Rule: rules.Rule{Window: 0, Max: 10}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, rules.ErrInvalidRule)
	})

	t.Run("zero max rejected", func(t *testing.T) {
		t.Parallel()
		_, err := rules.NewTable([]rules.PathRule{
			{Pattern: "/api/x", Rule: rules.Rule{Window: time.Minute, Max: 0}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, rules.ErrInvalidRule)
	})

	t.Run("disabled entry skips rule validation", func(t *testing.T) {
		t.Parallel()
		_, err := rules.NewTable([]rules.PathRule{
			{Pattern: "/api/health", Disabled: true},
		})
		require.NoError(t, err)
	})
}

func TestTable_Resolve(t *testing.T) {
	t.Parallel()

	table, err := rules.NewTable([]rules.PathRule{
		{Pattern: "/api/strict", Rule: rules.Rule{Window: time.Minute, Max: 1}},
		{Pattern: "/api/ai/*", Rule: rules.Rule{Window: time.Minute, Max: 2}},
		{Pattern: "/api/health", Disabled: true},
		{Pattern: "/api/**", Rule: rules.Rule{Window: time.Minute, Max: 50}},
	})
	require.NoError(t, err)

	t.Run("literal match", func(t *testing.T) {
		t.Parallel()
		m := table.Resolve("/api/strict")
		require.NotNil(t, m)
		assert.Equal(t, "/api/strict", m.Pattern)
		assert.Equal(t, 1, m.Rule.Max)
		assert.False(t, m.Disabled)
	})

	t.Run("wildcard match", func(t *testing.T) {
		t.Parallel()
		m := table.Resolve("/api/ai/chat")
		require.NotNil(t, m)
		assert.Equal(t, "/api/ai/*", m.Pattern)
		assert.Equal(t, 2, m.Rule.Max)
	})

	t.Run("disabled match", func(t *testing.T) {
		t.Parallel()
		m := table.Resolve("/api/health")
		require.NotNil(t, m)
		assert.True(t, m.Disabled)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, table.Resolve("/public/index.html"))
	})
}

func TestTable_Resolve_DeclarationOrderWins(t *testing.T) {
	t.Parallel()

	// Both patterns accept /api/ai/chat; the first declared must win.
	table, err := rules.NewTable([]rules.PathRule{
		{Pattern: "/api/**", Rule: rules.Rule{Window: time.Minute, Max: 50}},
		{Pattern: "/api/ai/*", Rule: rules.Rule{Window: time.Minute, Max: 2}},
	})
	require.NoError(t, err)

	m := table.Resolve("/api/ai/chat")
	require.NotNil(t, m)
	assert.Equal(t, "/api/**", m.Pattern)
	assert.Equal(t, 50, m.Rule.Max)
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	t.Run("ordered mixed table", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
"/api/health": disabled
"/api/ai/*":
  window: 60s
  max: 2
"/api/**":
  window: 120
  max: 500
`)
		pathRules, err := rules.ParseYAML(data)
		require.NoError(t, err)
		require.Len(t, pathRules, 3)

		assert.Equal(t, "/api/health", pathRules[0].Pattern)
		assert.True(t, pathRules[0].Disabled)

		assert.Equal(t, "/api/ai/*", pathRules[1].Pattern)
		assert.Equal(t, time.Minute, pathRules[1].Rule.Window)
		assert.Equal(t, 2, pathRules[1].Rule.Max)

		// Bare integers are seconds.
		assert.Equal(t, 2*time.Minute, pathRules[2].Rule.Window)
		assert.Equal(t, 500, pathRules[2].Rule.Max)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		pathRules, err := rules.ParseYAML([]byte(""))
		require.NoError(t, err)
		assert.Empty(t, pathRules)
	})

	t.Run("unknown scalar value", func(t *testing.T) {
		t.Parallel()
		_, err := rules.ParseYAML([]byte(`"/api/x": off`))
		require.Error(t, err)
		assert.ErrorIs(t, err, rules.ErrInvalidRuleSpec)
	})

	t.Run("unknown rule field", func(t *testing.T) {
		t.Parallel()
		_, err := rules.ParseYAML([]byte("\"/api/x\":\n  burst: 5\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, rules.ErrInvalidRuleSpec)
	})

	t.Run("round trip into table", func(t *testing.T) {
		t.Parallel()

		pathRules, err := rules.ParseYAML([]byte("\"/a/*\":\n  window: 1m\n  max: 3\n"))
		require.NoError(t, err)

		table, err := rules.NewTable(pathRules)
		require.NoError(t, err)

		m := table.Resolve("/a/b")
		require.NotNil(t, m)
		assert.Equal(t, 3, m.Rule.Max)
	})
}
