package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/pencil/internal/core/field"
	"github.com/colonyops/pencil/internal/tui"
)

func TestWriteValues(t *testing.T) {
	var buf bytes.Buffer
	err := WriteValues(&buf, []tui.NamedValue{
		{Name: "name", Value: field.Text("Ada")},
		{Name: "age", Value: field.Number(36)},
		{Name: "languages", Value: field.List("go", "rust")},
		{Name: "nickname", Value: field.Null()},
	})
	require.NoError(t, err)

	out := buf.String()

	t.Run("keeps field order", func(t *testing.T) {
		keys := []string{"name:", "age:", "languages:", "nickname:"}
		last := -1
		for _, k := range keys {
			i := strings.Index(out, k)
			require.GreaterOrEqual(t, i, 0, k)
			assert.Greater(t, i, last, k)
			last = i
		}
	})

	t.Run("round trips through LoadValues shape", func(t *testing.T) {
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

		assert.Equal(t, "Ada", got["name"])
		assert.EqualValues(t, 36, got["age"])
		assert.Equal(t, []any{"go", "rust"}, got["languages"])
		assert.Contains(t, got, "nickname")
		assert.Nil(t, got["nickname"])
	})
}

func TestWriteValues_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteValues(&buf, nil))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Empty(t, got)
}
