package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		_, closer, err := New("loud", "")
		require.Error(t, err)
		closer()
	})

	t.Run("writes json to file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "logs", "pencil.log")

		l, closer, err := New("info", file)
		require.NoError(t, err)

		l.Debug().Msg("hidden")
		l.Info().Str("field", "name").Msg("saved")
		closer()

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"saved"`)
		assert.Contains(t, string(data), `"field":"name"`)
		assert.NotContains(t, string(data), "hidden")
	})

	t.Run("level is case insensitive", func(t *testing.T) {
		l, closer, err := New(" WARN ", "")
		require.NoError(t, err)
		defer closer()

		assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
	})

	t.Run("empty file discards", func(t *testing.T) {
		l, closer, err := New("debug", "")
		require.NoError(t, err)
		defer closer()

		assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	})
}
