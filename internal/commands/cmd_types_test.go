package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestTypesCmd(t *testing.T) {
	var buf bytes.Buffer
	app := &cli.Command{Name: "pencil", Writer: &buf}
	app = NewTypesCmd(&Flags{}).Register(app)

	require.NoError(t, app.Run(context.Background(), []string{"pencil", "types"}))
	assert.Equal(t, "checkbox\nnumber\npassword\ntext\ntextarea\n", buf.String())
}
