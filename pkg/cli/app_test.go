package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, appName, app.Name)
	assert.NotNil(t, app.Before)
	assert.NotNil(t, app.After)

	names := make([]string, 0)
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Contains(t, names, "analyze")
	assert.Contains(t, names, "scenario")
	assert.Contains(t, names, "query")
	assert.Contains(t, names, "server")
}
