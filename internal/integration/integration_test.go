package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	rendered, err := Render("/home/u/cleanup-suggestions.sh", "/bin/bash")
	require.NoError(t, err)

	assert.Contains(t, rendered, `local report="${1:-/home/u/cleanup-suggestions.sh}"`)
	assert.Contains(t, rendered, `SHELL="/bin/bash" fzf`)
	assert.Contains(t, rendered, `grep '^## '`)
	assert.NotContains(t, rendered, "{{")
}

func TestShell(t *testing.T) {
	assert.NotEmpty(t, Shell())
}
