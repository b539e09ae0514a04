package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_StopsWhenContextCancelled(t *testing.T) {
	env := newTestEnv(t, assignedIssues())
	root := NewRootCommand(env.container, "test-version")
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := root.ExecuteContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, env.factory.Calls)
}

func TestServeCommand_InvalidAddr(t *testing.T) {
	env := newTestEnv(t, assignedIssues())

	_, _, err := env.execute("serve", "--addr", "localhost:-1")

	assert.Error(t, err)
}
