package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terlab/internal/config"
)

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestContainer_UninitializedGuards(t *testing.T) {
	c, err := New(&config.Config{})
	require.NoError(t, err)

	assert.NotNil(t, c.Reader)
	assert.Error(t, c.InitWithDatabase(nil))

	_, err = c.Server()
	assert.Error(t, err)
	assert.NoError(t, c.Shutdown(context.Background()))
}
