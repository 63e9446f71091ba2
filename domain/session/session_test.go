package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terlab/domain/core"
	"terlab/internal/errors"
)

func TestNew(t *testing.T) {
	s, err := New("  Pilot wave ", " first batch ")
	require.NoError(t, err)

	assert.Equal(t, "Pilot wave", s.Name)
	assert.Equal(t, "first batch", s.Description)
	assert.False(t, s.IsActive)
	assert.False(t, s.CreatedAt.IsZero())

	_, err = core.ParseSessionID(s.ID.String())
	assert.NoError(t, err)
}

func TestNew_RejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "   ", strings.Repeat("x", MaxNameLength+1)} {
		_, err := New(name, "")
		require.Error(t, err)
		assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	}
}

func TestRenameAndDescribe(t *testing.T) {
	s, err := New("Pilot", "")
	require.NoError(t, err)

	require.NoError(t, s.Rename("  Main wave "))
	assert.Equal(t, "Main wave", s.Name)

	err = s.Rename(" ")
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Equal(t, "Main wave", s.Name, "rejected rename keeps the old name")

	s.Describe(" second batch ")
	assert.Equal(t, "second batch", s.Description)
}
