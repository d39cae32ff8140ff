package model

import (
	"testing"

	"github.com/arowla/django-versions/pkg/errors"
	"github.com/arowla/django-versions/pkg/model/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemPath(t *testing.T) {
	assert.Equal(t, "music/artist/1", ItemPath("music/artist", "1"))
	assert.Equal(t, "music/artist/42", ItemPath("Music/Artist", "42"))
	assert.Equal(t, "venue/abc", ItemPath("venue", "abc"))
}

func TestValidateKind(t *testing.T) {
	require.NoError(t, ValidateKind("music/artist"))
	require.NoError(t, ValidateKind("my-app/my_model"))

	err := ValidateKind("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKind))

	err = ValidateKind("music artist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKind))
}

func TestRepositoryName(t *testing.T) {
	require.NoError(t, Register("routing/special", Options{Repository: "archive"}))

	assert.Equal(t, "archive", RepositoryName("routing/special"))
	assert.Equal(t, DefaultRepository, RepositoryName("routing/unregistered"))
}
