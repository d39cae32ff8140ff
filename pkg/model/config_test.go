package model

import (
	"testing"

	"github.com/arowla/django-versions/pkg/errors"
	"github.com/arowla/django-versions/pkg/model/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		"default": {Backend: "localfs", Local: "/var/lib/versions/default"},
		"archive": {Backend: "badger", Local: "/var/lib/versions/archive"},
	}
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateMissingDefault(t *testing.T) {
	cfg := Config{
		"archive": {Backend: "badger", Local: "/var/lib/versions/archive"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfiguration))
}

func TestConfigValidateIncompleteEntry(t *testing.T) {
	for _, cfg := range []Config{
		{"default": {Local: "/var/lib/versions/default"}},
		{"default": {Backend: "localfs"}},
	} {
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrConfiguration))
	}
}

func TestCommitMetaWithDefaults(t *testing.T) {
	meta := CommitMeta{}.WithDefaults()
	assert.Equal(t, Anonymous, meta.Contributor)
	assert.Equal(t, DefaultMessage, meta.Message)
	assert.NotZero(t, meta.Timestamp)

	keep := CommitMeta{
		Contributor: Contributor{Name: "freddie", Email: "freddie@example.com"},
		Message:     "a night at the opera",
		Timestamp:   1234567890,
		TzOffset:    -3600,
	}
	assert.Equal(t, keep, keep.WithDefaults())
}
