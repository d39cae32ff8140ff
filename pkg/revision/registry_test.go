package revision

import (
	"testing"

	"github.com/arowla/django-versions/pkg/errors"
	"github.com/arowla/django-versions/pkg/model"
	modelstatus "github.com/arowla/django-versions/pkg/model/status"
	repolocalfs "github.com/arowla/django-versions/pkg/repo/localfs"
	repostatus "github.com/arowla/django-versions/pkg/repo/status"
	storagelocalfs "github.com/arowla/django-versions/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerRequiresConfiguration(t *testing.T) {
	_, err := NewManager(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, modelstatus.ErrConfiguration))
}

func TestNewManagerRequiresDefault(t *testing.T) {
	_, err := NewManager(model.Config{
		"archive": {Backend: "localfs", Local: t.TempDir()},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, modelstatus.ErrConfiguration))
}

func TestRepositoryCaching(t *testing.T) {
	m, err := NewManager(model.Config{
		"default": {Backend: "localfs", Local: t.TempDir()},
	})
	require.NoError(t, err)

	first, err := m.Repository("default")
	require.NoError(t, err)
	second, err := m.Repository("default")
	require.NoError(t, err)

	// one handle per name for the manager's lifetime
	assert.Same(t, first, second)
}

func TestRepositoryUnknownName(t *testing.T) {
	m, err := NewManager(model.Config{
		"default": {Backend: "localfs", Local: t.TempDir()},
	})
	require.NoError(t, err)

	_, err = m.Repository("archive")
	require.Error(t, err)
	assert.True(t, errors.Is(err, modelstatus.ErrConfiguration))
}

func TestRepositoryUnknownBackend(t *testing.T) {
	m, err := NewManager(nil,
		WithRepository("default", repolocalfs.New("default", storagelocalfs.New(afero.NewMemMapFs()))),
	)
	require.NoError(t, err)
	m.registry.cfg = model.Config{
		"exotic": {Backend: "mercurial", Local: t.TempDir()},
	}

	_, err = m.Repository("exotic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repostatus.ErrUnknownBackend))
}

func TestInjectedRepositoryWins(t *testing.T) {
	injected := repolocalfs.New("default", storagelocalfs.New(afero.NewMemMapFs()))
	m, err := NewManager(model.Config{
		"default": {Backend: "localfs", Local: t.TempDir()},
	}, WithRepository("default", injected))
	require.NoError(t, err)

	got, err := m.Repository("default")
	require.NoError(t, err)
	assert.Same(t, injected, got)
}
