package localfs

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/arowla/django-versions/pkg/errors"
	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/repo"
	"github.com/arowla/django-versions/pkg/repo/status"
	"github.com/arowla/django-versions/pkg/storage"
	storagelocalfs "github.com/arowla/django-versions/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t testing.TB) repo.Repository {
	t.Helper()
	return New("default", storagelocalfs.New(afero.NewMemMapFs()))
}

func meta(name, message string) model.CommitMeta {
	return model.CommitMeta{
		Contributor: model.Contributor{Name: name},
		Message:     message,
	}
}

func TestCommitAndVersion(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	v, err := r.Commit(ctx, map[string][]byte{
		"music/artist/1": []byte("queen-v1"),
		"music/artist/2": []byte("prince-v1"),
	}, meta("freddie", "initial import"))
	require.NoError(t, err)
	require.NotNil(t, v)

	data, err := r.Version(ctx, "music/artist/1", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("queen-v1"), data)

	data, err = r.Version(ctx, "music/artist/2", v.Revision())
	require.NoError(t, err)
	assert.Equal(t, []byte("prince-v1"), data)

	assert.Equal(t, "freddie", v.Contributor().Name)
	assert.Equal(t, "initial import", v.Message())
}

func TestVersionsOrder(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	v1, err := r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("one")}, meta("a", "first"))
	require.NoError(t, err)
	v2, err := r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("two")}, meta("a", "second"))
	require.NoError(t, err)

	revs, err := r.Versions(ctx, "music/artist/1")
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, v2.Revision(), revs[0])
	assert.Equal(t, v1.Revision(), revs[1])
}

func TestVersionAtOlderRevision(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	v1, err := r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("one")}, meta("a", "first"))
	require.NoError(t, err)
	_, err = r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("two")}, meta("a", "second"))
	require.NoError(t, err)

	data, err := r.Version(ctx, "music/artist/1", v1.Revision())
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestVersionFallsBackThroughHistory(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("one")}, meta("a", "first"))
	require.NoError(t, err)
	v2, err := r.Commit(ctx, map[string][]byte{"music/venue/9": []byte("wembley")}, meta("a", "second"))
	require.NoError(t, err)

	// artist/1 was not touched by v2, its state as of v2 is the prior blob
	data, err := r.Version(ctx, "music/artist/1", v2.Revision())
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestVersionDoesNotExist(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Version(ctx, "music/artist/404", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrVersionDoesNotExist))

	_, err = r.Version(ctx, "music/artist/404", "deadbeef")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrVersionDoesNotExist))
}

func TestLinearParentChain(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	const chain = 4
	versions := make([]*repo.Version, 0, chain)
	for i := 0; i < chain; i++ {
		v, err := r.Commit(ctx, map[string][]byte{
			"music/artist/1": []byte{byte('a' + i)},
		}, meta("a", "step"))
		require.NoError(t, err)
		versions = append(versions, v)
	}

	// walking parents from the tip reaches the root in chain-1 steps
	current := versions[chain-1]
	for i := chain - 2; i >= 0; i-- {
		parent, err := current.Parent(ctx)
		require.NoError(t, err)
		require.NotNil(t, parent)
		assert.True(t, parent.Equal(versions[i]))
		current = parent
	}
	root, err := current.Parent(ctx)
	require.NoError(t, err)
	assert.Nil(t, root)
}

// failingPutStore refuses writes to one key, simulating a storage
// failure in the middle of a commit.
type failingPutStore struct {
	storage.Store
	failKey string
}

func (s *failingPutStore) Put(ctx context.Context, key string, source io.Reader) error {
	if key == s.failKey {
		return fmt.Errorf("no space left on device")
	}
	return s.Store.Put(ctx, key, source)
}

func TestFailedCommitLeavesNoHistory(t *testing.T) {
	store := &failingPutStore{
		Store:   storagelocalfs.New(afero.NewMemMapFs()),
		failKey: "HEAD",
	}
	r := New("default", store)
	ctx := context.Background()

	_, err := r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("a")}, meta("a", "first"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStorage))

	// the failed commit is invisible: no history, no latest state
	revs, err := r.Versions(ctx, "music/artist/1")
	require.NoError(t, err)
	assert.Empty(t, revs)

	_, err = r.Version(ctx, "music/artist/1", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrVersionDoesNotExist))
}

func TestFailedCommitKeepsPriorHistory(t *testing.T) {
	store := &failingPutStore{
		Store: storagelocalfs.New(afero.NewMemMapFs()),
	}
	r := New("default", store)
	ctx := context.Background()

	v1, err := r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("one")}, meta("a", "first"))
	require.NoError(t, err)

	store.failKey = "HEAD"
	_, err = r.Commit(ctx, map[string][]byte{"music/artist/1": []byte("two")}, meta("a", "second"))
	require.Error(t, err)

	// history and latest state still reflect only the durable commit
	revs, err := r.Versions(ctx, "music/artist/1")
	require.NoError(t, err)
	require.Equal(t, []string{v1.Revision()}, revs)

	data, err := r.Version(ctx, "music/artist/1", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestEmptyHistory(t *testing.T) {
	r := setupRepo(t)

	revs, err := r.Versions(context.Background(), "music/artist/1")
	require.NoError(t, err)
	assert.Empty(t, revs)
}
